package transition

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vela/pkg/dom"
)

func TestInTransitionLifecycle(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	var log []string
	record(node, &log)

	intro := e.engine.In(node, Fade, FadeParams{Duration: ms(100)})
	if intro.State() != Pending {
		t.Errorf("State() = %v, want pending", intro.State())
	}
	intro.Start()
	intro.Start()

	if intro.State() != Running || e.engine.Active() != 1 {
		t.Fatalf("State() = %v, Active() = %d, want running and 1", intro.State(), e.engine.Active())
	}
	if node.Style().Get("animation") == "" {
		t.Error("animation should be set on the node")
	}

	e.host.DrainMicrotasks()
	if diff := cmp.Diff([]string{"div:introstart"}, log); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	e.host.AdvanceBy(ms(90), ms(30))
	if intro.State() != Running {
		t.Errorf("State() = %v, want running at 90ms", intro.State())
	}
	e.host.Advance(ms(10))

	if diff := cmp.Diff([]string{"div:introstart", "div:introend"}, log); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if intro.State() != Completed {
		t.Errorf("State() = %v, want completed", intro.State())
	}
	if e.engine.Active() != 0 || node.Style().Get("animation") != "" {
		t.Errorf("Active() = %d, animation = %q, want cleaned up", e.engine.Active(), node.Style().Get("animation"))
	}
	e.host.Frame()
	if len(e.engine.Stylesheets()) != 0 {
		t.Error("stylesheets should be swept")
	}
}

func TestInTransitionTicks(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	var ticks []float64
	fn := func(*dom.Node, any, Options) Config {
		return Config{
			Delay:    ms(10),
			Duration: ms(20),
			Tick:     func(t, _ float64) { ticks = append(ticks, t) },
		}
	}
	e.engine.In(node, fn, nil).Start()
	e.host.AdvanceBy(ms(40), ms(10))

	want := []float64{0, 0, 0.5, 1}
	if diff := cmp.Diff(want, ticks); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
	if e.engine.Active() != 0 {
		t.Errorf("Active() = %d, want 0 for tick-only transitions", e.engine.Active())
	}
}

func TestInTransitionStartCancelsOutro(t *testing.T) {
	e := newEnv()
	node := e.element("div")

	e.engine.Out(node, timed(100), nil)
	if e.engine.Active() != 1 {
		t.Fatalf("Active() = %d, want 1", e.engine.Active())
	}
	e.engine.In(node, timed(100), nil).Start()

	if e.engine.Active() != 1 {
		t.Errorf("Active() = %d, want only the intro running", e.engine.Active())
	}
}

func TestInTransitionEndAndRestart(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	intro := e.engine.In(node, timed(100), nil)
	intro.Start()
	intro.End()
	if e.engine.Active() != 0 {
		t.Errorf("Active() = %d, want 0 after End", e.engine.Active())
	}

	intro.Invalidate()
	intro.Start()
	if intro.State() != Running {
		t.Errorf("State() = %v, want running after restart", intro.State())
	}
	if got := node.Style().Get("animation"); !strings.HasSuffix(got, "_1 100ms linear 0ms 1 both") {
		t.Errorf("animation = %q, want uid 1", got)
	}
}

func TestInTransitionLazyConfig(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	resolved := 0
	fn := func(*dom.Node, any, Options) Config {
		return Config{Lazy: func(opts Options) Config {
			resolved++
			if opts.Direction != In {
				t.Errorf("Direction = %v, want in", opts.Direction)
			}
			return Config{Duration: ms(10), CSS: opacity}
		}}
	}
	intro := e.engine.In(node, fn, nil)
	intro.Start()
	if resolved != 1 || intro.State() != Pending {
		t.Fatalf("resolved = %d, State() = %v, want resolved now and started later", resolved, intro.State())
	}
	e.host.DrainMicrotasks()
	if intro.State() != Running {
		t.Errorf("State() = %v, want running", intro.State())
	}
}

func TestInvalidConfigIsClamped(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	fn := func(*dom.Node, any, Options) Config {
		return Config{Delay: -ms(5), Duration: -ms(5), CSS: opacity}
	}
	var log []string
	record(node, &log)
	e.engine.In(node, fn, nil).Start()
	e.host.Frame()
	if diff := cmp.Diff([]string{"div:introstart", "div:introend"}, log); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsetDurationDefaults(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	fn := func(*dom.Node, any, Options) Config {
		return Config{CSS: opacity}
	}
	var log []string
	record(node, &log)
	e.engine.In(node, fn, nil).Start()
	if got := node.Style().Get("animation"); !strings.Contains(got, " 300ms linear ") {
		t.Errorf("animation = %q, want the 300ms default", got)
	}

	e.host.AdvanceBy(ms(290), ms(10))
	if diff := cmp.Diff([]string{"div:introstart"}, log); diff != "" {
		t.Errorf("events before 300ms mismatch (-want +got):\n%s", diff)
	}
	e.host.AdvanceBy(ms(20), ms(10))
	if diff := cmp.Diff([]string{"div:introstart", "div:introend"}, log); diff != "" {
		t.Errorf("events after 300ms mismatch (-want +got):\n%s", diff)
	}
}
