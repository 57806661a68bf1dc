package scheduler

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/host"
)

type fakeUpdater struct {
	name   string
	log    *[]string
	calls  int
	update func() error
}

func (f *fakeUpdater) Update() error {
	f.calls++
	*f.log = append(*f.log, f.name)
	if f.update != nil {
		return f.update()
	}
	return nil
}

type recordingObserver struct {
	stats []FlushStats
}

func (r *recordingObserver) FlushCompleted(s FlushStats) { r.stats = append(r.stats, s) }

func TestMarkDirtySchedulesOneFlush(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	a := &fakeUpdater{name: "a", log: &log}
	b := &fakeUpdater{name: "b", log: &log}

	s.MarkDirty(a)
	s.MarkDirty(b)
	s.MarkDirty(a)

	if h.PendingMicrotasks() != 1 {
		t.Fatalf("PendingMicrotasks() = %d, want 1", h.PendingMicrotasks())
	}
	if s.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", s.Pending())
	}
	h.DrainMicrotasks()

	if diff := cmp.Diff([]string{"a", "b"}, log); diff != "" {
		t.Errorf("update order mismatch (-want +got):\n%s", diff)
	}
	if a.calls != 1 {
		t.Errorf("a updated %d times, want 1", a.calls)
	}
	if s.State() != Idle {
		t.Errorf("State() = %v, want idle", s.State())
	}
}

func TestFlushPhaseOrder(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	u := &fakeUpdater{name: "update", log: &log}

	s.AddBindingCallback(func() { log = append(log, "bind1") })
	s.AddBindingCallback(func() { log = append(log, "bind2") })
	s.RenderFunc(func() { log = append(log, "render1") })
	s.RenderFunc(func() { log = append(log, "render2") })
	s.AddFlushCallback(func() { log = append(log, "flush1") })
	s.AddFlushCallback(func() { log = append(log, "flush2") })
	s.MarkDirty(u)

	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []string{"update", "bind2", "bind1", "render1", "render2", "flush2", "flush1"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("phase order mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateDuringRenderCallbackRunsAnotherPass(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	a := &fakeUpdater{name: "a", log: &log}
	b := &fakeUpdater{name: "b", log: &log}

	after := NewCallback(func() { log = append(log, "after") })
	a.update = func() error {
		s.AddRenderCallback(after)
		return nil
	}
	b.update = func() error {
		// Re-dirty a from b's own update; the same handle is queued again.
		if a.calls == 1 {
			s.MarkDirty(a)
		}
		return nil
	}

	s.MarkDirty(a)
	s.MarkDirty(b)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "b", "a", "after"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCallbackRunsOncePerFlushAcrossPasses(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	u := &fakeUpdater{name: "u", log: &log}

	after := NewCallback(func() { log = append(log, "after") })
	u.update = func() error {
		s.AddRenderCallback(after)
		return nil
	}
	// The first render pass dirties u again, which queues after again.
	s.RenderFunc(func() {
		if u.calls == 1 {
			s.MarkDirty(u)
		}
	})
	s.MarkDirty(u)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []string{"u", "after", "u"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}

	// The next flush is a new generation.
	s.MarkDirty(u)
	h.DrainMicrotasks()
	want = append(want, "u", "after")
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log after second flush mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushWhileUpdatingIsNoop(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	a := &fakeUpdater{name: "a", log: &log}
	b := &fakeUpdater{name: "b", log: &log}
	a.update = func() error {
		s.MarkDirty(b)
		if s.State() != Updating {
			t.Errorf("State() = %v, want updating", s.State())
		}
		return s.Flush()
	}
	s.MarkDirty(a)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedFlushFromCallback(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	a := &fakeUpdater{name: "a", log: &log}
	b := &fakeUpdater{name: "b", log: &log}

	s.RenderFunc(func() {
		s.MarkDirty(b)
		if err := s.Flush(); err != nil {
			t.Errorf("nested Flush() = %v", err)
		}
		log = append(log, "after-nested")
	})
	s.MarkDirty(a)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "after-nested"}, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if s.State() != Idle {
		t.Errorf("State() = %v, want idle", s.State())
	}
}

func TestFlushFailureResetsQueue(t *testing.T) {
	tests := []struct {
		name   string
		update func() error
		cause  string
	}{
		{"error", func() error { return fmt.Errorf("bad patch") }, "bad patch"},
		{"panic", func() error { panic("exploded") }, "panic: exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := host.NewManual()
			obs := &recordingObserver{}
			s := New(h, WithObserver(obs))
			var log []string
			bad := &fakeUpdater{name: "bad", log: &log, update: tt.update}
			next := &fakeUpdater{name: "next", log: &log}
			s.SetCurrent("outer")

			s.MarkDirty(bad)
			s.MarkDirty(next)
			err := s.Flush()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.Code(err); code != "E101" {
				t.Errorf("Code() = %q, want E101", code)
			}
			var ve *errors.Error
			if e, ok := err.(*errors.Error); ok {
				ve = e
			}
			if ve == nil || ve.Wrapped == nil || ve.Wrapped.Error() != tt.cause {
				t.Errorf("cause = %v, want %q", ve, tt.cause)
			}
			if s.Pending() != 0 {
				t.Errorf("Pending() = %d, want 0", s.Pending())
			}
			if s.State() != Idle {
				t.Errorf("State() = %v, want idle", s.State())
			}
			if s.Current() != "outer" {
				t.Errorf("Current() = %v, want outer", s.Current())
			}
			if len(obs.stats) != 1 || obs.stats[0].Err == nil {
				t.Errorf("observer stats = %+v, want one failed flush", obs.stats)
			}

			// The scheduler accepts new work afterwards.
			s.MarkDirty(next)
			h.DrainMicrotasks()
			if diff := cmp.Diff([]string{"bad", "next"}, log); diff != "" {
				t.Errorf("log mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMicrotaskFlushFailureIsLogged(t *testing.T) {
	h := host.NewManual()
	var buf bytes.Buffer
	s := New(h, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	var log []string
	s.MarkDirty(&fakeUpdater{name: "bad", log: &log, update: func() error {
		return fmt.Errorf("bad patch")
	}})
	h.DrainMicrotasks()

	out := buf.String()
	for _, want := range []string{"level=ERROR", "code=E101", "bad patch"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if s.State() != Idle {
		t.Errorf("State() = %v, want idle", s.State())
	}
}

func TestFlushRenderCallbacks(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	keep := s.RenderFunc(func() { log = append(log, "keep") })
	target := s.RenderFunc(func() { log = append(log, "target") })
	_ = keep

	s.FlushRenderCallbacks([]*Callback{target})
	if diff := cmp.Diff([]string{"target"}, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	h.DrainMicrotasks()
	if diff := cmp.Diff([]string{"target", "keep"}, log); diff != "" {
		t.Errorf("log after flush mismatch (-want +got):\n%s", diff)
	}
}

func TestObserverCountsUpdates(t *testing.T) {
	h := host.NewManual()
	obs := &recordingObserver{}
	s := New(h, WithObserver(obs))
	var log []string
	s.MarkDirty(&fakeUpdater{name: "a", log: &log})
	s.MarkDirty(&fakeUpdater{name: "b", log: &log})
	h.DrainMicrotasks()
	if len(obs.stats) != 1 || obs.stats[0].Updated != 2 {
		t.Errorf("observer stats = %+v, want one flush with 2 updates", obs.stats)
	}
}

func TestTickRunsAfterFlush(t *testing.T) {
	h := host.NewManual()
	s := New(h)
	var log []string
	s.Tick(func() { log = append(log, "tick") })
	s.MarkDirty(&fakeUpdater{name: "u", log: &log})
	h.DrainMicrotasks()
	if diff := cmp.Diff([]string{"u", "tick"}, log); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
