package transition

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vela/pkg/dom"
)

type fakeBlock struct {
	e         *Engine
	node      *dom.Node
	fn        Func
	out       *OutTransition
	intros    int
	destroyed int
}

func (b *fakeBlock) Intro(bool) {
	b.intros++
	if b.out != nil {
		b.out.End(true)
		b.out = nil
	}
}

func (b *fakeBlock) Outro(bool) {
	b.out = b.e.Out(b.node, b.fn, nil)
}

func (b *fakeBlock) Destroy(bool) {
	b.destroyed++
	if b.out != nil {
		b.out.End(false)
	}
}

type plainBlock struct{ destroyed int }

func (b *plainBlock) Destroy(bool) { b.destroyed++ }

func TestOutroGroupWaitsForAllSiblings(t *testing.T) {
	e := newEnv()
	g := &gauges{}
	e.engine.observer = g
	var log []string

	blocks := make([]*fakeBlock, 3)
	e.engine.GroupOutros()
	for i, d := range []int{10, 20, 30} {
		node := e.element("div")
		record(node, &log)
		blocks[i] = &fakeBlock{e: e.engine, node: node, fn: timed(d)}
		i := i
		e.engine.TransitionOut(blocks[i], true, true, func() {
			log = append(log, "done"+string(rune('A'+i)))
		})
	}
	if e.engine.CurrentGroup().Pending() != 3 {
		t.Fatalf("Pending() = %d, want 3", e.engine.CurrentGroup().Pending())
	}
	if g.groups != 1 {
		t.Errorf("open groups = %d, want 1", g.groups)
	}
	e.engine.CheckOutros()
	if g.groups != 0 || e.engine.CurrentGroup() != nil {
		t.Errorf("group should be closed, open = %d", g.groups)
	}

	e.host.AdvanceBy(ms(20), ms(10))
	for _, b := range blocks {
		if b.destroyed != 0 {
			t.Fatal("no block may be destroyed before the last outro ends")
		}
	}

	e.host.Advance(ms(10))
	want := []string{
		"div:outrostart", "div:outrostart", "div:outrostart",
		"div:outroend", "div:outroend", "div:outroend",
		"doneA", "doneB", "doneC",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	for i, b := range blocks {
		if b.destroyed != 1 {
			t.Errorf("block %d destroyed %d times, want 1", i, b.destroyed)
		}
		if e.engine.Outroing(b) {
			t.Errorf("block %d still outroing", i)
		}
	}
	if e.engine.Active() != 0 {
		t.Errorf("Active() = %d, want 0 after destroy", e.engine.Active())
	}
}

func TestTransitionOutTwiceIsIgnored(t *testing.T) {
	e := newEnv()
	b := &fakeBlock{e: e.engine, node: e.element("div"), fn: timed(10)}
	calls := 0
	e.engine.GroupOutros()
	e.engine.TransitionOut(b, true, false, func() { calls++ })
	e.engine.TransitionOut(b, true, false, func() { calls++ })
	e.engine.CheckOutros()
	e.host.AdvanceBy(ms(10), ms(10))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTransitionInCancelsOutro(t *testing.T) {
	e := newEnv()
	b := &fakeBlock{e: e.engine, node: e.element("div"), fn: timed(10)}
	called := false
	e.engine.TransitionOut(b, true, true, func() { called = true })
	if !e.engine.Outroing(b) {
		t.Fatal("block should be outroing")
	}
	e.engine.TransitionIn(b, true)
	if e.engine.Outroing(b) || b.intros != 1 {
		t.Errorf("Outroing() = %v, intros = %d, want false and 1", e.engine.Outroing(b), b.intros)
	}
	e.host.AdvanceBy(ms(50), ms(10))
	if called || b.destroyed != 0 {
		t.Error("cancelled outro must not complete")
	}
}

func TestTransitionOutWithoutTransitions(t *testing.T) {
	e := newEnv()
	b := &plainBlock{}
	called := false
	e.engine.TransitionOut(b, true, true, func() { called = true })
	if !called {
		t.Error("callback should run immediately")
	}
	if b.destroyed != 0 {
		t.Error("block without transitions is destroyed by the caller, not the engine")
	}
	e.engine.TransitionOut(nil, true, true, nil)
}

func TestImplicitGroupAndEmptyGroup(t *testing.T) {
	e := newEnv()
	b := &fakeBlock{e: e.engine, node: e.element("div"), fn: timed(10)}
	called := false
	e.engine.TransitionOut(b, true, true, func() { called = true })
	if e.engine.CurrentGroup() != nil {
		t.Error("implicit group should be closed")
	}
	e.host.AdvanceBy(ms(10), ms(10))
	if !called || b.destroyed != 1 {
		t.Errorf("called = %v, destroyed = %d, want true and 1", called, b.destroyed)
	}

	ran := false
	e.engine.GroupOutros()
	e.engine.CurrentGroup().completions = append(e.engine.CurrentGroup().completions, func() { ran = true })
	e.engine.CheckOutros()
	if !ran {
		t.Error("empty group should complete on CheckOutros")
	}
}

func TestOutTransitionCompleteOnDestroy(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	done := 0
	e.engine.GroupOutros()
	out := e.engine.Out(node, timed(100), nil)
	e.engine.CurrentGroup().completions = append(e.engine.CurrentGroup().completions, func() { done++ })
	e.engine.CheckOutros()

	out.Complete()
	out.Complete()
	if done != 1 {
		t.Errorf("completions ran %d times, want 1", done)
	}
	if out.Running() || !out.Finished() {
		t.Error("outro should be stopped and finished")
	}
	if e.engine.Active() != 0 {
		t.Errorf("Active() = %d, want 0", e.engine.Active())
	}
	e.host.AdvanceBy(ms(200), ms(50))
	if done != 1 {
		t.Errorf("completions ran %d times after frames, want 1", done)
	}
}

func TestOutTransitionEndResetTicks(t *testing.T) {
	e := newEnv()
	node := e.element("div")
	var ticks []float64
	fn := func(*dom.Node, any, Options) Config {
		return Config{Duration: ms(10), Tick: func(t, _ float64) { ticks = append(ticks, t) }}
	}
	out := e.engine.Out(node, fn, nil)
	out.End(true)
	if diff := cmp.Diff([]float64{1}, ticks); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}
