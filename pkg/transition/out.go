package transition

import (
	"time"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/scheduler"
)

// OutTransition is an outro bound to one node. It starts as soon as it is
// created and is tracked by the outro group open at that moment.
type OutTransition struct {
	e      *Engine
	node   *dom.Node
	config Config
	group  *Group

	running   bool
	finished  bool
	animation string
	task      *scheduler.Task
}

// Out starts an outro of node in the current outro group. If no group is
// open, the outro gets a group of its own.
func (e *Engine) Out(node *dom.Node, fn Func, params any) *OutTransition {
	if e.outros == nil {
		e.GroupOutros()
		defer e.CheckOutros()
	}
	t := &OutTransition{
		e:       e,
		node:    node,
		config:  fn(node, params, Options{Direction: Out}),
		group:   e.outros,
		running: true,
	}
	t.group.add()

	if t.config.Lazy != nil {
		lazy := t.config.Lazy
		e.sched.Wait(func() {
			t.config = lazy(Options{Direction: Out})
			t.run()
		})
	} else {
		t.run()
	}
	return t
}

// Running reports whether the outro is still animating.
func (t *OutTransition) Running() bool { return t.running && !t.finished }

// Finished reports whether the outro has been counted as done by its group.
func (t *OutTransition) Finished() bool { return t.finished }

// End stops the outro without completing it. With reset set the tick
// function is called with the entered state so the node looks as it did
// before leaving.
func (t *OutTransition) End(reset bool) {
	if reset && t.config.Lazy == nil && t.config.Tick != nil {
		t.config.Tick(1, 0)
	}
	if t.running {
		if t.animation != "" {
			t.e.DeleteRule(t.node, t.animation)
			t.animation = ""
		}
		t.running = false
		if t.task != nil {
			t.task.Abort()
		}
	}
}

// Complete stops the outro and counts it as finished in its group, once.
// It is used when the leaving block is destroyed before the outro ends.
func (t *OutTransition) Complete() {
	t.End(false)
	t.finish()
}

func (t *OutTransition) finish() {
	if t.finished {
		return
	}
	t.finished = true
	t.group.done()
}

func (t *OutTransition) run() {
	if !t.running {
		// Ended before a lazy config resolved.
		return
	}
	cfg := t.e.resolve(t.node, t.config)
	if cfg.CSS != nil {
		t.animation = t.e.CreateRule(t.node, 1, 0, cfg.Duration, cfg.Delay, cfg.Easing, cfg.CSS, 0)
	}

	start := t.e.sched.Host().Now() + cfg.Delay
	end := start + cfg.Duration

	node := t.node
	t.e.sched.RenderFunc(func() { dispatch(node, EventOutroStart) })

	t.task = t.e.sched.Loop(func(now time.Duration) bool {
		if !t.running {
			return false
		}
		if now >= end {
			cfg.Tick(0, 1)
			dispatch(node, EventOutroEnd)
			t.finish()
			return false
		}
		if now >= start {
			p := cfg.Easing(float64(now-start) / float64(cfg.Duration))
			cfg.Tick(1-p, p)
		}
		return true
	})
}
