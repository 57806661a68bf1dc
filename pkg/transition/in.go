package transition

import (
	"time"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/scheduler"
)

// State is the lifecycle state of an intro.
type State uint8

const (
	Pending State = iota
	Running
	Completed
	Invalidated
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Invalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// InTransition is an intro bound to one node.
type InTransition struct {
	e      *Engine
	node   *dom.Node
	config Config

	state     State
	started   bool
	running   bool
	animation string
	task      *scheduler.Task
	uid       int
}

// In prepares an intro of node. Nothing happens until Start.
func (e *Engine) In(node *dom.Node, fn Func, params any) *InTransition {
	return &InTransition{
		e:      e,
		node:   node,
		config: fn(node, params, Options{Direction: In}),
	}
}

// State returns the current state.
func (t *InTransition) State() State { return t.state }

// Start runs the intro. It removes any animation the engine left on the
// node, which cancels a running outro. Calling Start again before
// Invalidate is a no-op.
func (t *InTransition) Start() {
	if t.started {
		return
	}
	t.started = true
	t.e.DeleteRule(t.node, "")
	if t.config.Lazy != nil {
		t.config = t.config.Lazy(Options{Direction: In})
		t.e.sched.Wait(t.run)
		return
	}
	t.run()
}

// Invalidate allows the next Start to run the intro again.
func (t *InTransition) Invalidate() {
	t.started = false
	if !t.running {
		t.state = Invalidated
	}
}

// End stops a running intro and removes its animation.
func (t *InTransition) End() {
	if t.running {
		t.cleanup()
		t.running = false
		if t.task != nil {
			t.task.Abort()
		}
	}
}

func (t *InTransition) cleanup() {
	if t.animation != "" {
		t.e.DeleteRule(t.node, t.animation)
		t.animation = ""
	}
}

func (t *InTransition) run() {
	cfg := t.e.resolve(t.node, t.config)
	if cfg.CSS != nil {
		t.animation = t.e.CreateRule(t.node, 0, 1, cfg.Duration, cfg.Delay, cfg.Easing, cfg.CSS, t.uid)
		t.uid++
	}
	cfg.Tick(0, 1)

	start := t.e.sched.Host().Now() + cfg.Delay
	end := start + cfg.Duration

	if t.task != nil {
		t.task.Abort()
	}
	t.running = true
	t.state = Running

	node := t.node
	t.e.sched.RenderFunc(func() { dispatch(node, EventIntroStart) })

	t.task = t.e.sched.Loop(func(now time.Duration) bool {
		if !t.running {
			return false
		}
		if now >= end {
			cfg.Tick(1, 0)
			dispatch(node, EventIntroEnd)
			t.cleanup()
			t.running = false
			t.state = Completed
			return false
		}
		if now >= start {
			p := cfg.Easing(float64(now-start) / float64(cfg.Duration))
			cfg.Tick(p, 1-p)
		}
		return true
	})
}
