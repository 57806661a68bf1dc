package transition

import (
	"log/slog"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/scheduler"
)

// Event names dispatched on transitioning nodes.
const (
	EventIntroStart = "introstart"
	EventIntroEnd   = "introend"
	EventOutroStart = "outrostart"
	EventOutroEnd   = "outroend"
)

// Observer receives engine gauges.
type Observer interface {
	AnimationsActive(n int)
	OutroGroupsOpen(n int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver sets the gauge observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the logger used for invalid configs.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine owns the keyframe registry, the outro group stack and the set of
// outroing blocks. Like the scheduler it is confined to one goroutine.
type Engine struct {
	sched    *scheduler.Scheduler
	observer Observer
	logger   *slog.Logger

	styles map[*dom.Node]*styleInfo
	roots  []*dom.Node
	active int

	outros   *Group
	open     int
	outroing map[Block]struct{}
}

// New creates an engine that schedules through s.
func New(s *scheduler.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		sched:    s,
		logger:   slog.Default(),
		styles:   make(map[*dom.Node]*styleInfo),
		outroing: make(map[Block]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scheduler returns the scheduler the engine runs on.
func (e *Engine) Scheduler() *scheduler.Scheduler { return e.sched }

func (e *Engine) notifyActive() {
	if e.observer != nil {
		e.observer.AnimationsActive(e.active)
	}
}

func (e *Engine) notifyGroups() {
	if e.observer != nil {
		e.observer.OutroGroupsOpen(e.open)
	}
}

// resolve validates cfg, logging and clamping invalid timings.
func (e *Engine) resolve(node *dom.Node, cfg Config) Config {
	if err := cfg.validate(); err != nil {
		e.logger.Warn("transition: invalid config", "node", node.NodeName(), "error", err)
	}
	return cfg.normalized()
}

func dispatch(node *dom.Node, name string) {
	node.DispatchEvent(dom.NewCustomEvent(name, nil, dom.EventInit{}))
}
