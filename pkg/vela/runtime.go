package vela

import (
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/hydrate"
	"github.com/vango-dev/vela/pkg/metrics"
	"github.com/vango-dev/vela/pkg/scheduler"
	"github.com/vango-dev/vela/pkg/transition"
)

// Runtime event types delivered to subscribers.
const (
	EventFlush              = "flush"
	EventClaim              = "claim"
	EventReorder            = "reorder"
	EventAnimations         = "animations"
	EventOutroGroups        = "outro_groups"
	EventComponentCreated   = "component_created"
	EventComponentDestroyed = "component_destroyed"
)

// Event is a runtime notification, as streamed by the inspector.
type Event struct {
	Type string         `json:"type"`
	At   float64        `json:"at_ms"`
	Data map[string]any `json:"data,omitempty"`
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	strict  bool
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(c *runtimeConfig) { c.logger = l }
}

// WithMetrics reports runtime statistics to m.
func WithMetrics(m *metrics.Metrics) RuntimeOption {
	return func(c *runtimeConfig) { c.metrics = m }
}

// WithTracer sets the tracer used for flush and hydration spans.
func WithTracer(t trace.Tracer) RuntimeOption {
	return func(c *runtimeConfig) { c.tracer = t }
}

// WithStrictHydration makes hydration text mismatches fail with E040
// instead of being repaired silently.
func WithStrictHydration(strict bool) RuntimeOption {
	return func(c *runtimeConfig) { c.strict = strict }
}

// Runtime owns the scheduler, transition engine and hydration session
// shared by every component mounted through it.
type Runtime struct {
	host      host.Host
	sched     *scheduler.Scheduler
	engine    *transition.Engine
	hydration *hydrate.Session
	logger    *slog.Logger
	metrics   *metrics.Metrics

	mu          sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

// NewRuntime creates a runtime driven by h.
func NewRuntime(h host.Host, opts ...RuntimeOption) *Runtime {
	cfg := runtimeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer("vela")
	}

	rt := &Runtime{
		host:        h,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
		subscribers: make(map[int]func(Event)),
	}
	rt.sched = scheduler.New(h,
		scheduler.WithObserver(rt),
		scheduler.WithTracer(cfg.tracer),
		scheduler.WithLogger(cfg.logger),
	)
	rt.engine = transition.New(rt.sched,
		transition.WithObserver(rt),
		transition.WithLogger(cfg.logger),
	)
	rt.hydration = hydrate.NewSession(hydrate.Options{
		Strict:   cfg.strict,
		Logger:   cfg.logger,
		Observer: rt,
		Tracer:   cfg.tracer,
	})
	return rt
}

// Host returns the host driving the runtime.
func (rt *Runtime) Host() host.Host { return rt.host }

// Scheduler returns the update scheduler.
func (rt *Runtime) Scheduler() *scheduler.Scheduler { return rt.sched }

// Transitions returns the transition engine.
func (rt *Runtime) Transitions() *transition.Engine { return rt.engine }

// Hydration returns the hydration session.
func (rt *Runtime) Hydration() *hydrate.Session { return rt.hydration }

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// Flush runs pending component updates now.
func (rt *Runtime) Flush() error { return rt.sched.Flush() }

// Tick runs fn after the next flush.
func (rt *Runtime) Tick(fn func()) { rt.sched.Tick(fn) }

// Insert inserts node into target before anchor, honouring the claim
// order of nodes while hydrating.
func (rt *Runtime) Insert(target, node, anchor *dom.Node) {
	rt.hydration.Insert(target, node, anchor)
}

// Append appends node to target, honouring the claim order of nodes
// while hydrating.
func (rt *Runtime) Append(target, node *dom.Node) {
	rt.hydration.Append(target, node)
}

// Detach removes node from its parent.
func Detach(node *dom.Node) {
	if node != nil {
		node.Remove()
	}
}

// Subscribe registers fn for runtime events and returns a function that
// removes it. fn may be called from the runtime's goroutine while other
// goroutines subscribe, so it must not block.
func (rt *Runtime) Subscribe(fn func(Event)) (unsubscribe func()) {
	rt.mu.Lock()
	id := rt.nextSub
	rt.nextSub++
	rt.subscribers[id] = fn
	rt.mu.Unlock()
	return func() {
		rt.mu.Lock()
		delete(rt.subscribers, id)
		rt.mu.Unlock()
	}
}

func (rt *Runtime) emit(typ string, data map[string]any) {
	rt.mu.Lock()
	if len(rt.subscribers) == 0 {
		rt.mu.Unlock()
		return
	}
	subs := make([]func(Event), 0, len(rt.subscribers))
	for _, fn := range rt.subscribers {
		subs = append(subs, fn)
	}
	rt.mu.Unlock()

	ev := Event{
		Type: typ,
		At:   float64(rt.host.Now()) / float64(time.Millisecond),
		Data: data,
	}
	for _, fn := range subs {
		fn(ev)
	}
}

// FlushCompleted implements scheduler.Observer.
func (rt *Runtime) FlushCompleted(s scheduler.FlushStats) {
	if rt.metrics != nil {
		rt.metrics.FlushCompleted(s)
	}
	if s.Err != nil {
		rt.logger.Error("flush failed", "error", s.Err, "updated", s.Updated)
	}
	data := map[string]any{
		"updated":     s.Updated,
		"duration_ms": float64(s.Duration) / float64(time.Millisecond),
	}
	if s.Err != nil {
		data["error"] = s.Err.Error()
	}
	rt.emit(EventFlush, data)
}

// Claimed implements hydrate.Observer.
func (rt *Runtime) Claimed(result string) {
	if rt.metrics != nil {
		rt.metrics.Claimed(result)
	}
	rt.emit(EventClaim, map[string]any{"result": result})
}

// Reordered implements hydrate.Observer.
func (rt *Runtime) Reordered(moves int) {
	if rt.metrics != nil {
		rt.metrics.Reordered(moves)
	}
	rt.emit(EventReorder, map[string]any{"moves": moves})
}

// AnimationsActive implements transition.Observer.
func (rt *Runtime) AnimationsActive(n int) {
	if rt.metrics != nil {
		rt.metrics.AnimationsActive(n)
	}
	rt.emit(EventAnimations, map[string]any{"active": n})
}

// OutroGroupsOpen implements transition.Observer.
func (rt *Runtime) OutroGroupsOpen(n int) {
	if rt.metrics != nil {
		rt.metrics.OutroGroupsOpen(n)
	}
	rt.emit(EventOutroGroups, map[string]any{"open": n})
}
