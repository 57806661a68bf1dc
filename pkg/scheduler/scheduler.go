package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/host"
)

const defaultTracerName = "vela"

// Updater is a unit of work in the dirty queue, typically a component.
type Updater interface {
	Update() error
}

// State is the flush state.
type State uint8

const (
	// Idle means no flush is running.
	Idle State = iota
	// Updating means the flush is draining the dirty queue. Flush calls made
	// in this state return immediately; the running pass picks up new work.
	Updating
	// Settling means the flush is running binding, render or flush
	// callbacks. A Flush call from a callback runs a nested flush.
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Updating:
		return "updating"
	case Settling:
		return "settling"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// FlushStats describes a completed outermost flush.
type FlushStats struct {
	Duration time.Duration
	Updated  int
	Err      error
}

// Observer receives flush notifications.
type Observer interface {
	FlushCompleted(FlushStats)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithObserver sets the flush observer.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observer = o }
}

// WithTracer sets the tracer used for flush spans. The default tracer comes
// from the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Scheduler) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithLogger sets the logger that reports failures of flushes started from
// a microtask, where no caller receives the error. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler owns the dirty queue and the callback queues. It is not safe
// for concurrent use; all calls must come from the goroutine driving its
// host.
type Scheduler struct {
	host     host.Host
	observer Observer
	tracer   trace.Tracer
	logger   *slog.Logger

	dirty   []Updater
	cursor  int
	pending map[Updater]struct{}

	bindings []func()
	renders  []*Callback
	flushes  []func()

	scheduled  bool
	state      State
	depth      int
	generation uint64
	updated    int

	current any

	tasks        []*Task
	framePending bool

	waiters     []func()
	waitPending bool
}

// New creates a scheduler bound to h.
func New(h host.Host, opts ...Option) *Scheduler {
	s := &Scheduler{
		host:       h,
		tracer:     otel.Tracer(defaultTracerName),
		logger:     slog.Default(),
		pending:    make(map[Updater]struct{}),
		generation: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Host returns the host the scheduler runs on.
func (s *Scheduler) Host() host.Host { return s.host }

// State returns the current flush state.
func (s *Scheduler) State() State { return s.state }

// Current returns the component currently being initialised or updated.
func (s *Scheduler) Current() any { return s.current }

// SetCurrent replaces the current component and returns the previous one.
func (s *Scheduler) SetCurrent(c any) (prev any) {
	prev = s.current
	s.current = c
	return prev
}

// MarkDirty queues u for the next flush. A u already queued and not yet
// updated is not queued again.
func (s *Scheduler) MarkDirty(u Updater) {
	if _, ok := s.pending[u]; ok {
		return
	}
	s.pending[u] = struct{}{}
	s.dirty = append(s.dirty, u)
	s.schedule()
}

// Pending returns the number of queued updaters not yet updated.
func (s *Scheduler) Pending() int { return len(s.dirty) - s.cursor }

func (s *Scheduler) schedule() {
	if s.scheduled {
		return
	}
	s.scheduled = true
	s.host.QueueMicrotask(func() {
		if err := s.Flush(); err != nil {
			s.logger.Error("scheduler: flush failed", "code", errors.Code(err), "error", err)
		}
	})
}

// AddBindingCallback queues fn to run after the current update pass.
func (s *Scheduler) AddBindingCallback(fn func()) {
	s.bindings = append(s.bindings, fn)
}

// AddRenderCallback queues cb to run after the current update pass. The
// same handle runs at most once per outermost flush no matter how many
// times it is queued. Queuing schedules a flush.
func (s *Scheduler) AddRenderCallback(cb *Callback) {
	s.renders = append(s.renders, cb)
	s.schedule()
}

// RenderFunc wraps fn in a new handle and queues it.
func (s *Scheduler) RenderFunc(fn func()) *Callback {
	cb := NewCallback(fn)
	s.AddRenderCallback(cb)
	return cb
}

// AddFlushCallback queues fn to run once the flush has fully settled.
func (s *Scheduler) AddFlushCallback(fn func()) {
	s.flushes = append(s.flushes, fn)
}

// FlushRenderCallbacks runs the queued render callbacks that appear in cbs
// right away and removes them from the queue. The others stay queued.
func (s *Scheduler) FlushRenderCallbacks(cbs []*Callback) {
	if len(cbs) == 0 || len(s.renders) == 0 {
		return
	}
	want := make(map[*Callback]struct{}, len(cbs))
	for _, cb := range cbs {
		want[cb] = struct{}{}
	}
	var kept, targets []*Callback
	for _, cb := range s.renders {
		if _, ok := want[cb]; ok {
			targets = append(targets, cb)
		} else {
			kept = append(kept, cb)
		}
	}
	s.renders = kept
	for _, cb := range targets {
		cb.fn()
	}
}

// Flush runs the update loop until nothing is dirty. Calling it while the
// update loop is draining is a no-op. If an update fails, the dirty queue
// is discarded and the failure is returned as an E101 error.
func (s *Scheduler) Flush() (err error) {
	if s.state == Updating {
		return nil
	}

	outer := s.depth == 0
	prevState := s.state
	saved := s.current
	s.depth++

	var span trace.Span
	var start time.Time
	if outer {
		start = time.Now()
		s.updated = 0
		_, span = s.tracer.Start(context.Background(), "vela.flush")
	}

	defer func() {
		s.depth--
		s.state = prevState
		s.current = saved
		if outer {
			s.finishOuter(span, start, err)
		}
	}()

	for {
		if err = s.drain(); err != nil {
			return err
		}

		s.state = Settling
		for len(s.bindings) > 0 {
			fn := s.bindings[len(s.bindings)-1]
			s.bindings = s.bindings[:len(s.bindings)-1]
			fn()
		}

		for i := 0; i < len(s.renders); i++ {
			cb := s.renders[i]
			if cb.seen == s.generation {
				continue
			}
			cb.seen = s.generation
			cb.fn()
		}
		s.renders = s.renders[:0]

		if len(s.dirty) == 0 {
			break
		}
	}

	for len(s.flushes) > 0 {
		fn := s.flushes[len(s.flushes)-1]
		s.flushes = s.flushes[:len(s.flushes)-1]
		fn()
	}
	s.scheduled = false
	return nil
}

// drain updates every dirty updater. It converts panics to errors and
// resets the queue on failure.
func (s *Scheduler) drain() (err error) {
	s.state = Updating
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			s.reset()
			err = errors.New("E101").Wrap(err)
		}
	}()

	for s.cursor < len(s.dirty) {
		u := s.dirty[s.cursor]
		s.cursor++
		delete(s.pending, u)
		s.current = u
		s.updated++
		if err := u.Update(); err != nil {
			return err
		}
	}
	s.current = nil
	s.dirty = s.dirty[:0]
	s.cursor = 0
	return nil
}

func (s *Scheduler) reset() {
	s.dirty = s.dirty[:0]
	s.cursor = 0
	clear(s.pending)
	s.scheduled = false
}

func (s *Scheduler) finishOuter(span trace.Span, start time.Time, err error) {
	s.generation++
	span.SetAttributes(attribute.Int("vela.updated", s.updated))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	if s.observer != nil {
		s.observer.FlushCompleted(FlushStats{
			Duration: time.Since(start),
			Updated:  s.updated,
			Err:      err,
		})
	}
}

// Tick schedules a flush and runs fn on the microtask after it.
func (s *Scheduler) Tick(fn func()) {
	s.schedule()
	s.host.QueueMicrotask(fn)
}
