package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrLoopTerminated is returned by Submit after Run has returned.
var ErrLoopTerminated = errors.New("host: loop terminated")

// ErrLoopRunning is returned by Run when the loop is already running.
var ErrLoopRunning = errors.New("host: loop already running")

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFrameInterval sets the spacing between animation frames.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLogger sets the logger used to report recovered panics.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop is a real-time Host. Tasks submitted from any goroutine run on the
// goroutine that calls Run. After each task the microtask queue is drained.
// Frame callbacks fire on a ticker while any are pending.
//
// QueueMicrotask and RequestFrame must only be called from the loop
// goroutine; use Submit from anywhere else.
type Loop struct {
	interval time.Duration
	logger   *slog.Logger
	start    time.Time

	mu      sync.Mutex
	tasks   []func()
	wake    chan struct{}
	running bool
	done    bool

	// loop goroutine only
	microtasks []func()
	frames     []func(now time.Duration)
}

// NewLoop creates a loop. It does nothing until Run is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		interval: DefaultFrameInterval,
		logger:   slog.Default(),
		start:    time.Now(),
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submit schedules fn to run on the loop goroutine. It is safe to call from
// any goroutine.
func (l *Loop) Submit(fn func()) error {
	l.mu.Lock()
	if l.done {
		l.mu.Unlock()
		return ErrLoopTerminated
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// QueueMicrotask implements Host.
func (l *Loop) QueueMicrotask(fn func()) {
	l.microtasks = append(l.microtasks, fn)
}

// RequestFrame implements Host.
func (l *Loop) RequestFrame(fn func(now time.Duration)) {
	l.frames = append(l.frames, fn)
}

// Now implements Host.
func (l *Loop) Now() time.Duration {
	return time.Since(l.start)
}

// Run processes tasks until ctx is cancelled. It returns nil on
// cancellation. Tasks still queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running || l.done {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.done = true
		l.tasks = nil
		l.mu.Unlock()
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.runTasks()
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		case <-ticker.C:
			if len(l.frames) > 0 {
				l.runFrame()
			}
		}
	}
}

func (l *Loop) runTasks() {
	for {
		l.mu.Lock()
		tasks := l.tasks
		l.tasks = nil
		l.mu.Unlock()
		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			l.safeRun(fn)
			l.drainMicrotasks()
		}
	}
}

func (l *Loop) runFrame() {
	frames := l.frames
	l.frames = nil
	now := l.Now()
	for _, fn := range frames {
		l.safeRun(func() { fn(now) })
	}
	l.drainMicrotasks()
}

func (l *Loop) drainMicrotasks() {
	for len(l.microtasks) > 0 {
		fn := l.microtasks[0]
		l.microtasks[0] = nil
		l.microtasks = l.microtasks[1:]
		l.safeRun(fn)
	}
}

func (l *Loop) safeRun(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("host: task panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
