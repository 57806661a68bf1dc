// Package host provides the suspension points the runtime schedules work
// on: a microtask queue, an animation-frame callback, and a monotonic
// clock.
//
// Two implementations are provided. Manual is fully deterministic and is
// driven by the caller, which makes it the host of choice for tests and for
// batch tools. Loop runs a real-time event loop on its own goroutine.
//
// All runtime state bound to a Host must be touched only from the goroutine
// that drives it.
package host

import "time"

// Host schedules runtime work.
type Host interface {
	// QueueMicrotask runs fn after the current task, before the next frame.
	QueueMicrotask(fn func())

	// RequestFrame runs fn once on the next animation frame with the
	// frame timestamp.
	RequestFrame(fn func(now time.Duration))

	// Now returns the current monotonic time.
	Now() time.Duration
}
