package host

import "time"

// DefaultFrameInterval is the frame spacing used by AdvanceBy callers that
// want a 60Hz cadence.
const DefaultFrameInterval = 16666666 * time.Nanosecond

// Manual is a deterministic Host. Microtasks run only from DrainMicrotasks,
// and frames only from Frame or Advance. The clock moves only when the
// caller advances it.
type Manual struct {
	now        time.Duration
	microtasks []func()
	frames     []func(now time.Duration)
}

// NewManual returns a Manual host with its clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// QueueMicrotask implements Host.
func (m *Manual) QueueMicrotask(fn func()) {
	m.microtasks = append(m.microtasks, fn)
}

// RequestFrame implements Host.
func (m *Manual) RequestFrame(fn func(now time.Duration)) {
	m.frames = append(m.frames, fn)
}

// Now implements Host.
func (m *Manual) Now() time.Duration { return m.now }

// PendingMicrotasks returns the number of queued microtasks.
func (m *Manual) PendingMicrotasks() int { return len(m.microtasks) }

// PendingFrames returns the number of callbacks waiting for a frame.
func (m *Manual) PendingFrames() int { return len(m.frames) }

// DrainMicrotasks runs queued microtasks, including ones queued while
// draining, until the queue is empty. It returns how many ran.
func (m *Manual) DrainMicrotasks() int {
	n := 0
	for len(m.microtasks) > 0 {
		fn := m.microtasks[0]
		m.microtasks[0] = nil
		m.microtasks = m.microtasks[1:]
		fn()
		n++
	}
	return n
}

// Frame drains microtasks, then runs the callbacks registered for the
// next frame at the current time, then drains microtasks again. Callbacks
// registered during the frame wait for the following one.
func (m *Manual) Frame() {
	m.DrainMicrotasks()
	frames := m.frames
	m.frames = nil
	for _, fn := range frames {
		fn(m.now)
	}
	m.DrainMicrotasks()
}

// Advance moves the clock forward by d and runs one frame.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
	m.Frame()
}

// AdvanceBy moves the clock forward by total in steps of step, running a
// frame after each step. The final step is shortened so the clock lands
// exactly on now+total.
func (m *Manual) AdvanceBy(total, step time.Duration) {
	if step <= 0 {
		step = DefaultFrameInterval
	}
	end := m.now + total
	for m.now < end {
		d := step
		if m.now+d > end {
			d = end - m.now
		}
		m.Advance(d)
	}
}
