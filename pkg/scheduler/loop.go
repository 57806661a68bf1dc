package scheduler

import "time"

// Task is a per-frame task registered with Loop.
type Task struct {
	fn      func(now time.Duration) bool
	done    chan struct{}
	aborted bool
}

// Abort removes the task. The done channel is closed; the task function is
// not called again.
func (t *Task) Abort() {
	if t.aborted {
		return
	}
	t.aborted = true
	close(t.done)
}

// Done is closed when the task finishes or is aborted.
func (t *Task) Done() <-chan struct{} { return t.done }

// Finished reports whether the task has finished or been aborted.
func (t *Task) Finished() bool { return t.aborted }

// Loop registers fn to run on every animation frame until it returns false
// or the task is aborted.
func (s *Scheduler) Loop(fn func(now time.Duration) bool) *Task {
	t := &Task{fn: fn, done: make(chan struct{})}
	if len(s.tasks) == 0 && !s.framePending {
		s.requestFrame()
	}
	s.tasks = append(s.tasks, t)
	return t
}

// ActiveTasks returns the number of running frame tasks. Aborted tasks
// are not counted even before the next frame drops them.
func (s *Scheduler) ActiveTasks() int {
	n := 0
	for _, t := range s.tasks {
		if !t.aborted {
			n++
		}
	}
	return n
}

func (s *Scheduler) requestFrame() {
	s.framePending = true
	s.host.RequestFrame(s.runTasks)
}

func (s *Scheduler) runTasks(now time.Duration) {
	s.framePending = false
	tasks := append([]*Task(nil), s.tasks...)
	for _, t := range tasks {
		if t.aborted {
			continue
		}
		if !t.fn(now) {
			t.Abort()
		}
	}

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.aborted {
			kept = append(kept, t)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept

	if len(s.tasks) > 0 && !s.framePending {
		s.requestFrame()
	}
}

// Wait runs fn on the next microtask. All functions passed to Wait before
// that microtask runs share it and run in registration order.
func (s *Scheduler) Wait(fn func()) {
	s.waiters = append(s.waiters, fn)
	if s.waitPending {
		return
	}
	s.waitPending = true
	s.host.QueueMicrotask(func() {
		waiters := s.waiters
		s.waiters = nil
		s.waitPending = false
		for _, w := range waiters {
			w()
		}
	})
}
