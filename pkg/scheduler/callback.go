package scheduler

// Callback is a render callback handle. Queuing the same handle several
// times within one flush still runs it once.
type Callback struct {
	fn   func()
	seen uint64
}

// NewCallback wraps fn in a handle.
func NewCallback(fn func()) *Callback {
	return &Callback{fn: fn}
}

// Run calls the wrapped function directly.
func (c *Callback) Run() { c.fn() }
