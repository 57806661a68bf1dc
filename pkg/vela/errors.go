package vela

import "github.com/vango-dev/vela/internal/errors"

// ErrOutsideComponent is returned by the lifecycle helpers (OnMount,
// OnDestroy, BeforeUpdate, AfterUpdate, SetContext, GetContext, HasContext,
// Dispatcher) when no component is current.
//
// Call them from a Definition's Instance function, or from code that runs
// while a component is being updated.
var ErrOutsideComponent = errors.New("E102")

// ErrDestroyed is returned by operations on a component that has already
// been destroyed.
var ErrDestroyed = errors.New("E103")
