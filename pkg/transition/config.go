package transition

import (
	"time"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/dom"
)

// Direction tells a transition function which way it is being run.
type Direction string

const (
	In   Direction = "in"
	Out  Direction = "out"
	Both Direction = "both"
)

// Options is passed to transition functions.
type Options struct {
	Direction Direction
}

// DefaultConfigDuration is used when a Config leaves Duration unset.
const DefaultConfigDuration = 300 * time.Millisecond

// Config describes a single transition run.
type Config struct {
	Delay time.Duration

	// Duration defaults to DefaultConfigDuration when zero. A negative
	// duration is invalid and runs the transition instantly.
	Duration time.Duration

	// Easing maps linear progress to eased progress. Defaults to Linear.
	Easing func(t float64) float64

	// CSS returns the declarations for eased progress t and u = 1-t.
	CSS func(t, u float64) string

	// Tick is called every frame with eased progress t and u = 1-t.
	Tick func(t, u float64)

	// Lazy, when set, defers building the real config until after the
	// current task. The other fields are ignored.
	Lazy func(Options) Config
}

// Func builds the transition config for node.
type Func func(node *dom.Node, params any, opts Options) Config

func (c Config) validate() error {
	if c.Delay < 0 || c.Duration < 0 {
		return errors.New("E060").WithDetailf("delay %v, duration %v", c.Delay, c.Duration)
	}
	return nil
}

func (c Config) normalized() Config {
	if c.Delay < 0 {
		c.Delay = 0
	}
	switch {
	case c.Duration < 0:
		c.Duration = 0
	case c.Duration == 0:
		c.Duration = DefaultConfigDuration
	}
	if c.Easing == nil {
		c.Easing = Linear
	}
	if c.Tick == nil {
		c.Tick = func(float64, float64) {}
	}
	return c
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
