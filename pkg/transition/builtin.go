package transition

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/vango-dev/vela/internal/errors"
	"github.com/vango-dev/vela/pkg/dom"
)

// DefaultDuration is the duration of the built-in effects when none is
// given.
const DefaultDuration = 400 * time.Millisecond

// FadeParams configures Fade.
type FadeParams struct {
	Delay    time.Duration
	Duration time.Duration
	Easing   func(float64) float64
}

// Fade animates opacity between zero and the node's own opacity.
func Fade(node *dom.Node, params any, _ Options) Config {
	p, _ := params.(FadeParams)
	if ptr, ok := params.(*FadeParams); ok && ptr != nil {
		p = *ptr
	}
	if p.Duration == 0 {
		p.Duration = DefaultDuration
	}
	if p.Easing == nil {
		p.Easing = Linear
	}
	o := node.Style().Float("opacity", 1)
	return Config{
		Delay:    p.Delay,
		Duration: p.Duration,
		Easing:   p.Easing,
		CSS: func(t, _ float64) string {
			return "opacity: " + num(t*o)
		},
	}
}

// FlyParams configures Fly. X and Y accept CSS lengths such as "100",
// "-2em" or "50%"; unitless values are pixels.
type FlyParams struct {
	Delay    time.Duration
	Duration time.Duration
	Easing   func(float64) float64
	X, Y     string
	Opacity  float64
}

// Fly slides the node in from (X, Y) while fading from Opacity.
func Fly(node *dom.Node, params any, _ Options) Config {
	p, _ := params.(FlyParams)
	if ptr, ok := params.(*FlyParams); ok && ptr != nil {
		p = *ptr
	}
	if p.Duration == 0 {
		p.Duration = DefaultDuration
	}
	if p.Easing == nil {
		p.Easing = CubicOut
	}

	style := node.Style()
	target := style.Float("opacity", 1)
	transform := style.Get("transform")
	if transform == "none" {
		transform = ""
	}
	od := target * (1 - p.Opacity)
	xv, xu := SplitCSSUnit(p.X)
	yv, yu := SplitCSSUnit(p.Y)

	prefix := "transform: "
	if transform != "" {
		prefix += transform + " "
	}
	return Config{
		Delay:    p.Delay,
		Duration: p.Duration,
		Easing:   p.Easing,
		CSS: func(t, u float64) string {
			return fmt.Sprintf("%stranslate(%s%s, %s%s); opacity: %s",
				prefix, num((1-t)*xv), xu, num((1-t)*yv), yu, num(target-od*u))
		},
	}
}

var cssUnit = regexp.MustCompile(`^\s*(-?[\d.]+)(\S*)\s*$`)

// SplitCSSUnit splits a CSS length into its number and unit. The unit
// defaults to "px". Unparseable input yields 0px.
func SplitCSSUnit(value string) (float64, string) {
	m := cssUnit.FindStringSubmatch(value)
	if m == nil {
		return 0, "px"
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "px"
	}
	unit := m[2]
	if unit == "" {
		unit = "px"
	}
	return f, unit
}

var builtins = map[string]Func{
	"fade": Fade,
	"fly":  Fly,
}

// Lookup returns a built-in transition by name.
func Lookup(name string) (Func, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, errors.New("E061").WithDetailf("unknown transition %q; available: %v", name, Names())
	}
	return fn, nil
}

// Names returns the built-in transition names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
