package transition

import "math"

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// CubicOut starts fast and decelerates.
func CubicOut(t float64) float64 {
	f := t - 1.0
	return f*f*f + 1.0
}

// CubicIn starts slowly and accelerates.
func CubicIn(t float64) float64 { return t * t * t }

// CircIn follows a quarter circle, starting slowly.
func CircIn(t float64) float64 { return 1.0 - math.Sqrt(1.0-t*t) }

// CircOut follows a quarter circle, ending slowly.
func CircOut(t float64) float64 {
	t--
	return math.Sqrt(1 - t*t)
}

// CSS named timing functions.
var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    = CubicBezier(0.42, 0.0, 1.0, 1.0)
	EaseOut   = CubicBezier(0.0, 0.0, 0.58, 1.0)
	EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)
)

// Easings maps easing names to functions.
var Easings = map[string]func(float64) float64{
	"linear":      Linear,
	"cubicOut":    CubicOut,
	"cubicIn":     CubicIn,
	"circIn":      CircIn,
	"circOut":     CircOut,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// CubicBezier returns an easing function equivalent to CSS
// cubic-bezier(x1, y1, x2, y2).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		for range 8 {
			x := bezier(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezier(y1, y2, clamp01(u))
			}
			dx := bezierSlope(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Newton did not converge; bisect.
		lo, hi := 0.0, 1.0
		u = clamp01(u)
		for range 20 {
			x := bezier(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) / 2
		}
		return bezier(y1, y2, u)
	}
}

func bezier(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
