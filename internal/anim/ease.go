package anim

// Ease maps a normalized time u in [0,1] to an eased fraction in [0,1].
// All easings here fix u=0 at 0 and u=1 at 1.
type Ease func(u float64) float64

func Linear(u float64) float64 { return u }

func CubicIn(u float64) float64 { return u * u * u }

func CubicOut(u float64) float64 {
	v := 1 - u
	return 1 - v*v*v
}

// CubicInOut is the symmetric cubic used for per-segment carousel easing.
func CubicInOut(u float64) float64 {
	if u < 0.5 {
		return 4 * u * u * u
	}
	v := -2*u + 2
	return 1 - v*v*v/2
}

// Smooth is the classic smoothstep 3u^2 - 2u^3.
func Smooth(u float64) float64 { return u * u * (3 - 2*u) }

// ByName resolves an easing curve by name; unknown names fall back to linear.
func ByName(kind string) Ease {
	switch kind {
	case "linear", "":
		return Linear
	case "cubic-in":
		return CubicIn
	case "cubic-out":
		return CubicOut
	case "cubic-in-out":
		return CubicInOut
	case "smooth":
		return Smooth
	default:
		return Linear
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
