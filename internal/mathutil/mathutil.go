// Package mathutil holds the scalar helpers shared by the camera pipeline.
package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lerp interpolates between a and b by t (unclamped).
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Map linearly maps x from [inMin, inMax] onto [outMin, outMax] without clamping.
// A degenerate input range returns outMin.
func Map(x, inMin, inMax, outMin, outMax float32) float32 {
	if inMax == inMin {
		return outMin
	}
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// MapClamped is Map with the result clamped to the output range.
func MapClamped(x, inMin, inMax, outMin, outMax float32) float32 {
	lo, hi := outMin, outMax
	if lo > hi {
		lo, hi = hi, lo
	}
	return Clamp(Map(x, inMin, inMax, outMin, outMax), lo, hi)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return mgl32.Clamp(v, lo, hi)
}

// Sgn returns -1, 0 or 1.
func Sgn(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// SmoothFactor is the frame-rate independent blend factor 1 - tc^dt.
// tc in (0,1): smaller converges faster. dt <= 0 yields 0.
func SmoothFactor(tc, dt float32) float32 {
	if dt <= 0 {
		return 0
	}
	return 1 - float32(math.Pow(float64(tc), float64(dt)))
}

// Smooth moves value toward target with SmoothFactor(tc, dt).
func Smooth(value, target, tc, dt float32) float32 {
	return Lerp(value, target, SmoothFactor(tc, dt))
}

// Wrap360 wraps an angle in degrees to [0, 360).
func Wrap360(deg float32) float32 {
	w := float32(math.Mod(float64(deg), 360))
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}

// Deg converts radians to degrees.
func Deg(rad float32) float32 {
	return mgl32.RadToDeg(rad)
}

// Rad converts degrees to radians.
func Rad(deg float32) float32 {
	return mgl32.DegToRad(deg)
}

// Abs is float32 math.Abs.
func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// Min is the smaller of a and b.
func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Max is the larger of a and b.
func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
