// Package horizon computes horizon-lock counter rotation and the rear-look lean.
package horizon

import (
	"math"

	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	leanStartYaw = 85.0
	leanFullYaw  = 180.0
	peekFullYaw  = 160.0
)

// Remap folds an angle past +-90 back toward the horizon so an inverted
// vehicle does not flip the correction.
func Remap(a float32) float32 {
	switch {
	case a > 90:
		return 180 - a
	case a < -90:
		return -180 - a
	}
	return a
}

// RollWeight is 1 looking forward, fading to 0 at 90 degrees of yaw and beyond.
func RollWeight(yaw float32) float32 {
	return mathutil.MapClamped(mathutil.Abs(yaw), 0, 90, 1, 0)
}

// PitchWeight fades 1 to 0 over 0..90 and 0 to -1 over 90..180 degrees of yaw.
func PitchWeight(yaw float32) float32 {
	a := mathutil.Abs(yaw)
	if a <= 90 {
		return mathutil.MapClamped(a, 0, 90, 1, 0)
	}
	return mathutil.MapClamped(a, 90, 180, 0, -1)
}

// Result is the rotation correction: X pitch, Y roll, in degrees.
type Result struct {
	Correction   mgl32.Vec2
	DynamicPitch float32
}

// Lock computes the counter rotation for vehicle rotation rot (x pitch,
// y roll) seen at look yaw. dynamicPitch is the baseline tracked in
// PitchDynamic mode and is returned updated.
func Lock(rot mgl32.Vec3, yaw float32, h model.HorizonLock, dynamicPitch, dt float32) Result {
	if !h.Lock {
		return Result{DynamicPitch: dynamicPitch}
	}

	pitch := mathutil.Clamp(Remap(rot.X()), -h.PitchLim, h.PitchLim)
	roll := mathutil.Clamp(Remap(rot.Y()), -h.RollLim, h.RollLim)

	res := Result{DynamicPitch: dynamicPitch}
	res.Correction[1] = -roll * RollWeight(yaw)

	switch h.PitchMode {
	case model.PitchHorizonFull:
		res.Correction[0] = -pitch * PitchWeight(yaw)
	case model.PitchVehicleOnly:
		res.Correction[0] = 0
	case model.PitchDynamic:
		res.DynamicPitch = mathutil.Lerp(dynamicPitch, pitch, dynamicFactor(h.CenterSpeed, dt))
		res.Correction[0] = -res.DynamicPitch * PitchWeight(yaw)
	}
	return res
}

func dynamicFactor(centerSpeed, dt float32) float32 {
	if dt <= 0 {
		return 0
	}
	if centerSpeed <= 0 {
		return 1
	}
	return 1 - float32(math.Exp(float64(-dt/centerSpeed)))
}

// Lean shifts the camera when looking back past 85 degrees: toward the
// vehicle centre, forward, and up unless the view is against the glass.
func Lean(yaw float32, seat model.SeatSide, intoGlass bool, l model.Lean) mgl32.Vec3 {
	a := mathutil.Abs(yaw)
	if a <= leanStartYaw {
		return mgl32.Vec3{}
	}

	f := mathutil.MapClamped(a, leanStartYaw, leanFullYaw, 0, 1)

	var out mgl32.Vec3
	switch seat {
	case model.SeatLeft:
		out[0] = l.CenterDist * f
	case model.SeatRight:
		out[0] = -l.CenterDist * f
	}
	out[1] = l.ForwardDist * f
	if !intoGlass {
		out[2] = l.UpDist * mathutil.MapClamped(a, leanStartYaw, peekFullYaw, 0, 1)
	}
	return out
}
