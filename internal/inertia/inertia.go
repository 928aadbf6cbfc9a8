// Package inertia turns vehicle acceleration into camera sway.
package inertia

import (
	"math"

	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	gravity = 9.81

	// pitchTimeConstant is independent of roughness and faster than the
	// positional channels.
	pitchTimeConstant = 1e-6

	// followFadeSpeed is the forward speed below which yaw-follow fades out.
	followFadeSpeed = 3.0
)

// State holds the filtered output of every channel.
type State struct {
	// DirectionYaw is subtracted from the camera yaw: positive turns the view right.
	DirectionYaw float32
	// Move is the positional offset in the vehicle frame (x right, y forward, z up).
	Move mgl32.Vec3
	// Pitch is added to the camera pitch in degrees.
	Pitch float32
}

// Input is the per-frame telemetry the channels read.
type Input struct {
	LocalVelocity      mgl32.Vec3
	RotationVelocity   mgl32.Vec3
	Acceleration       mgl32.Vec3
	Centripetal        mgl32.Vec3
	SuspensionVelocity float32
	// SuppressFollow forces yaw-follow to zero (helicopters, hovering VTOL, hover mode).
	SuppressFollow bool
}

// TimeConstant returns the positional filter constant for a roughness value.
func TimeConstant(roughness float32) float32 {
	return float32(math.Pow(10, float64(-3-roughness)))
}

// Update advances all five channels by dt.
func Update(s State, in Input, m model.Movement, dt float32) State {
	tc := TimeConstant(m.Roughness)

	if !m.Follow || in.SuppressFollow {
		s.DirectionYaw = 0
	} else {
		s.DirectionYaw = mathutil.Smooth(s.DirectionYaw, FollowTarget(in, m), tc, dt)
	}

	target := mgl32.Vec3{
		Lateral(in.Centripetal.X()/gravity, m),
		Longitudinal(in.Acceleration.Y()/gravity, m),
		Vertical(in.Centripetal.Z()/gravity+in.SuspensionVelocity*m.Bump, m),
	}
	for i := range s.Move {
		s.Move[i] = mathutil.Smooth(s.Move[i], target[i], tc, dt)
	}

	s.Pitch = mathutil.Smooth(s.Pitch, Pitch(in.Centripetal.Y()/gravity, m), pitchTimeConstant, dt)
	return s
}

// FollowTarget is the unfiltered yaw-follow angle in degrees.
func FollowTarget(in Input, m model.Movement) float32 {
	v := in.LocalVelocity
	var travel float32
	if planar := (mgl32.Vec2{v.X(), v.Y()}); planar.Len() > 1e-3 {
		travel = foldHalf(mathutil.Rad(90) - float32(math.Atan2(float64(v.Y()), float64(v.X()))))
	}

	rad := m.RotationDirectionMult*travel - m.RotationRotationMult*in.RotationVelocity.Z()
	deg := mathutil.Clamp(mathutil.Deg(rad), -m.RotationMaxAngle, m.RotationMaxAngle)

	fade := mathutil.Clamp(mathutil.Abs(v.Y())/followFadeSpeed, 0, 1)
	return deg * fade
}

// foldHalf wraps an angle to (-pi, pi] and mirrors it into [-pi/2, pi/2],
// so reversing reads as driving forward.
func foldHalf(a float32) float32 {
	a = float32(math.Remainder(float64(a), 2*math.Pi))
	switch {
	case a > math.Pi/2:
		return math.Pi - a
	case a < -math.Pi/2:
		return -math.Pi - a
	}
	return a
}

// gain applies the deadzone, gain and limit shared by the channels.
func gain(g, dz, mult, limit float32) float32 {
	return mathutil.Min(mathutil.Max(g-dz, 0)*mult, limit)
}

// Longitudinal maps forward g to a y offset: speeding up pushes the camera back.
func Longitudinal(g float32, m model.Movement) float32 {
	switch {
	case g > m.LongDeadzone:
		return -gain(g, m.LongDeadzone, m.LongBackwardMult, m.LongBackwardLimit)
	case g < -m.LongDeadzone:
		return gain(-g, m.LongDeadzone, m.LongForwardMult, m.LongForwardLimit)
	}
	return 0
}

// Lateral maps leftward g to an x offset. Turning left moves the camera right.
func Lateral(g float32, m model.Movement) float32 {
	if mathutil.Abs(g) <= m.LatDeadzone {
		return 0
	}
	return mathutil.Sgn(g) * gain(mathutil.Abs(g), m.LatDeadzone, m.LatMult, m.LatLimit)
}

// Vertical maps upward g to a z offset: upward force lowers the camera.
func Vertical(g float32, m model.Movement) float32 {
	switch {
	case g > m.VertDeadzone:
		return -gain(g, m.VertDeadzone, m.VertDownMult, m.VertDownLimit)
	case g < -m.VertDeadzone:
		return gain(-g, m.VertDeadzone, m.VertUpMult, m.VertUpLimit)
	}
	return 0
}

// Pitch maps forward g to a pitch bias in degrees.
func Pitch(g float32, m model.Movement) float32 {
	switch {
	case g > m.PitchDeadzone:
		return gain(g, m.PitchDeadzone, m.PitchUpMult, m.PitchUpMaxAngle)
	case g < -m.PitchDeadzone:
		return -gain(-g, m.PitchDeadzone, m.PitchDownMult, m.PitchDownMaxAngle)
	}
	return 0
}
