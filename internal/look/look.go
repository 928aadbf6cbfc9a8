// Package look turns raw look input into a smoothed camera look rotation.
//
// Yaw is positive to the left, pitch positive up, both in degrees. Input axes
// are positive right and down. Every handler is a pure function of the
// previous state and this frame's input.
package look

import (
	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
)

const (
	MaxPitch     = 90.0
	MaxYaw       = 179.0
	MaxYawGlass  = 135.0
	RearYaw      = 180.0
	GlanceYaw    = 90.0
	inputEpsilon = 0.01
)

// Source is the input device driving the look this frame.
type Source int

const (
	SourceGamepad Source = iota
	SourceMouse
	SourceWheel
)

func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceWheel:
		return "wheel"
	default:
		return "gamepad"
	}
}

// Select picks exactly one source: wheel buttons, then keyboard and mouse,
// then gamepad.
func Select(wheelAvailable, wheelPressed, usingKeyboard bool) Source {
	switch {
	case wheelAvailable && wheelPressed:
		return SourceWheel
	case usingKeyboard:
		return SourceMouse
	default:
		return SourceGamepad
	}
}

// State is the look rotation shared by all handlers plus the mouse accumulator.
type State struct {
	Pitch float32
	Yaw   float32

	// MousePitch and MouseYaw are bounded to [-1, 1] and use the rotation's
	// sign convention.
	MousePitch  float32
	MouseYaw    float32
	LastMouseMs int64
}

// LookingBack reports whether the current yaw is past either shoulder.
func (s State) LookingBack() bool {
	return mathutil.Abs(s.Yaw) > GlanceYaw
}

// RearLookAngle picks the yaw for looking back. Without horizontal input the
// camera turns over the shoulder away from the seat side; otherwise it keeps
// turning the way the input points.
func RearLookAngle(seat model.SeatSide, lookLeftRight, max float32) float32 {
	if mathutil.Abs(lookLeftRight) < inputEpsilon {
		if seat == model.SeatRight {
			return max
		}
		return -max
	}
	return -mathutil.Sgn(lookLeftRight) * max
}

// IntoGlass reports whether looking toward dir (positive right) faces the
// intact window next to an off-centre seat.
func IntoGlass(seat model.SeatSide, dir float32, windowIntact bool) bool {
	if !windowIntact {
		return false
	}
	switch seat {
	case model.SeatLeft:
		return dir > inputEpsilon
	case model.SeatRight:
		return dir < -inputEpsilon
	default:
		return false
	}
}

func yawLimit(intoGlass bool) float32 {
	if intoGlass {
		return MaxYawGlass
	}
	return MaxYaw
}

func smoothTo(s State, pitch, yaw, tc, dt float32) State {
	s.Pitch = mathutil.Smooth(s.Pitch, pitch, tc, dt)
	s.Yaw = mathutil.Smooth(s.Yaw, yaw, tc, dt)
	return s
}
