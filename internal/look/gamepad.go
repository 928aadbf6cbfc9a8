package look

import (
	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
)

// GamepadInput is one frame of stick input.
type GamepadInput struct {
	LeftRight        float32
	UpDown           float32
	Behind           bool
	Seat             model.SeatSide
	SeatWindowIntact bool
}

// Gamepad maps the stick directly to a target rotation.
func Gamepad(s State, in GamepadInput, p model.Look, dt float32) (State, bool) {
	lr := mathutil.Clamp(in.LeftRight, -1, 1)
	ud := mathutil.Clamp(in.UpDown, -1, 1)

	intoGlass := IntoGlass(in.Seat, lr, in.SeatWindowIntact)
	yaw := -lr * yawLimit(intoGlass)
	if in.Behind {
		yaw = RearLookAngle(in.Seat, lr, RearYaw)
		intoGlass = false
	}
	pitch := -ud * MaxPitch

	return smoothTo(s, pitch, yaw, p.LookTime, dt), intoGlass
}
