package look

import "github.com/dynfpv/extension/internal/model"

// WheelInput is one frame of wheel-device look buttons.
type WheelInput struct {
	Left, Right, Back bool
	Seat              model.SeatSide
	SeatWindowIntact  bool
}

// WheelState remembers button history for rear-look shoulder selection.
type WheelState struct {
	PrevLeft  bool
	PrevRight bool
	// Shoulder is the committed rear yaw while both buttons are held, 0 otherwise.
	Shoulder float32
}

// Wheel maps look buttons to fixed glances. Holding both buttons looks back
// over the shoulder chosen by press order and keeps it until one is released.
func Wheel(s State, ws WheelState, in WheelInput, p model.Look, dt float32) (State, WheelState, bool) {
	var yaw float32
	var dir float32

	switch {
	case in.Left && in.Right:
		if ws.Shoulder == 0 {
			newLeft := !ws.PrevLeft
			newRight := !ws.PrevRight
			switch {
			case newLeft && !newRight:
				ws.Shoulder = -RearYaw
			case newRight && !newLeft:
				ws.Shoulder = RearYaw
			default:
				ws.Shoulder = RearLookAngle(in.Seat, 0, RearYaw)
			}
		}
		yaw = ws.Shoulder
	case in.Back:
		ws.Shoulder = 0
		yaw = RearLookAngle(in.Seat, 0, RearYaw)
	case in.Left:
		ws.Shoulder = 0
		yaw = GlanceYaw
		dir = -1
	case in.Right:
		ws.Shoulder = 0
		yaw = -GlanceYaw
		dir = 1
	default:
		ws.Shoulder = 0
	}

	ws.PrevLeft = in.Left
	ws.PrevRight = in.Right

	intoGlass := IntoGlass(in.Seat, dir, in.SeatWindowIntact)
	return smoothTo(s, 0, yaw, p.LookTime, dt), ws, intoGlass
}
