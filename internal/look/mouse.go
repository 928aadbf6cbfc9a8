package look

import (
	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
)

// centerMinSpeed is the vehicle speed above which the mouse look recentres.
const centerMinSpeed = 1.0

// MouseInput is one frame of mouse movement.
type MouseInput struct {
	DX, DY           float32
	Behind           bool
	Seat             model.SeatSide
	SeatWindowIntact bool
	Speed            float32
	NowMs            int64
}

// Mouse accumulates movement into a bounded look state. After
// MouseCenterTimeout ms without movement, while moving and not looking back,
// the accumulator eases back to centre.
func Mouse(s State, in MouseInput, p model.Look, dt float32) (State, bool) {
	if in.DX != 0 || in.DY != 0 {
		s.MouseYaw = mathutil.Clamp(s.MouseYaw-in.DX*p.MouseSensitivity, -1, 1)
		s.MousePitch = mathutil.Clamp(s.MousePitch-in.DY*p.MouseSensitivity, -1, 1)
		s.LastMouseMs = in.NowMs
	} else if in.NowMs-s.LastMouseMs > int64(p.MouseCenterTimeout) && in.Speed > centerMinSpeed && !in.Behind {
		s.MouseYaw = mathutil.Smooth(s.MouseYaw, 0, p.MouseLookTime, dt)
		s.MousePitch = mathutil.Smooth(s.MousePitch, 0, p.MouseLookTime, dt)
	}

	lookRight := -s.MouseYaw
	intoGlass := IntoGlass(in.Seat, lookRight, in.SeatWindowIntact)
	yaw := s.MouseYaw * yawLimit(intoGlass)
	if in.Behind {
		yaw = RearLookAngle(in.Seat, lookRight, RearYaw)
		intoGlass = false
	}
	pitch := s.MousePitch * MaxPitch

	return smoothTo(s, pitch, yaw, p.MouseLookTime, dt), intoGlass
}
