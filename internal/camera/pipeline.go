package camera

import (
	"math"

	"github.com/dynfpv/extension/internal/dof"
	"github.com/dynfpv/extension/internal/horizon"
	"github.com/dynfpv/extension/internal/host"
	"github.com/dynfpv/extension/internal/inertia"
	"github.com/dynfpv/extension/internal/look"
	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/shake"
	"github.com/go-gl/mathgl/mgl32"
)

// Near clip distances in metres.
const (
	nearClipHeadRemoved = 0.05
	nearClipHelmet      = 0.2
	nearClipDefault     = 0.15
)

// Front window indices next to the driver seat.
const (
	windowFrontLeft  = 0
	windowFrontRight = 1
)

func (s *Script) update(st model.ScriptSettings, ped, veh host.Handle, cfg *model.VehicleConfig, mount *model.CameraProfile) {
	dt := s.h.FrameTime()
	snap := s.veh.Snapshot()
	seat := snap.SeatSide
	cam := s.rt.cam

	s.h.MarkFirstPersonThisFrame()

	s.updateLook(veh, seat, snap.Speed, cfg.Look, dt)

	in := inertia.Input{
		LocalVelocity:      snap.LocalVelocity,
		RotationVelocity:   snap.RotationVelocity,
		Acceleration:       snap.Acceleration,
		Centripetal:        snap.Centripetal,
		SuspensionVelocity: s.veh.AverageSuspensionVelocity(),
		SuppressFollow:     s.suppressFollow(veh, snap.HoverRatio),
	}
	s.rt.inertia = inertia.Update(s.rt.inertia, in, mount.Movement, dt)

	vehRot := s.h.Rotation(veh)
	lock := horizon.Lock(vehRot, s.rt.look.Yaw, mount.HorizonLock, s.rt.dynPitch, dt)
	s.rt.dynPitch = lock.DynamicPitch
	lean := horizon.Lean(s.rt.look.Yaw, seat, s.rt.intoGlass, mount.Lean)

	s.rt.avgAccel = dof.UpdateAverage(s.rt.avgAccel, snap.Centripetal, dt)
	planes := dof.Planes(st.DoFPlanes)
	if !st.DoFOverride {
		planes = dof.Compute(snap.Speed, s.rt.avgAccel, mount.DoF)
	}

	jitter := s.shake.Update(shake.Input{
		Speed:      snap.Speed,
		SpeedRatio: s.veh.SpeedRatio(),
		RPM:        snap.RPM,
		Grounded:   s.veh.WheelsGrounded(),
		Materials:  snap.Materials,
		FrameTime:  dt,
		TimeScale:  s.h.TimeScale(),
	}, mount.Movement)

	offset := mgl32.Vec3{mount.OffsetSide, mount.OffsetForward, mount.OffsetHeight}.
		Add(lean).
		Add(s.rt.inertia.Move).
		Add(mgl32.Vec3{jitter.Lateral, 0, jitter.Vertical})

	if mount.MountPoint == model.MountPed {
		s.h.AttachToPedBone(cam, ped, host.BoneHead, offset)
	} else {
		s.h.AttachToVehicle(cam, veh, s.seatOffset(veh).Add(offset))
	}

	rot := composeRotation(vehRot, s.rt.look, lock.Correction, mount.Pitch+s.rt.inertia.Pitch, jitter.Roll, s.rt.inertia.DirectionYaw)
	s.h.SetRotation(cam, rot)
	s.h.SetFOV(cam, mount.FOV)
	s.h.SetNearClip(cam, s.nearClip(st, ped))
	s.h.SetDoF(cam, mount.DoF.Enable, planes)
	s.h.LockMinimapAngle(int(mathutil.Wrap360(rot.Z())))

	if s.rec != nil {
		s.rec.RecordFrame(Frame{
			ModelHash:    snap.ModelHash,
			Config:       cfg.Name,
			Mount:        mount.Name,
			Speed:        snap.Speed,
			Acceleration: snap.Acceleration,
			Centripetal:  snap.Centripetal,
			Inertia:      s.rt.inertia,
			LookPitch:    s.rt.look.Pitch,
			LookYaw:      s.rt.look.Yaw,
			LookSource:   s.rt.source.String(),
			Rotation:     rot,
			Offset:       offset,
			DoF:          planes,
			Shake:        jitter,
		})
	}
}

// composeRotation adds the look, horizon correction and inertia terms to
// the vehicle rotation. Pitch-type terms are split by look yaw so they stay
// relative to the head when looking sideways.
func composeRotation(veh mgl32.Vec3, l look.State, correction mgl32.Vec2, pitch, roll, followYaw float32) mgl32.Vec3 {
	yaw := float64(mathutil.Rad(l.Yaw))
	cos := float32(math.Cos(yaw))
	sin := float32(math.Sin(yaw))

	return mgl32.Vec3{
		veh.X() + l.Pitch + correction.X() + pitch*cos,
		veh.Y() + correction.Y() - pitch*sin + roll,
		veh.Z() + l.Yaw - followYaw,
	}
}

// seatOffset is the seat bone position plus the model's seat calibration.
func (s *Script) seatOffset(veh host.Handle) mgl32.Vec3 {
	pos, _ := s.h.BoneLocalPosition(veh, host.SeatBoneName)
	if calib, ok := s.h.SeatCalibration(veh); ok {
		pos = pos.Add(calib)
	}
	return pos
}

func (s *Script) nearClip(st model.ScriptSettings, ped host.Handle) float32 {
	switch {
	case st.NearClipOverride:
		return st.NearClipDistance
	case s.rt.headRemoved:
		return nearClipHeadRemoved
	case s.h.HasHelmet(ped):
		return nearClipHelmet
	default:
		return nearClipDefault
	}
}

// suppressFollow disables yaw-follow for helicopters and hovering vehicles.
func (s *Script) suppressFollow(veh host.Handle, hoverRatio float32) bool {
	return s.h.Class(veh) == host.ClassHeli || s.h.VTOLHovering(veh) || hoverRatio > 0
}

func (s *Script) windowIntact(veh host.Handle, seat model.SeatSide) bool {
	switch seat {
	case model.SeatLeft:
		return s.h.IsWindowIntact(veh, windowFrontLeft)
	case model.SeatRight:
		return s.h.IsWindowIntact(veh, windowFrontRight)
	default:
		return false
	}
}

// updateLook runs exactly one look handler.
func (s *Script) updateLook(veh host.Handle, seat model.SeatSide, speed float32, p model.Look, dt float32) {
	left, right, back := s.compat.WheelLookingLeft(), s.compat.WheelLookingRight(), s.compat.WheelLookingBack()
	intact := s.windowIntact(veh, seat)

	s.rt.source = look.Select(s.compat.WheelAvailable(), left || right || back, s.h.UsingKeyboard())
	switch s.rt.source {
	case look.SourceWheel:
		s.rt.look, s.rt.wheel, s.rt.intoGlass = look.Wheel(s.rt.look, s.rt.wheel, look.WheelInput{
			Left:             left,
			Right:            right,
			Back:             back,
			Seat:             seat,
			SeatWindowIntact: intact,
		}, p, dt)
		return
	case look.SourceMouse:
		s.rt.look, s.rt.intoGlass = look.Mouse(s.rt.look, look.MouseInput{
			DX:               s.h.LookLeftRight(),
			DY:               s.h.LookUpDown(),
			Behind:           s.h.LookBehind(),
			Seat:             seat,
			SeatWindowIntact: intact,
			Speed:            speed,
			NowMs:            s.h.GameTimeMs(),
		}, p, dt)
	default:
		s.rt.look, s.rt.intoGlass = look.Gamepad(s.rt.look, look.GamepadInput{
			LeftRight:        s.h.LookLeftRight(),
			UpDown:           s.h.LookUpDown(),
			Behind:           s.h.LookBehind(),
			Seat:             seat,
			SeatWindowIntact: intact,
		}, p, dt)
	}
	// button history must follow the device even when it is idle
	s.rt.wheel.PrevLeft, s.rt.wheel.PrevRight = left, right
	s.rt.wheel.Shoulder = 0
}
