// Package telemetry derives per-frame kinematics for the occupied vehicle.
package telemetry

import (
	"github.com/dynfpv/extension/internal/host"
	"github.com/dynfpv/extension/internal/model"
	"github.com/go-gl/mathgl/mgl32"
)

// seatDeadzone is the fraction of vehicle width treated as a centred seat.
const seatDeadzone = 0.05

// Source is the host surface telemetry reads from.
type Source interface {
	host.Vehicles
	host.Memory
}

// Snapshot is the derived state after an Update.
type Snapshot struct {
	ModelHash uint32
	SeatSide  model.SeatSide

	// Acceleration is the difference of local velocity over the frame.
	Acceleration mgl32.Vec3
	// Centripetal is the world velocity difference projected on a basis built
	// from the forward and up vectors: x leftward, y forward, z up.
	Centripetal mgl32.Vec3

	LocalVelocity    mgl32.Vec3
	WorldVelocity    mgl32.Vec3
	RotationVelocity mgl32.Vec3

	Speed    float32
	MaxSpeed float32
	RPM      float32

	Suspension         []float32
	SuspensionVelocity []float32
	Materials          []uint16
	HoverRatio         float32
}

// Vehicle tracks one vehicle handle. A new Vehicle must be created whenever
// the occupied handle changes.
type Vehicle struct {
	src    Source
	handle host.Handle
	valid  bool

	snap Snapshot

	prevLocal mgl32.Vec3
	prevWorld mgl32.Vec3
	prevSusp  []float32
	updates   int
}

// New captures the model and seat side of veh. A missing vehicle yields a
// tracker that reports zero values.
func New(src Source, veh host.Handle) *Vehicle {
	v := &Vehicle{src: src, handle: veh}
	if veh == 0 || !src.Exists(veh) {
		return v
	}
	v.valid = true
	v.snap.ModelHash = src.ModelHash(veh)
	v.snap.SeatSide = seatSide(src, veh)
	v.prevLocal = src.LocalVelocity(veh)
	v.prevWorld = src.WorldVelocity(veh)
	v.prevSusp = append([]float32(nil), src.SuspensionCompressions(veh)...)
	return v
}

// seatSide classifies the driver seat from its bone x against the model width.
func seatSide(src Source, veh host.Handle) model.SeatSide {
	pos, ok := src.BoneLocalPosition(veh, host.SeatBoneName)
	if !ok {
		return model.SeatCenter
	}
	min, max := src.ModelDimensions(veh)
	width := max.X() - min.X()
	if width <= 0 {
		return model.SeatCenter
	}
	switch dz := width * seatDeadzone; {
	case pos.X() < -dz:
		return model.SeatLeft
	case pos.X() > dz:
		return model.SeatRight
	default:
		return model.SeatCenter
	}
}

// Update differences this frame's velocities against the stored ones and
// then stores the new values. dt <= 0 leaves everything untouched.
func (v *Vehicle) Update(dt float32) {
	if !v.valid || dt <= 0 {
		return
	}
	if !v.src.Exists(v.handle) {
		v.valid = false
		v.snap = Snapshot{}
		return
	}

	local := v.src.LocalVelocity(v.handle)
	world := v.src.WorldVelocity(v.handle)

	v.snap.Acceleration = local.Sub(v.prevLocal).Mul(1 / dt)
	v.snap.Centripetal = centripetal(v.src, v.handle, world.Sub(v.prevWorld)).Mul(1 / dt)

	susp := v.src.SuspensionCompressions(v.handle)
	v.snap.SuspensionVelocity = v.snap.SuspensionVelocity[:0]
	for i, c := range susp {
		var prev float32
		if i < len(v.prevSusp) {
			prev = v.prevSusp[i]
		}
		v.snap.SuspensionVelocity = append(v.snap.SuspensionVelocity, (c-prev)/dt)
	}

	v.prevLocal = local
	v.prevWorld = world
	v.prevSusp = append(v.prevSusp[:0], susp...)
	v.updates++

	v.snap.LocalVelocity = local
	v.snap.WorldVelocity = world
	v.snap.RotationVelocity = v.src.RotationVelocity(v.handle)
	v.snap.Speed = v.src.Speed(v.handle)
	v.snap.MaxSpeed = v.src.EstimatedMaxSpeed(v.handle)
	v.snap.RPM = v.src.RPM(v.handle)
	v.snap.Suspension = susp
	v.snap.Materials = v.src.TyreContactMaterials(v.handle)
	v.snap.HoverRatio = v.src.HoverTransformRatio(v.handle)
}

func centripetal(src Source, veh host.Handle, delta mgl32.Vec3) mgl32.Vec3 {
	fwd := src.ForwardVector(veh)
	up := src.OffsetInWorld(veh, mgl32.Vec3{0, 0, 1}).Sub(src.Position(veh))
	right := fwd.Cross(up)
	return mgl32.Vec3{
		-delta.Dot(right),
		delta.Dot(fwd),
		delta.Dot(up),
	}
}

// Handle returns the tracked vehicle.
func (v *Vehicle) Handle() host.Handle { return v.handle }

// Valid reports whether the vehicle existed at the last query.
func (v *Vehicle) Valid() bool { return v.valid }

// Primed reports whether accelerations come from two real samples.
func (v *Vehicle) Primed() bool { return v.updates > 0 }

// Snapshot returns the latest derived state.
func (v *Vehicle) Snapshot() Snapshot { return v.snap }

func (v *Vehicle) SeatSide() model.SeatSide { return v.snap.SeatSide }

// SpeedRatio is speed over the estimated top speed, 0 when unknown.
func (v *Vehicle) SpeedRatio() float32 {
	if v.snap.MaxSpeed <= 0 {
		return 0
	}
	return v.snap.Speed / v.snap.MaxSpeed
}

// WheelsGrounded returns per-wheel contact derived from suspension compression.
func (v *Vehicle) WheelsGrounded() []bool {
	out := make([]bool, len(v.snap.Suspension))
	for i, c := range v.snap.Suspension {
		out[i] = c > 0
	}
	return out
}

// AllWheelsGrounded is false for vehicles without wheel data.
func (v *Vehicle) AllWheelsGrounded() bool {
	if len(v.snap.Suspension) == 0 {
		return false
	}
	for _, c := range v.snap.Suspension {
		if c <= 0 {
			return false
		}
	}
	return true
}

// AverageSuspensionVelocity is the mean compression speed over all wheels.
func (v *Vehicle) AverageSuspensionVelocity() float32 {
	if len(v.snap.SuspensionVelocity) == 0 {
		return 0
	}
	var sum float32
	for _, s := range v.snap.SuspensionVelocity {
		sum += s
	}
	return sum / float32(len(v.snap.SuspensionVelocity))
}
