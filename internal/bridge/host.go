package bridge

import (
	"slices"

	"github.com/dynfpv/extension/internal/host"
	"github.com/dynfpv/extension/internal/queue"
	"github.com/go-gl/mathgl/mgl32"
)

// Host answers host queries from the last frame and queues every camera
// call as a Command.
type Host struct {
	frame   Frame
	cmds    *queue.Queue[Command]
	nextCam host.Handle
}

func newHost(limit int) *Host {
	return &Host{
		frame: Frame{Dt: defaultFrameTime, TimeScale: 1, Player: Player{Props: map[int]Prop{}}},
		cmds:  queue.NewBounded[Command](limit),
	}
}

func (h *Host) setFrame(f Frame) {
	if f.Player.Props == nil {
		f.Player.Props = map[int]Prop{}
	}
	h.frame = f
}

func (h *Host) push(c Command) {
	h.cmds.Push(c)
}

func (h *Host) vehicle(veh host.Handle) *VehicleState {
	if v := h.frame.Vehicle; v != nil && v.Handle == veh && veh != 0 {
		return v
	}
	return &VehicleState{}
}

// Clock

func (h *Host) FrameTime() float32 { return h.frame.Dt }
func (h *Host) TimeScale() float32 { return h.frame.TimeScale }
func (h *Host) GameTimeMs() int64  { return h.frame.GameTimeMs }

// Player

func (h *Host) PlayerPed() host.Handle { return h.frame.Player.Ped }

func (h *Host) PedVehicle(host.Handle) host.Handle {
	if h.frame.Vehicle == nil {
		return 0
	}
	return h.frame.Vehicle.Handle
}

func (h *Host) IsDriver(_, veh host.Handle) bool {
	return h.frame.Player.Driver && veh != 0 && veh == h.PedVehicle(0)
}

func (h *Host) IsFirstPersonVehicleView() bool { return h.frame.Player.FirstPerson }
func (h *Host) PlayerControlOn() bool          { return h.frame.Player.Control }
func (h *Host) IsAiming() bool                 { return h.frame.Player.Aiming }
func (h *Host) HasHelmet(host.Handle) bool     { return h.frame.Player.Helmet }

func (h *Host) PropIndex(_ host.Handle, anchor int) int {
	if p, ok := h.frame.Player.Props[anchor]; ok {
		return p.Index
	}
	return -1
}

func (h *Host) PropTexture(_ host.Handle, anchor int) int {
	if p, ok := h.frame.Player.Props[anchor]; ok {
		return p.Texture
	}
	return -1
}

func (h *Host) SetProp(ped host.Handle, anchor, index, texture int) {
	h.frame.Player.Props[anchor] = Prop{Index: index, Texture: texture}
	h.push(Command{Op: OpSetProp, Entity: ped, Bone: anchor, Index: index, Texture: texture})
}

func (h *Host) ClearProp(ped host.Handle, anchor int) {
	delete(h.frame.Player.Props, anchor)
	h.push(Command{Op: OpClearProp, Entity: ped, Bone: anchor})
}

// Vehicles

func (h *Host) Exists(veh host.Handle) bool {
	return veh != 0 && h.PedVehicle(0) == veh
}

func (h *Host) ModelHash(veh host.Handle) uint32            { return h.vehicle(veh).Model }
func (h *Host) Plate(veh host.Handle) string                { return h.vehicle(veh).Plate }
func (h *Host) Class(veh host.Handle) host.VehicleClass     { return ParseClass(h.vehicle(veh).Class) }
func (h *Host) Speed(veh host.Handle) float32               { return h.vehicle(veh).Speed }
func (h *Host) EstimatedMaxSpeed(veh host.Handle) float32   { return h.vehicle(veh).MaxSpeed }
func (h *Host) Position(veh host.Handle) mgl32.Vec3         { return h.vehicle(veh).Position }
func (h *Host) Rotation(veh host.Handle) mgl32.Vec3         { return h.vehicle(veh).Rotation }
func (h *Host) ForwardVector(veh host.Handle) mgl32.Vec3    { return h.vehicle(veh).Forward }
func (h *Host) LocalVelocity(veh host.Handle) mgl32.Vec3    { return h.vehicle(veh).LocalVelocity }
func (h *Host) WorldVelocity(veh host.Handle) mgl32.Vec3    { return h.vehicle(veh).WorldVelocity }
func (h *Host) RotationVelocity(veh host.Handle) mgl32.Vec3 { return h.vehicle(veh).RotationVelocity }
func (h *Host) VTOLHovering(veh host.Handle) bool           { return h.vehicle(veh).VTOLHovering }

// OffsetInWorld uses the forward and up vectors of the frame; right is
// forward x up.
func (h *Host) OffsetInWorld(veh host.Handle, o mgl32.Vec3) mgl32.Vec3 {
	v := h.vehicle(veh)
	right := v.Forward.Cross(v.Up)
	return v.Position.Add(right.Mul(o.X())).Add(v.Forward.Mul(o.Y())).Add(v.Up.Mul(o.Z()))
}

func (h *Host) BoneLocalPosition(veh host.Handle, bone string) (mgl32.Vec3, bool) {
	p, ok := h.vehicle(veh).Bones[bone]
	return p, ok
}

func (h *Host) ModelDimensions(veh host.Handle) (mgl32.Vec3, mgl32.Vec3) {
	v := h.vehicle(veh)
	return v.DimMin, v.DimMax
}

func (h *Host) IsWindowIntact(veh host.Handle, window int) bool {
	return !slices.Contains(h.vehicle(veh).BrokenWindows, window)
}

// Memory

func (h *Host) RPM(veh host.Handle) float32                      { return h.vehicle(veh).RPM }
func (h *Host) SuspensionCompressions(veh host.Handle) []float32 { return h.vehicle(veh).Suspension }
func (h *Host) TyreContactMaterials(veh host.Handle) []uint16    { return h.vehicle(veh).Materials }
func (h *Host) HoverTransformRatio(veh host.Handle) float32      { return h.vehicle(veh).HoverRatio }

func (h *Host) SeatCalibration(veh host.Handle) (mgl32.Vec3, bool) {
	if c := h.vehicle(veh).SeatCalibration; c != nil {
		return *c, true
	}
	return mgl32.Vec3{}, false
}

// Input

func (h *Host) UsingKeyboard() bool    { return h.frame.Input.Keyboard }
func (h *Host) LookLeftRight() float32 { return h.frame.Input.LeftRight }
func (h *Host) LookUpDown() float32    { return h.frame.Input.UpDown }
func (h *Host) LookBehind() bool       { return h.frame.Input.Behind }

// Camera

func (h *Host) CreateCamera() host.Handle {
	h.nextCam++
	h.push(Command{Op: OpCreateCamera, Cam: h.nextCam})
	return h.nextCam
}

func (h *Host) DestroyCamera(cam host.Handle) {
	h.push(Command{Op: OpDestroyCamera, Cam: cam})
}

func (h *Host) RenderScriptCams(enable bool) {
	h.push(Command{Op: OpRenderScript, Flag: enable})
}

func (h *Host) AttachToVehicle(cam, veh host.Handle, offset mgl32.Vec3) {
	h.push(Command{Op: OpAttachVehicle, Cam: cam, Entity: veh, Vec: vec(offset)})
}

func (h *Host) AttachToPedBone(cam, ped host.Handle, bone int, offset mgl32.Vec3) {
	h.push(Command{Op: OpAttachPedBone, Cam: cam, Entity: ped, Bone: bone, Vec: vec(offset)})
}

func (h *Host) SetRotation(cam host.Handle, rot mgl32.Vec3) {
	h.push(Command{Op: OpRotation, Cam: cam, Vec: vec(rot)})
}

func (h *Host) SetFOV(cam host.Handle, fov float32) {
	h.push(Command{Op: OpFOV, Cam: cam, Value: fov})
}

func (h *Host) SetNearClip(cam host.Handle, dist float32) {
	h.push(Command{Op: OpNearClip, Cam: cam, Value: dist})
}

func (h *Host) SetDoF(cam host.Handle, enable bool, planes [4]float32) {
	h.push(Command{Op: OpDoF, Cam: cam, Flag: enable, Planes: &planes})
}

func (h *Host) MarkFirstPersonThisFrame() { h.push(Command{Op: OpFirstPerson}) }

func (h *Host) LockMinimapAngle(deg int) {
	h.push(Command{Op: OpMinimapLock, Value: float32(deg)})
}

func (h *Host) UnlockMinimapAngle() { h.push(Command{Op: OpMinimapUnlock}) }

func (h *Host) SetParticleFxInsideVehicle(inside bool) {
	h.push(Command{Op: OpParticleInside, Flag: inside})
}

// Compat

func (h *Host) DismembermentAvailable() bool { return h.frame.Compat.Dismemberment }

func (h *Host) AddBoneDraw(ped host.Handle, bone, flag int) {
	if !h.frame.Compat.Dismemberment {
		return
	}
	h.push(Command{Op: OpBoneDraw, Entity: ped, Bone: bone, Index: flag})
}

func (h *Host) RemoveBoneDraw(ped host.Handle) {
	if !h.frame.Compat.Dismemberment {
		return
	}
	h.push(Command{Op: OpBoneDrawRemove, Entity: ped})
}

func (h *Host) WheelAvailable() bool    { return h.frame.Compat.Wheel }
func (h *Host) WheelLookingLeft() bool  { return h.frame.Compat.Wheel && h.frame.Compat.WheelLeft }
func (h *Host) WheelLookingRight() bool { return h.frame.Compat.Wheel && h.frame.Compat.WheelRight }
func (h *Host) WheelLookingBack() bool  { return h.frame.Compat.Wheel && h.frame.Compat.WheelBack }

var (
	_ host.Host   = (*Host)(nil)
	_ host.Compat = (*Host)(nil)
)
