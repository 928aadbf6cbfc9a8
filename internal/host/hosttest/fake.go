// Package hosttest provides an in-memory host for tests.
package hosttest

import (
	"github.com/dynfpv/extension/internal/host"
	"github.com/go-gl/mathgl/mgl32"
)

// Vehicle is the state the fake reports for one vehicle.
type Vehicle struct {
	ModelHash         uint32
	Plate             string
	Class             host.VehicleClass
	Speed             float32
	EstimatedMaxSpeed float32
	Position          mgl32.Vec3
	Rotation          mgl32.Vec3
	Forward           mgl32.Vec3
	Up                mgl32.Vec3
	LocalVelocity     mgl32.Vec3
	WorldVelocity     mgl32.Vec3
	RotationVelocity  mgl32.Vec3
	Bones             map[string]mgl32.Vec3
	DimMin, DimMax    mgl32.Vec3
	BrokenWindows     map[int]bool
	VTOLHovering      bool

	RPM                 float32
	Suspension          []float32
	Materials           []uint16
	HoverTransformRatio float32
	SeatCalibration     *mgl32.Vec3
}

// NewCar returns a stationary left-hand-drive car facing +Y.
func NewCar(model uint32) *Vehicle {
	return &Vehicle{
		ModelHash:         model,
		Class:             host.ClassCar,
		EstimatedMaxSpeed: 50,
		Forward:           mgl32.Vec3{0, 1, 0},
		Up:                mgl32.Vec3{0, 0, 1},
		Bones: map[string]mgl32.Vec3{
			host.SeatBoneName: {-0.4, 0, 0.3},
		},
		DimMin:     mgl32.Vec3{-1, -2.2, -0.5},
		DimMax:     mgl32.Vec3{1, 2.2, 1},
		RPM:        0.2,
		Suspension: []float32{0.1, 0.1, 0.1, 0.1},
		Materials:  []uint16{4, 4, 4, 4},
	}
}

// CameraState is what the fake camera last received.
type CameraState struct {
	Handle      host.Handle
	Vehicle     host.Handle
	Ped         host.Handle
	Bone        int
	Offset      mgl32.Vec3
	Rotation    mgl32.Vec3
	FOV         float32
	NearClip    float32
	DoFEnabled  bool
	DoFPlanes   [4]float32
	Destroyed   bool
	Attachments int
}

type prop struct {
	index, texture int
}

// Fake implements host.Host and host.Compat.
type Fake struct {
	Dt          float32
	Scale       float32
	TimeMs      int64
	Ped         host.Handle
	InVehicle   host.Handle
	Driver      bool
	FirstPerson bool
	Control     bool
	Aiming      bool
	Helmet      bool
	Props       map[int]prop

	Vehicles map[host.Handle]*Vehicle

	Keyboard bool
	LookLR   float32
	LookUD   float32
	Behind   bool

	Dismemberment bool
	Wheel         bool
	WheelLeft     bool
	WheelRight    bool
	WheelBack     bool
	BoneDrawn     map[host.Handle]int

	nextCam          host.Handle
	Cameras          map[host.Handle]*CameraState
	RenderingScript  bool
	FirstPersonMarks int
	MinimapLocked    bool
	MinimapAngle     int
	ParticleInside   bool
}

// New returns a player in the driver seat of a car with handle 100, in
// first-person view, with control.
func New() *Fake {
	f := &Fake{
		Dt:          1.0 / 60.0,
		Scale:       1,
		Ped:         1,
		InVehicle:   100,
		Driver:      true,
		FirstPerson: true,
		Control:     true,
		Props:       map[int]prop{host.PropAnchorHat: {index: 3, texture: 1}, host.PropAnchorEye: {index: 2, texture: 0}},
		Vehicles:    map[host.Handle]*Vehicle{100: NewCar(0xB779A091)},
		BoneDrawn:   map[host.Handle]int{},
		nextCam:     1000,
		Cameras:     map[host.Handle]*CameraState{},
	}
	return f
}

// Vehicle returns the vehicle the player is in.
func (f *Fake) Vehicle() *Vehicle {
	return f.Vehicles[f.InVehicle]
}

// ActiveCamera returns the most recent undestroyed camera, or nil.
func (f *Fake) ActiveCamera() *CameraState {
	var last *CameraState
	for _, c := range f.Cameras {
		if c.Destroyed {
			continue
		}
		if last == nil || c.Handle > last.Handle {
			last = c
		}
	}
	return last
}

// Advance moves game time forward by one frame.
func (f *Fake) Advance() {
	f.TimeMs += int64(f.Dt * 1000)
}

func (f *Fake) veh(h host.Handle) *Vehicle {
	if v, ok := f.Vehicles[h]; ok {
		return v
	}
	return &Vehicle{}
}

// Clock

func (f *Fake) FrameTime() float32 { return f.Dt }
func (f *Fake) TimeScale() float32 { return f.Scale }
func (f *Fake) GameTimeMs() int64  { return f.TimeMs }

// Player

func (f *Fake) PlayerPed() host.Handle { return f.Ped }

func (f *Fake) PedVehicle(host.Handle) host.Handle {
	if _, ok := f.Vehicles[f.InVehicle]; !ok {
		return 0
	}
	return f.InVehicle
}

func (f *Fake) IsDriver(_, veh host.Handle) bool { return f.Driver && veh == f.InVehicle }
func (f *Fake) IsFirstPersonVehicleView() bool   { return f.FirstPerson }
func (f *Fake) PlayerControlOn() bool            { return f.Control }
func (f *Fake) IsAiming() bool                   { return f.Aiming }
func (f *Fake) HasHelmet(host.Handle) bool       { return f.Helmet }

func (f *Fake) PropIndex(_ host.Handle, anchor int) int {
	if p, ok := f.Props[anchor]; ok {
		return p.index
	}
	return -1
}

func (f *Fake) PropTexture(_ host.Handle, anchor int) int {
	if p, ok := f.Props[anchor]; ok {
		return p.texture
	}
	return -1
}

func (f *Fake) SetProp(_ host.Handle, anchor, index, texture int) {
	f.Props[anchor] = prop{index: index, texture: texture}
}

func (f *Fake) ClearProp(_ host.Handle, anchor int) {
	delete(f.Props, anchor)
}

// Vehicles

func (f *Fake) Exists(veh host.Handle) bool {
	_, ok := f.Vehicles[veh]
	return ok
}

func (f *Fake) ModelHash(veh host.Handle) uint32            { return f.veh(veh).ModelHash }
func (f *Fake) Plate(veh host.Handle) string                { return f.veh(veh).Plate }
func (f *Fake) Class(veh host.Handle) host.VehicleClass     { return f.veh(veh).Class }
func (f *Fake) Speed(veh host.Handle) float32               { return f.veh(veh).Speed }
func (f *Fake) EstimatedMaxSpeed(veh host.Handle) float32   { return f.veh(veh).EstimatedMaxSpeed }
func (f *Fake) Position(veh host.Handle) mgl32.Vec3         { return f.veh(veh).Position }
func (f *Fake) Rotation(veh host.Handle) mgl32.Vec3         { return f.veh(veh).Rotation }
func (f *Fake) ForwardVector(veh host.Handle) mgl32.Vec3    { return f.veh(veh).Forward }
func (f *Fake) LocalVelocity(veh host.Handle) mgl32.Vec3    { return f.veh(veh).LocalVelocity }
func (f *Fake) WorldVelocity(veh host.Handle) mgl32.Vec3    { return f.veh(veh).WorldVelocity }
func (f *Fake) RotationVelocity(veh host.Handle) mgl32.Vec3 { return f.veh(veh).RotationVelocity }
func (f *Fake) IsWindowIntact(veh host.Handle, w int) bool  { return !f.veh(veh).BrokenWindows[w] }
func (f *Fake) VTOLHovering(veh host.Handle) bool           { return f.veh(veh).VTOLHovering }

// OffsetInWorld only handles an axis-aligned vehicle: right is Forward x Up.
func (f *Fake) OffsetInWorld(veh host.Handle, o mgl32.Vec3) mgl32.Vec3 {
	v := f.veh(veh)
	right := v.Forward.Cross(v.Up)
	return v.Position.Add(right.Mul(o.X())).Add(v.Forward.Mul(o.Y())).Add(v.Up.Mul(o.Z()))
}

func (f *Fake) BoneLocalPosition(veh host.Handle, bone string) (mgl32.Vec3, bool) {
	p, ok := f.veh(veh).Bones[bone]
	return p, ok
}

func (f *Fake) ModelDimensions(veh host.Handle) (mgl32.Vec3, mgl32.Vec3) {
	v := f.veh(veh)
	return v.DimMin, v.DimMax
}

// Memory

func (f *Fake) RPM(veh host.Handle) float32                      { return f.veh(veh).RPM }
func (f *Fake) SuspensionCompressions(veh host.Handle) []float32 { return f.veh(veh).Suspension }
func (f *Fake) TyreContactMaterials(veh host.Handle) []uint16    { return f.veh(veh).Materials }
func (f *Fake) HoverTransformRatio(veh host.Handle) float32      { return f.veh(veh).HoverTransformRatio }

func (f *Fake) SeatCalibration(veh host.Handle) (mgl32.Vec3, bool) {
	if c := f.veh(veh).SeatCalibration; c != nil {
		return *c, true
	}
	return mgl32.Vec3{}, false
}

// Input

func (f *Fake) UsingKeyboard() bool    { return f.Keyboard }
func (f *Fake) LookLeftRight() float32 { return f.LookLR }
func (f *Fake) LookUpDown() float32    { return f.LookUD }
func (f *Fake) LookBehind() bool       { return f.Behind }

// Camera

func (f *Fake) CreateCamera() host.Handle {
	f.nextCam++
	f.Cameras[f.nextCam] = &CameraState{Handle: f.nextCam}
	return f.nextCam
}

func (f *Fake) DestroyCamera(cam host.Handle) {
	if c, ok := f.Cameras[cam]; ok {
		c.Destroyed = true
	}
}

func (f *Fake) RenderScriptCams(enable bool) { f.RenderingScript = enable }

func (f *Fake) AttachToVehicle(cam, veh host.Handle, offset mgl32.Vec3) {
	if c, ok := f.Cameras[cam]; ok {
		c.Vehicle, c.Ped, c.Bone, c.Offset = veh, 0, 0, offset
		c.Attachments++
	}
}

func (f *Fake) AttachToPedBone(cam, ped host.Handle, bone int, offset mgl32.Vec3) {
	if c, ok := f.Cameras[cam]; ok {
		c.Vehicle, c.Ped, c.Bone, c.Offset = 0, ped, bone, offset
		c.Attachments++
	}
}

func (f *Fake) SetRotation(cam host.Handle, rot mgl32.Vec3) {
	if c, ok := f.Cameras[cam]; ok {
		c.Rotation = rot
	}
}

func (f *Fake) SetFOV(cam host.Handle, fov float32) {
	if c, ok := f.Cameras[cam]; ok {
		c.FOV = fov
	}
}

func (f *Fake) SetNearClip(cam host.Handle, dist float32) {
	if c, ok := f.Cameras[cam]; ok {
		c.NearClip = dist
	}
}

func (f *Fake) SetDoF(cam host.Handle, enable bool, planes [4]float32) {
	if c, ok := f.Cameras[cam]; ok {
		c.DoFEnabled = enable
		c.DoFPlanes = planes
	}
}

func (f *Fake) MarkFirstPersonThisFrame() { f.FirstPersonMarks++ }

func (f *Fake) LockMinimapAngle(deg int) {
	f.MinimapLocked = true
	f.MinimapAngle = deg
}

func (f *Fake) UnlockMinimapAngle()                { f.MinimapLocked = false }
func (f *Fake) SetParticleFxInsideVehicle(in bool) { f.ParticleInside = in }

// Compat

func (f *Fake) DismembermentAvailable() bool { return f.Dismemberment }

func (f *Fake) AddBoneDraw(ped host.Handle, bone, _ int) {
	if f.Dismemberment {
		f.BoneDrawn[ped] = bone
	}
}

func (f *Fake) RemoveBoneDraw(ped host.Handle) {
	delete(f.BoneDrawn, ped)
}

func (f *Fake) WheelAvailable() bool    { return f.Wheel }
func (f *Fake) WheelLookingLeft() bool  { return f.Wheel && f.WheelLeft }
func (f *Fake) WheelLookingRight() bool { return f.Wheel && f.WheelRight }
func (f *Fake) WheelLookingBack() bool  { return f.Wheel && f.WheelBack }

var (
	_ host.Host   = (*Fake)(nil)
	_ host.Compat = (*Fake)(nil)
)
