// Package host declares the game-facing surface the camera runs against.
//
// Angles are degrees. Rotations are (x pitch, y roll, z yaw) with yaw positive
// to the left. Local vectors are (x right, y forward, z up).
package host

import "github.com/go-gl/mathgl/mgl32"

// Handle identifies a game entity or camera. Zero is never valid.
type Handle int32

// VehicleClass is the coarse vehicle category used for gating.
type VehicleClass int

const (
	ClassCar VehicleClass = iota
	ClassBike
	ClassBoat
	ClassHeli
	ClassPlane
	ClassOther
)

// IsAir reports whether aiming should be ignored for this class.
func (c VehicleClass) IsAir() bool {
	return c == ClassHeli || c == ClassPlane
}

// Head bone and prop anchors.
const (
	BoneHead      = 0x796E
	PropAnchorHat = 0
	PropAnchorEye = 1
)

// SeatBoneName is the skeleton anchor of the driver seat.
const SeatBoneName = "seat_dside_f"

// Clock exposes frame timing.
type Clock interface {
	FrameTime() float32
	TimeScale() float32
	GameTimeMs() int64
}

// Player exposes the local player ped.
type Player interface {
	PlayerPed() Handle
	PedVehicle(ped Handle) Handle
	IsDriver(ped, veh Handle) bool
	IsFirstPersonVehicleView() bool
	PlayerControlOn() bool
	IsAiming() bool
	HasHelmet(ped Handle) bool

	PropIndex(ped Handle, anchor int) int
	PropTexture(ped Handle, anchor int) int
	SetProp(ped Handle, anchor, index, texture int)
	ClearProp(ped Handle, anchor int)
}

// Vehicles exposes vehicle state.
type Vehicles interface {
	Exists(veh Handle) bool
	ModelHash(veh Handle) uint32
	Plate(veh Handle) string
	Class(veh Handle) VehicleClass

	Speed(veh Handle) float32
	EstimatedMaxSpeed(veh Handle) float32
	Position(veh Handle) mgl32.Vec3
	Rotation(veh Handle) mgl32.Vec3
	ForwardVector(veh Handle) mgl32.Vec3
	OffsetInWorld(veh Handle, offset mgl32.Vec3) mgl32.Vec3
	LocalVelocity(veh Handle) mgl32.Vec3
	WorldVelocity(veh Handle) mgl32.Vec3
	RotationVelocity(veh Handle) mgl32.Vec3

	// BoneLocalPosition returns a bone position relative to the vehicle and
	// false when the bone does not exist.
	BoneLocalPosition(veh Handle, bone string) (mgl32.Vec3, bool)
	ModelDimensions(veh Handle) (min, max mgl32.Vec3)
	IsWindowIntact(veh Handle, window int) bool
	VTOLHovering(veh Handle) bool
}

// Memory exposes values read straight from vehicle memory. Each method
// returns a zero value when the offset could not be resolved.
type Memory interface {
	RPM(veh Handle) float32
	SuspensionCompressions(veh Handle) []float32
	TyreContactMaterials(veh Handle) []uint16
	HoverTransformRatio(veh Handle) float32
	SeatCalibration(veh Handle) (mgl32.Vec3, bool)
}

// Input exposes normalized look input. Axes are positive right and down.
type Input interface {
	UsingKeyboard() bool
	LookLeftRight() float32
	LookUpDown() float32
	LookBehind() bool
}

// Camera drives the scripted camera.
type Camera interface {
	CreateCamera() Handle
	DestroyCamera(cam Handle)
	RenderScriptCams(enable bool)
	AttachToVehicle(cam, veh Handle, offset mgl32.Vec3)
	AttachToPedBone(cam, ped Handle, bone int, offset mgl32.Vec3)
	SetRotation(cam Handle, rot mgl32.Vec3)
	SetFOV(cam Handle, fov float32)
	SetNearClip(cam Handle, dist float32)
	SetDoF(cam Handle, enable bool, planes [4]float32)
	MarkFirstPersonThisFrame()
	LockMinimapAngle(deg int)
	UnlockMinimapAngle()
	SetParticleFxInsideVehicle(inside bool)
}

// Host is the full query surface.
type Host interface {
	Clock
	Player
	Vehicles
	Memory
	Input
	Camera
}

// Compat is the optional compatibility surface. All methods are no-ops when
// the backing module is absent.
type Compat interface {
	DismembermentAvailable() bool
	AddBoneDraw(ped Handle, bone, flag int)
	RemoveBoneDraw(ped Handle)

	WheelAvailable() bool
	WheelLookingLeft() bool
	WheelLookingRight() bool
	WheelLookingBack() bool
}

// NoCompat is a Compat with nothing available.
type NoCompat struct{}

func (NoCompat) DismembermentAvailable() bool { return false }
func (NoCompat) AddBoneDraw(Handle, int, int) {}
func (NoCompat) RemoveBoneDraw(Handle)        {}
func (NoCompat) WheelAvailable() bool         { return false }
func (NoCompat) WheelLookingLeft() bool       { return false }
func (NoCompat) WheelLookingRight() bool      { return false }
func (NoCompat) WheelLookingBack() bool       { return false }
