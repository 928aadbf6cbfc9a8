package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dynfpv/extension/internal/host"
	"github.com/go-gl/mathgl/mgl32"
)

const defaultFrameTime = float32(1.0 / 60.0)

var ErrBadFrame = errors.New("bad frame")

// Frame is the game state pushed by the shim once per tick.
type Frame struct {
	Dt         float32       `json:"dt"`
	TimeScale  float32       `json:"timeScale"`
	GameTimeMs int64         `json:"gameTimeMs"`
	Player     Player        `json:"player"`
	Vehicle    *VehicleState `json:"vehicle,omitempty"`
	Input      Input         `json:"input"`
	Compat     Compat        `json:"compat"`
}

// Prop is a ped prop slot as reported by the game.
type Prop struct {
	Index   int `json:"index"`
	Texture int `json:"texture"`
}

type Player struct {
	Ped         host.Handle  `json:"ped"`
	Driver      bool         `json:"driver"`
	FirstPerson bool         `json:"firstPerson"`
	Control     bool         `json:"control"`
	Aiming      bool         `json:"aiming"`
	Helmet      bool         `json:"helmet"`
	Props       map[int]Prop `json:"props,omitempty"`
}

// VehicleState is the occupied vehicle. Vectors are [x, y, z] arrays.
type VehicleState struct {
	Handle           host.Handle           `json:"handle"`
	Model            uint32                `json:"model"`
	Plate            string                `json:"plate"`
	Class            string                `json:"class"`
	Speed            float32               `json:"speed"`
	MaxSpeed         float32               `json:"maxSpeed"`
	Position         mgl32.Vec3            `json:"position"`
	Rotation         mgl32.Vec3            `json:"rotation"`
	Forward          mgl32.Vec3            `json:"forward"`
	Up               mgl32.Vec3            `json:"up"`
	LocalVelocity    mgl32.Vec3            `json:"localVelocity"`
	WorldVelocity    mgl32.Vec3            `json:"worldVelocity"`
	RotationVelocity mgl32.Vec3            `json:"rotationVelocity"`
	Bones            map[string]mgl32.Vec3 `json:"bones,omitempty"`
	DimMin           mgl32.Vec3            `json:"dimMin"`
	DimMax           mgl32.Vec3            `json:"dimMax"`
	BrokenWindows    []int                 `json:"brokenWindows,omitempty"`
	VTOLHovering     bool                  `json:"vtolHovering"`

	RPM             float32     `json:"rpm"`
	Suspension      []float32   `json:"suspension,omitempty"`
	Materials       []uint16    `json:"materials,omitempty"`
	HoverRatio      float32     `json:"hoverRatio"`
	SeatCalibration *mgl32.Vec3 `json:"seatCalibration,omitempty"`
}

type Input struct {
	Keyboard  bool    `json:"keyboard"`
	LeftRight float32 `json:"leftRight"`
	UpDown    float32 `json:"upDown"`
	Behind    bool    `json:"behind"`
}

// Compat reports the optional modules found by the shim.
type Compat struct {
	Dismemberment bool `json:"dismemberment"`
	Wheel         bool `json:"wheel"`
	WheelLeft     bool `json:"wheelLeft"`
	WheelRight    bool `json:"wheelRight"`
	WheelBack     bool `json:"wheelBack"`
}

var classNames = map[string]host.VehicleClass{
	"car":   host.ClassCar,
	"bike":  host.ClassBike,
	"boat":  host.ClassBoat,
	"heli":  host.ClassHeli,
	"plane": host.ClassPlane,
}

// ParseClass maps a class name to a VehicleClass. Unknown names are ClassOther.
func ParseClass(name string) host.VehicleClass {
	if c, ok := classNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return host.ClassOther
}

// ParseFrame decodes one frame and fills in missing timing.
func ParseFrame(data string) (Frame, error) {
	var f Frame
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	if f.Vehicle != nil && f.Vehicle.Handle == 0 {
		return Frame{}, fmt.Errorf("%w: vehicle handle is zero", ErrBadFrame)
	}
	if f.Dt <= 0 {
		f.Dt = defaultFrameTime
	}
	if f.TimeScale <= 0 {
		f.TimeScale = 1
	}
	if f.Player.Props == nil {
		f.Player.Props = map[int]Prop{}
	}
	return f, nil
}
