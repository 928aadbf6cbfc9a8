package model

// MountPoint selects what the camera is attached to.
type MountPoint int

const (
	MountVehicle MountPoint = iota
	MountPed
)

func (m MountPoint) String() string {
	if m == MountPed {
		return "Ped"
	}
	return "Vehicle"
}

// PitchMode controls how horizon lock treats vehicle pitch.
type PitchMode int

const (
	// PitchHorizonFull locks camera pitch to the horizon.
	PitchHorizonFull PitchMode = iota
	// PitchVehicleOnly keeps camera pitch locked to the vehicle body.
	PitchVehicleOnly
	// PitchDynamic shows only the difference from a slowly tracked baseline.
	PitchDynamic
)

// SeatSide is the lateral position of the driver seat within the vehicle.
type SeatSide int

const (
	SeatCenter SeatSide = iota
	SeatLeft
	SeatRight
)

func (s SeatSide) String() string {
	switch s {
	case SeatLeft:
		return "Left"
	case SeatRight:
		return "Right"
	default:
		return "Center"
	}
}

type Lean struct {
	CenterDist  float32 `yaml:"centerDist" json:"centerDist"`
	ForwardDist float32 `yaml:"forwardDist" json:"forwardDist"`
	UpDist      float32 `yaml:"upDist" json:"upDist"`
}

// Movement holds the inertia and shake tunables of a mount.
type Movement struct {
	Follow                bool    `yaml:"follow" json:"follow"`
	RotationDirectionMult float32 `yaml:"rotationDirectionMult" json:"rotationDirectionMult"`
	RotationRotationMult  float32 `yaml:"rotationRotationMult" json:"rotationRotationMult"`
	RotationMaxAngle      float32 `yaml:"rotationMaxAngle" json:"rotationMaxAngle"`

	LongDeadzone      float32 `yaml:"longDeadzone" json:"longDeadzone"`
	LongForwardMult   float32 `yaml:"longForwardMult" json:"longForwardMult"`
	LongBackwardMult  float32 `yaml:"longBackwardMult" json:"longBackwardMult"`
	LongForwardLimit  float32 `yaml:"longForwardLimit" json:"longForwardLimit"`
	LongBackwardLimit float32 `yaml:"longBackwardLimit" json:"longBackwardLimit"`

	PitchDeadzone     float32 `yaml:"pitchDeadzone" json:"pitchDeadzone"`
	PitchUpMult       float32 `yaml:"pitchUpMult" json:"pitchUpMult"`
	PitchDownMult     float32 `yaml:"pitchDownMult" json:"pitchDownMult"`
	PitchUpMaxAngle   float32 `yaml:"pitchUpMaxAngle" json:"pitchUpMaxAngle"`
	PitchDownMaxAngle float32 `yaml:"pitchDownMaxAngle" json:"pitchDownMaxAngle"`

	LatDeadzone float32 `yaml:"latDeadzone" json:"latDeadzone"`
	LatMult     float32 `yaml:"latMult" json:"latMult"`
	LatLimit    float32 `yaml:"latLimit" json:"latLimit"`

	VertDeadzone  float32 `yaml:"vertDeadzone" json:"vertDeadzone"`
	VertUpMult    float32 `yaml:"vertUpMult" json:"vertUpMult"`
	VertDownMult  float32 `yaml:"vertDownMult" json:"vertDownMult"`
	VertUpLimit   float32 `yaml:"vertUpLimit" json:"vertUpLimit"`
	VertDownLimit float32 `yaml:"vertDownLimit" json:"vertDownLimit"`

	Roughness    float32 `yaml:"roughness" json:"roughness"`
	Bump         float32 `yaml:"bump" json:"bump"`
	ShakeSpeed   float32 `yaml:"shakeSpeed" json:"shakeSpeed"`
	ShakeTerrain float32 `yaml:"shakeTerrain" json:"shakeTerrain"`
}

type HorizonLock struct {
	Lock        bool      `yaml:"lock" json:"lock"`
	PitchMode   PitchMode `yaml:"pitchMode" json:"pitchMode"`
	CenterSpeed float32   `yaml:"centerSpeed" json:"centerSpeed"`
	PitchLim    float32   `yaml:"pitchLim" json:"pitchLim"`
	RollLim     float32   `yaml:"rollLim" json:"rollLim"`
}

// DoF maps speed and acceleration to the four focus planes.
type DoF struct {
	Enable bool `yaml:"enable" json:"enable"`

	TargetSpeedMinDoF float32 `yaml:"targetSpeedMinDoF" json:"targetSpeedMinDoF"`
	TargetSpeedMaxDoF float32 `yaml:"targetSpeedMaxDoF" json:"targetSpeedMaxDoF"`

	TargetAccelMinDoF    float32 `yaml:"targetAccelMinDoF" json:"targetAccelMinDoF"`
	TargetAccelMaxDoF    float32 `yaml:"targetAccelMaxDoF" json:"targetAccelMaxDoF"`
	TargetAccelMinDoFMod float32 `yaml:"targetAccelMinDoFMod" json:"targetAccelMinDoFMod"`
	TargetAccelMaxDoFMod float32 `yaml:"targetAccelMaxDoFMod" json:"targetAccelMaxDoFMod"`

	NearOutFocusMinSpeedDist float32 `yaml:"nearOutFocusMinSpeedDist" json:"nearOutFocusMinSpeedDist"`
	NearOutFocusMaxSpeedDist float32 `yaml:"nearOutFocusMaxSpeedDist" json:"nearOutFocusMaxSpeedDist"`
	NearInFocusMinSpeedDist  float32 `yaml:"nearInFocusMinSpeedDist" json:"nearInFocusMinSpeedDist"`
	NearInFocusMaxSpeedDist  float32 `yaml:"nearInFocusMaxSpeedDist" json:"nearInFocusMaxSpeedDist"`
	FarInFocusMinSpeedDist   float32 `yaml:"farInFocusMinSpeedDist" json:"farInFocusMinSpeedDist"`
	FarInFocusMaxSpeedDist   float32 `yaml:"farInFocusMaxSpeedDist" json:"farInFocusMaxSpeedDist"`
	FarOutFocusMinSpeedDist  float32 `yaml:"farOutFocusMinSpeedDist" json:"farOutFocusMinSpeedDist"`
	FarOutFocusMaxSpeedDist  float32 `yaml:"farOutFocusMaxSpeedDist" json:"farOutFocusMaxSpeedDist"`
}

// CameraProfile is one mount of a vehicle config.
type CameraProfile struct {
	Name       string     `yaml:"name" json:"name"`
	Order      int        `yaml:"order" json:"order"`
	MountPoint MountPoint `yaml:"mountPoint" json:"mountPoint"`

	FOV           float32 `yaml:"fov" json:"fov"`
	OffsetHeight  float32 `yaml:"offsetHeight" json:"offsetHeight"`
	OffsetForward float32 `yaml:"offsetForward" json:"offsetForward"`
	OffsetSide    float32 `yaml:"offsetSide" json:"offsetSide"`
	Pitch         float32 `yaml:"pitch" json:"pitch"`

	Lean        Lean        `yaml:"lean" json:"lean"`
	HorizonLock HorizonLock `yaml:"horizonLock" json:"horizonLock"`
	Movement    Movement    `yaml:"movement" json:"movement"`
	DoF         DoF         `yaml:"dof" json:"dof"`
}

// Look holds look-input smoothing and mouse tuning.
type Look struct {
	LookTime           float32 `yaml:"lookTime" json:"lookTime"`
	MouseLookTime      float32 `yaml:"mouseLookTime" json:"mouseLookTime"`
	MouseCenterTimeout int     `yaml:"mouseCenterTimeout" json:"mouseCenterTimeout"`
	MouseSensitivity   float32 `yaml:"mouseSensitivity" json:"mouseSensitivity"`
}

// VehicleConfig is the full camera configuration for one vehicle model or plate.
type VehicleConfig struct {
	Name      string `yaml:"name" json:"name"`
	ModelHash uint32 `yaml:"modelHash" json:"modelHash"`
	ModelName string `yaml:"modelName" json:"modelName"`
	Plate     string `yaml:"plate" json:"plate"`

	Enable   bool `yaml:"enable" json:"enable"`
	CamIndex int  `yaml:"camIndex" json:"camIndex"`

	Look   Look            `yaml:"look" json:"look"`
	Mounts []CameraProfile `yaml:"mounts" json:"mounts"`
}

// ActiveMount returns the mount at CamIndex, or nil if the index is out of range.
func (c *VehicleConfig) ActiveMount() *CameraProfile {
	if c == nil || c.CamIndex < 0 || c.CamIndex >= len(c.Mounts) {
		return nil
	}
	return &c.Mounts[c.CamIndex]
}

// Clone returns a deep copy.
func (c VehicleConfig) Clone() VehicleConfig {
	out := c
	out.Mounts = append([]CameraProfile(nil), c.Mounts...)
	return out
}

// Renumber rewrites Order so mounts are contiguous from 0 in slice order.
func (c *VehicleConfig) Renumber() {
	for i := range c.Mounts {
		c.Mounts[i].Order = i
	}
}

// SaveType describes which identity fields a saved config keeps.
type SaveType int

const (
	// SaveSpecific writes model and plate.
	SaveSpecific SaveType = iota
	// SaveGenericModel writes the model only.
	SaveGenericModel
	// SaveGenericNone writes neither.
	SaveGenericNone
)

func (t SaveType) String() string {
	switch t {
	case SaveSpecific:
		return "specific"
	case SaveGenericModel:
		return "model"
	case SaveGenericNone:
		return "none"
	default:
		return "unknown"
	}
}

// SaveTypeOf infers the save type from the identity fields.
func SaveTypeOf(c VehicleConfig) SaveType {
	switch {
	case c.ModelHash == 0 && c.ModelName == "":
		return SaveGenericNone
	case c.Plate == "":
		return SaveGenericModel
	default:
		return SaveSpecific
	}
}
