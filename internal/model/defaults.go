package model

// DefaultConfigName is the name of the fallback config kept at index 0.
const DefaultConfigName = "Default"

func DefaultLean() Lean {
	return Lean{CenterDist: 0.25, ForwardDist: 0.05, UpDist: 0.08}
}

func DefaultMovement() Movement {
	return Movement{
		Follow:                true,
		RotationDirectionMult: 0.50,
		RotationRotationMult:  0.05,
		RotationMaxAngle:      45.0,

		LongForwardMult:   0.05,
		LongBackwardMult:  0.05,
		LongForwardLimit:  0.07,
		LongBackwardLimit: 0.07,

		PitchUpMult:       1.0,
		PitchDownMult:     1.0,
		PitchUpMaxAngle:   5.0,
		PitchDownMaxAngle: 5.0,

		LatMult:  0.04,
		LatLimit: 0.02,

		VertUpMult:    0.05,
		VertDownMult:  0.10,
		VertUpLimit:   0.05,
		VertDownLimit: 0.06,

		Roughness:    1.0,
		Bump:         1.0,
		ShakeSpeed:   0.5,
		ShakeTerrain: 0.5,
	}
}

func DefaultHorizonLock() HorizonLock {
	return HorizonLock{
		PitchMode:   PitchHorizonFull,
		CenterSpeed: 1.5,
		PitchLim:    30.0,
		RollLim:     45.0,
	}
}

func DefaultDoF() DoF {
	return DoF{
		TargetSpeedMinDoF: 36.0,
		TargetSpeedMaxDoF: 72.0,

		TargetAccelMinDoF:    5.0,
		TargetAccelMaxDoF:    9.8,
		TargetAccelMinDoFMod: 0.1,
		TargetAccelMaxDoFMod: 1.0,

		NearOutFocusMinSpeedDist: 0.0,
		NearOutFocusMaxSpeedDist: 0.5,
		NearInFocusMinSpeedDist:  0.1,
		NearInFocusMaxSpeedDist:  20.0,
		FarInFocusMinSpeedDist:   100000.0,
		FarInFocusMaxSpeedDist:   2000.0,
		FarOutFocusMinSpeedDist:  100000.0,
		FarOutFocusMaxSpeedDist:  10000.0,
	}
}

// DefaultCameraProfile returns a vehicle-mounted profile with stock tuning.
func DefaultCameraProfile(name string, order int) CameraProfile {
	return CameraProfile{
		Name:          name,
		Order:         order,
		MountPoint:    MountVehicle,
		FOV:           55.0,
		OffsetHeight:  0.04,
		OffsetForward: 0.05,
		Lean:          DefaultLean(),
		HorizonLock:   DefaultHorizonLock(),
		Movement:      DefaultMovement(),
		DoF:           DefaultDoF(),
	}
}

func DefaultLook() Look {
	return Look{
		LookTime:           0.000010,
		MouseLookTime:      0.000001,
		MouseCenterTimeout: 750,
		MouseSensitivity:   0.3,
	}
}

// DefaultVehicleConfig is the config synthesized when none named Default exists.
func DefaultVehicleConfig() VehicleConfig {
	return VehicleConfig{
		Name:   DefaultConfigName,
		Enable: true,
		Look:   DefaultLook(),
		Mounts: []CameraProfile{DefaultCameraProfile("Default", 0)},
	}
}
