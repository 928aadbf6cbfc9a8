// Package dof maps vehicle speed and acceleration onto the four focus planes.
package dof

import (
	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
	"github.com/go-gl/mathgl/mgl32"
)

// averageTimeConstant drives the acceleration running average. It is not
// tied to any profile's roughness.
const averageTimeConstant = 0.05

// minModifier keeps the far-plane division finite.
const minModifier = 1e-3

// Planes are the focus distances in metres: near-out, near-in, far-in, far-out.
type Planes [4]float32

func (p Planes) NearOut() float32 { return p[0] }
func (p Planes) NearIn() float32  { return p[1] }
func (p Planes) FarIn() float32   { return p[2] }
func (p Planes) FarOut() float32  { return p[3] }

// UpdateAverage low-passes the centripetal acceleration magnitude.
func UpdateAverage(avg float32, centripetal mgl32.Vec3, dt float32) float32 {
	return mathutil.Smooth(avg, centripetal.Len(), averageTimeConstant, dt)
}

// Modifier is piecewise linear over (0, 1), (AccelMin, MinMod), (AccelMax, MaxMod)
// and flat outside.
func Modifier(accel float32, d model.DoF) float32 {
	switch {
	case accel <= 0:
		return 1
	case accel <= d.TargetAccelMinDoF:
		return mathutil.MapClamped(accel, 0, d.TargetAccelMinDoF, 1, d.TargetAccelMinDoFMod)
	case accel <= d.TargetAccelMaxDoF:
		return mathutil.MapClamped(accel, d.TargetAccelMinDoF, d.TargetAccelMaxDoF, d.TargetAccelMinDoFMod, d.TargetAccelMaxDoFMod)
	}
	return d.TargetAccelMaxDoFMod
}

// Compute returns the planes for a speed in m/s and an averaged acceleration.
// Near planes scale by the modifier, far planes by its reciprocal.
func Compute(speed, avgAccel float32, d model.DoF) Planes {
	base := func(lo, hi float32) float32 {
		return mathutil.MapClamped(speed, d.TargetSpeedMinDoF, d.TargetSpeedMaxDoF, lo, hi)
	}
	m := mathutil.Max(Modifier(avgAccel, d), minModifier)

	return Planes{
		base(d.NearOutFocusMinSpeedDist, d.NearOutFocusMaxSpeedDist) * m,
		base(d.NearInFocusMinSpeedDist, d.NearInFocusMaxSpeedDist) * m,
		base(d.FarInFocusMinSpeedDist, d.FarInFocusMaxSpeedDist) / m,
		base(d.FarOutFocusMinSpeedDist, d.FarOutFocusMaxSpeedDist) / m,
	}
}
