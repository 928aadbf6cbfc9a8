package inertia

import (
	"testing"

	"github.com/dynfpv/extension/internal/mathutil"
	"github.com/dynfpv/extension/internal/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func run(in Input, m model.Movement, dt float32, frames int) State {
	var s State
	for i := 0; i < frames; i++ {
		s = Update(s, in, m, dt)
	}
	return s
}

func TestTimeConstant(t *testing.T) {
	assert.InDelta(t, 1e-4, TimeConstant(1), 1e-9)
	assert.InDelta(t, 1e-3, TimeConstant(0), 1e-8)
}

func TestUpdate_StationaryConvergesToZero(t *testing.T) {
	m := model.DefaultMovement()
	s := State{DirectionYaw: 12, Move: mgl32.Vec3{0.05, -0.05, 0.02}, Pitch: 3}
	for i := 0; i < 5000; i++ {
		s = Update(s, Input{}, m, 1.0/60)
	}
	assert.InDelta(t, 0, s.DirectionYaw, 1e-4)
	assert.InDelta(t, 0, s.Move.X(), 1e-5)
	assert.InDelta(t, 0, s.Move.Y(), 1e-5)
	assert.InDelta(t, 0, s.Move.Z(), 1e-5)
	assert.InDelta(t, 0, s.Pitch, 1e-4)
}

func TestUpdate_ZeroDtChangesNothing(t *testing.T) {
	m := model.DefaultMovement()
	s := State{DirectionYaw: 5, Move: mgl32.Vec3{1, 2, 3}, Pitch: 1}
	in := Input{Acceleration: mgl32.Vec3{0, 20, 0}, Centripetal: mgl32.Vec3{5, 5, 5}, LocalVelocity: mgl32.Vec3{3, 10, 0}}
	assert.Equal(t, s, Update(s, in, m, 0))
}

func TestUpdate_ConvergesMonotonically(t *testing.T) {
	m := model.DefaultMovement()
	in := Input{Acceleration: mgl32.Vec3{0, 9.81, 0}}
	target := Longitudinal(1, m)

	for _, dt := range []float32{0.005, 0.016, 0.1, 0.5, 1} {
		var s State
		prev := mathutil.Abs(target - s.Move.Y())
		for i := 0; i < 3000; i++ {
			s = Update(s, in, m, dt)
			d := mathutil.Abs(target - s.Move.Y())
			assert.LessOrEqual(t, d, prev)
			prev = d
		}
		assert.InDelta(t, target, s.Move.Y(), 1e-5, "dt=%v", dt)
	}
}

func TestLongitudinal(t *testing.T) {
	m := model.DefaultMovement()
	m.LongDeadzone = 0.1

	assert.Equal(t, float32(0), Longitudinal(0.05, m))
	assert.InDelta(t, -0.02, Longitudinal(0.5, m), 1e-6) // (0.5-0.1)*0.05 back
	assert.InDelta(t, -0.07, Longitudinal(5, m), 1e-6)   // back limit
	assert.InDelta(t, 0.02, Longitudinal(-0.5, m), 1e-6) // braking moves forward
	assert.InDelta(t, 0.07, Longitudinal(-5, m), 1e-6)   // forward limit
}

func TestLateral_Symmetric(t *testing.T) {
	m := model.DefaultMovement()
	assert.InDelta(t, 0.02, Lateral(1, m), 1e-6)
	assert.InDelta(t, -0.02, Lateral(-1, m), 1e-6)
	assert.InDelta(t, 0.004, Lateral(0.1, m), 1e-6)
	assert.InDelta(t, -0.004, Lateral(-0.1, m), 1e-6)
}

func TestVertical_Asymmetric(t *testing.T) {
	m := model.DefaultMovement()
	assert.InDelta(t, -0.05, Vertical(0.5, m), 1e-6) // 0.5*0.10 down
	assert.InDelta(t, -0.06, Vertical(2, m), 1e-6)   // down limit
	assert.InDelta(t, 0.025, Vertical(-0.5, m), 1e-6)
	assert.InDelta(t, 0.05, Vertical(-2, m), 1e-6) // up limit
}

func TestPitch_Asymmetric(t *testing.T) {
	m := model.DefaultMovement()
	m.PitchUpMaxAngle = 3
	m.PitchDownMult = 2
	assert.InDelta(t, 0.5, Pitch(0.5, m), 1e-6)
	assert.InDelta(t, 3, Pitch(10, m), 1e-6)
	assert.InDelta(t, -1, Pitch(-0.5, m), 1e-6)
	assert.InDelta(t, -5, Pitch(-10, m), 1e-6)
}

func TestFollowTarget(t *testing.T) {
	m := model.DefaultMovement()
	m.RotationRotationMult = 0

	tests := []struct {
		name string
		vel  mgl32.Vec3
		want float32
	}{
		{"straight ahead", mgl32.Vec3{0, 20, 0}, 0},
		{"drifting right", mgl32.Vec3{20, 20, 0}, 22.5},
		{"drifting left", mgl32.Vec3{-20, 20, 0}, -22.5},
		{"reversing straight", mgl32.Vec3{0, -20, 0}, 0},
		{"slow forward fades", mgl32.Vec3{1.5, 1.5, 0}, 11.25},
		{"stopped", mgl32.Vec3{}, 0},
		{"creeping below the travel threshold", mgl32.Vec3{0.0005, 0.0005, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FollowTarget(Input{LocalVelocity: tt.vel}, m), 1e-3)
		})
	}
}

func TestFollowTarget_ClampedToMaxAngle(t *testing.T) {
	m := model.DefaultMovement()
	m.RotationDirectionMult = 1
	m.RotationMaxAngle = 10
	got := FollowTarget(Input{LocalVelocity: mgl32.Vec3{20, 5, 0}}, m)
	assert.InDelta(t, 10, got, 1e-4)
}

func TestFollowTarget_RotationTerm(t *testing.T) {
	m := model.DefaultMovement()
	m.RotationDirectionMult = 0
	m.RotationRotationMult = 1
	// turning left at 0.2 rad/s looks into the turn
	got := FollowTarget(Input{LocalVelocity: mgl32.Vec3{0, 10, 0}, RotationVelocity: mgl32.Vec3{0, 0, 0.2}}, m)
	assert.InDelta(t, -mgl32.RadToDeg(0.2), got, 1e-3)
}

func TestUpdate_FollowSuppressed(t *testing.T) {
	m := model.DefaultMovement()
	in := Input{
		LocalVelocity:    mgl32.Vec3{20, 10, 0},
		RotationVelocity: mgl32.Vec3{0, 0, 1.5},
	}
	s := run(in, m, 1.0/60, 100)
	assert.NotZero(t, s.DirectionYaw)

	in.SuppressFollow = true
	s = Update(s, in, m, 1.0/60)
	assert.Equal(t, float32(0), s.DirectionYaw)

	in.SuppressFollow = false
	m.Follow = false
	s = run(in, m, 1.0/60, 1)
	assert.Equal(t, float32(0), s.DirectionYaw)
}

func TestUpdate_BumpPushesCameraDown(t *testing.T) {
	m := model.DefaultMovement()
	s := run(Input{SuspensionVelocity: 0.5}, m, 1.0/60, 3000)
	assert.InDelta(t, Vertical(0.5, m), s.Move.Z(), 1e-5)
	assert.Less(t, s.Move.Z(), float32(0))
}
