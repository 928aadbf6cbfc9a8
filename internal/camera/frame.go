package camera

import (
	"context"
	"time"

	"github.com/dynfpv/extension/internal/dof"
	"github.com/dynfpv/extension/internal/inertia"
	"github.com/dynfpv/extension/internal/shake"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is one active frame of camera output, for recording and tuning.
type Frame struct {
	ModelHash uint32
	Config    string
	Mount     string

	Speed        float32
	Acceleration mgl32.Vec3
	Centripetal  mgl32.Vec3

	Inertia    inertia.State
	LookPitch  float32
	LookYaw    float32
	LookSource string

	Rotation mgl32.Vec3
	Offset   mgl32.Vec3
	DoF      dof.Planes
	Shake    shake.Output
}

// Recorder receives every active frame. It is called on the tick goroutine
// and must not block.
type Recorder interface {
	RecordFrame(Frame)
}

// Stats are counters for the status monitor.
type Stats struct {
	Frames       uint64
	ActiveFrames uint64
	Activations  uint64
	Cancels      uint64
	LastTick     time.Time
}

// Stats returns a snapshot of the counters. Safe from any goroutine.
func (s *Script) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Script) countFrame(active bool) {
	s.mu.Lock()
	s.stats.Frames++
	if active {
		s.stats.ActiveFrames++
	}
	s.stats.LastTick = time.Now()
	s.mu.Unlock()

	if active {
		s.metrics.frames.Add(context.Background(), 1)
	}
}
