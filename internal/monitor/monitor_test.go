package monitor

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dynfpv/extension/internal/camera"
	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
)

type fixedStats camera.Stats

func (f fixedStats) Stats() camera.Stats { return camera.Stats(f) }

type statsSpy struct {
	mu   sync.Mutex
	rows []model.SessionStats
	err  error
}

func (s *statsSpy) RecordStats(row *model.SessionStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *row)
	return s.err
}

func (s *statsSpy) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type pointSpy struct {
	buckets []string
}

func (p *pointSpy) WritePoint(bucket string, _ *influxdb2_write.Point) error {
	p.buckets = append(p.buckets, bucket)
	return nil
}

func newSession(start time.Time) *session.Context {
	sc := session.NewContext()
	sc.Start = start
	sc.SetVehicle(session.Vehicle{ModelHash: 0xB779A091, ModelName: "adder", Plate: "46EEK572"})
	sc.SetActiveConfig("Adder", "Hood")
	sc.SetCameraActive(true)
	return sc
}

func TestGetProgramStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(Dependencies{
		Camera: fixedStats{
			Frames:       120,
			ActiveFrames: 100,
			Activations:  2,
			Cancels:      1,
			LastTick:     now.Add(-16 * time.Millisecond),
		},
		Session: newSession(now.Add(-90 * time.Second)),
		Pending: func() int { return 3 },
	})

	st, row := svc.GetProgramStatus(now)

	assert.Equal(t, "adder", st.Vehicle)
	assert.Equal(t, "46EEK572", st.Plate)
	assert.Equal(t, "Adder", st.ActiveConfig)
	assert.Equal(t, "Hood", st.ActiveMount)
	assert.True(t, st.CameraActive)
	assert.Equal(t, "1m30s", st.Uptime)
	assert.Equal(t, uint64(120), st.Frames)
	assert.InDelta(t, 16, st.LastTickAgeMs, 0.001)
	assert.Equal(t, 3, st.Pending)

	assert.Equal(t, int64(100), row.ActiveFrames)
	assert.Equal(t, int64(2), row.Activations)
	assert.Equal(t, "adder", row.VehicleModel)
	assert.Equal(t, now, row.Time)
	assert.Equal(t, now.Add(-90*time.Second), row.SessionStart)
}

func TestGetProgramStatus_VehicleLabel(t *testing.T) {
	tests := []struct {
		name string
		veh  session.Vehicle
		want string
	}{
		{"named", session.Vehicle{ModelHash: 1, ModelName: "zentorno"}, "zentorno"},
		{"hash only", session.Vehicle{ModelHash: 0xB779A091}, "0xB779A091"},
		{"on foot", session.Vehicle{}, "on foot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := session.NewContext()
			sc.SetVehicle(tt.veh)
			svc := NewService(Dependencies{Session: sc})
			st, _ := svc.GetProgramStatus(time.Now())
			assert.Equal(t, tt.want, st.Vehicle)
		})
	}
}

func TestGetProgramStatus_NoTickYet(t *testing.T) {
	svc := NewService(Dependencies{Camera: fixedStats{}})
	st, _ := svc.GetProgramStatus(time.Now())
	assert.Zero(t, st.LastTickAgeMs)
	assert.Zero(t, st.Frames)
}

func TestWriteStatus(t *testing.T) {
	dir := t.TempDir()
	db := &statsSpy{}
	points := &pointSpy{}
	svc := NewService(Dependencies{
		Camera:      fixedStats{Frames: 5},
		Session:     newSession(time.Now()),
		AddonFolder: dir,
		DB:          db,
		Influx:      points,
	})

	require.NoError(t, svc.WriteStatus(time.Now()))

	data, err := os.ReadFile(svc.StatusPath())
	require.NoError(t, err)
	var st Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, "Adder", st.ActiveConfig)
	assert.Equal(t, uint64(5), st.Frames)

	assert.Equal(t, 1, db.count())
	assert.Equal(t, []string{"extension_performance"}, points.buckets)
}

func TestWriteStatus_SinkErrorIsNotFatal(t *testing.T) {
	svc := NewService(Dependencies{
		AddonFolder: t.TempDir(),
		DB:          &statsSpy{err: errors.New("database is locked")},
	})
	assert.NoError(t, svc.WriteStatus(time.Now()))
}

func TestWriteStatus_BadFolder(t *testing.T) {
	svc := NewService(Dependencies{AddonFolder: "/nonexistent/dir/for/status"})
	assert.Error(t, svc.WriteStatus(time.Now()))
}

func TestStartStop(t *testing.T) {
	db := &statsSpy{}
	svc := NewService(Dependencies{
		AddonFolder: t.TempDir(),
		Interval:    10 * time.Millisecond,
		DB:          db,
	})

	assert.False(t, svc.IsRunning())
	require.NoError(t, svc.Start())
	require.NoError(t, svc.Start())
	assert.True(t, svc.IsRunning())

	require.Eventually(t, func() bool { return db.count() >= 2 }, time.Second, 5*time.Millisecond)

	svc.Stop()
	assert.False(t, svc.IsRunning())
	_, err := os.Stat(svc.StatusPath())
	assert.NoError(t, err)

	svc.Stop()
}
