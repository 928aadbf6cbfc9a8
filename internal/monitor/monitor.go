package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dynfpv/extension/internal/camera"
	"github.com/dynfpv/extension/internal/influx"
	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/session"
)

// StatusFileName is written to the addon folder while the monitor runs.
const StatusFileName = "status.txt"

const defaultInterval = 5 * time.Second

// StatsSource reports the camera counters. camera.Script satisfies it.
type StatsSource interface {
	Stats() camera.Stats
}

// StatsRecorder persists snapshots. database.Manager satisfies it.
type StatsRecorder interface {
	RecordStats(s *model.SessionStats) error
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Camera      StatsSource
	Session     *session.Context
	Logger      *slog.Logger
	AddonFolder string
	Interval    time.Duration
	// Optional sinks.
	DB     StatsRecorder
	Influx influx.PointWriter
	// Pending reports queued bridge commands, if any.
	Pending func() int
}

// Status is the content of status.txt.
type Status struct {
	Time          time.Time `json:"time"`
	Uptime        string    `json:"uptime"`
	Vehicle       string    `json:"vehicle"`
	Plate         string    `json:"plate,omitempty"`
	ActiveConfig  string    `json:"activeConfig"`
	ActiveMount   string    `json:"activeMount,omitempty"`
	CameraActive  bool      `json:"cameraActive"`
	Frames        uint64    `json:"frames"`
	ActiveFrames  uint64    `json:"activeFrames"`
	Activations   uint64    `json:"activations"`
	Cancels       uint64    `json:"cancels"`
	LastTickAgeMs float32   `json:"lastTickAgeMs"`
	Pending       int       `json:"pendingCommands"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = defaultInterval
	}
	return &Service{deps: deps}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetProgramStatus returns the current status and its database row.
func (s *Service) GetProgramStatus(now time.Time) (Status, model.SessionStats) {
	st := Status{Time: now}
	if s.deps.Camera != nil {
		c := s.deps.Camera.Stats()
		st.Frames = c.Frames
		st.ActiveFrames = c.ActiveFrames
		st.Activations = c.Activations
		st.Cancels = c.Cancels
		if !c.LastTick.IsZero() {
			st.LastTickAgeMs = float32(now.Sub(c.LastTick).Microseconds()) / 1000
		}
	}

	start := now
	if sc := s.deps.Session; sc != nil {
		start = sc.Start
		v := sc.GetVehicle()
		switch {
		case v.ModelName != "":
			st.Vehicle = v.ModelName
		case v.ModelHash != 0:
			st.Vehicle = fmt.Sprintf("0x%08X", v.ModelHash)
		default:
			st.Vehicle = "on foot"
		}
		st.Plate = v.Plate
		st.ActiveConfig, st.ActiveMount = sc.GetActiveConfig()
		st.CameraActive = sc.IsCameraActive()
	}
	st.Uptime = now.Sub(start).Truncate(time.Second).String()

	if s.deps.Pending != nil {
		st.Pending = s.deps.Pending()
	}

	row := model.SessionStats{
		Time:          now,
		SessionStart:  start,
		Frames:        int64(st.Frames),
		ActiveFrames:  int64(st.ActiveFrames),
		Activations:   int64(st.Activations),
		Cancels:       int64(st.Cancels),
		ActiveConfig:  st.ActiveConfig,
		ActiveMount:   st.ActiveMount,
		VehicleModel:  st.Vehicle,
		CameraActive:  st.CameraActive,
		LastTickAgeMs: st.LastTickAgeMs,
	}
	return st, row
}

// StatusPath is where status.txt is written.
func (s *Service) StatusPath() string {
	return filepath.Join(s.deps.AddonFolder, StatusFileName)
}

// WriteStatus takes one snapshot and sends it to every sink.
func (s *Service) WriteStatus(now time.Time) error {
	st, row := s.GetProgramStatus(now)

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("monitor: marshal status: %w", err)
	}
	if err := os.WriteFile(s.StatusPath(), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("monitor: write status: %w", err)
	}

	if s.deps.DB != nil {
		if err := s.deps.DB.RecordStats(&row); err != nil {
			s.deps.Logger.Warn("Error writing session stats", "error", err)
		}
	}
	if s.deps.Influx != nil && s.deps.Camera != nil {
		p := influx.StatusPoint(s.deps.Camera.Stats(), st.CameraActive, now)
		if err := s.deps.Influx.WritePoint(influx.BucketPerformance, p); err != nil {
			s.deps.Logger.Debug("Error writing status point", "error", err)
		}
	}
	return nil
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		s.deps.Logger.Debug("Starting status monitor", "interval", s.deps.Interval)
		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				if err := s.WriteStatus(now); err != nil {
					s.deps.Logger.Error("Error writing status", "error", err)
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	stop, done := s.stopChan, s.done
	s.stopChan = nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}
