// Package camera runs the first-person vehicle camera: activation, per-frame
// composition and teardown.
package camera

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dynfpv/extension/internal/host"
	"github.com/dynfpv/extension/internal/inertia"
	"github.com/dynfpv/extension/internal/look"
	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/resolver"
	"github.com/dynfpv/extension/internal/session"
	"github.com/dynfpv/extension/internal/shake"
	"github.com/dynfpv/extension/internal/telemetry"
)

// ErrNoActiveConfig is returned by config operations when no vehicle config
// is selected.
var ErrNoActiveConfig = errors.New("no active config")

// ModelNames resolves model hashes to display names.
type ModelNames interface {
	Get(hash uint32) (string, bool)
}

// Dependencies holds everything the Script talks to.
type Dependencies struct {
	Host       host.Host
	Compat     host.Compat
	Settings   model.ScriptSettings
	Configs    []model.VehicleConfig
	ShakeTable *shake.Table
	ModelNames ModelNames
	Session    *session.Context
	Recorder   Recorder
	Logger     *slog.Logger
	// Seed feeds the shake noise generators.
	Seed int64
}

type savedProp struct {
	index, texture int
}

// runtimeState is everything reset by Cancel.
type runtimeState struct {
	cam       host.Handle
	look      look.State
	wheel     look.WheelState
	intoGlass bool
	source    look.Source

	inertia  inertia.State
	dynPitch float32
	avgAccel float32

	headRemoved  bool
	propsRemoved bool
	props        map[int]savedProp
}

// Script is the camera state machine. Tick, Cancel and every config
// operation must be called from the same goroutine; only RequestReload,
// Settings updates and Stats are safe from others.
type Script struct {
	h       host.Host
	compat  host.Compat
	log     *slog.Logger
	session *session.Context
	names   ModelNames
	rec     Recorder

	configs   []model.VehicleConfig
	activeIdx int

	veh   *telemetry.Vehicle
	shake *shake.Engine
	rt    runtimeState

	mu       sync.Mutex
	settings model.ScriptSettings
	pending  []model.VehicleConfig
	reload   bool
	stats    Stats

	metrics *metrics

	capsLogged bool
}

// New creates a Script.
func New(deps Dependencies) (*Script, error) {
	if deps.Host == nil {
		return nil, fmt.Errorf("camera: host is required")
	}
	if deps.Compat == nil {
		deps.Compat = host.NoCompat{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.ShakeTable == nil {
		deps.ShakeTable = shake.DefaultTable()
	}

	m, err := newMetrics()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	s := &Script{
		h:         deps.Host,
		compat:    deps.Compat,
		log:       deps.Logger,
		session:   deps.Session,
		names:     deps.ModelNames,
		rec:       deps.Recorder,
		settings:  deps.Settings,
		configs:   ensureDefault(deps.Configs),
		activeIdx: -1,
		shake:     shake.New(deps.ShakeTable, deps.Seed),
		metrics:   m,
	}

	return s, nil
}

// logCapabilities reports each missing optional capability once, on the
// first tick, when the host has delivered its compatibility flags.
func (s *Script) logCapabilities() {
	if s.capsLogged {
		return
	}
	s.capsLogged = true
	if !s.compat.DismembermentAvailable() {
		s.log.Info("dismemberment not available, head stays visible")
	}
	if !s.compat.WheelAvailable() {
		s.log.Info("wheel look buttons not available")
	}
}

// ensureDefault guarantees a config named Default at index 0.
func ensureDefault(configs []model.VehicleConfig) []model.VehicleConfig {
	for i, c := range configs {
		if c.Name != model.DefaultConfigName {
			continue
		}
		if i == 0 {
			return configs
		}
		out := make([]model.VehicleConfig, 0, len(configs))
		out = append(out, c)
		out = append(out, configs[:i]...)
		return append(out, configs[i+1:]...)
	}
	return append([]model.VehicleConfig{model.DefaultVehicleConfig()}, configs...)
}

// SetSettings replaces the global switches. Safe from any goroutine.
func (s *Script) SetSettings(st model.ScriptSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st
}

// Settings returns the global switches.
func (s *Script) Settings() model.ScriptSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// RequestReload hands a freshly loaded config list to the tick goroutine.
// It is applied at the start of the next Tick.
func (s *Script) RequestReload(configs []model.VehicleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = configs
	s.reload = true
}

func (s *Script) applyPending() {
	s.mu.Lock()
	if !s.reload {
		s.mu.Unlock()
		return
	}
	configs := s.pending
	s.pending, s.reload = nil, false
	s.mu.Unlock()

	s.SetConfigs(configs)
}

// SetConfigs replaces the config list and re-resolves the active config.
func (s *Script) SetConfigs(configs []model.VehicleConfig) {
	s.configs = ensureDefault(configs)
	s.log.Info("configs loaded", "count", len(s.configs))
	s.UpdateActiveConfig()
}

// Configs returns a copy of the config list.
func (s *Script) Configs() []model.VehicleConfig {
	out := make([]model.VehicleConfig, len(s.configs))
	for i, c := range s.configs {
		out[i] = c.Clone()
	}
	return out
}

// Active reports whether the scripted camera exists.
func (s *Script) Active() bool {
	return s.rt.cam != 0
}

// Vehicle returns the tracked vehicle, or nil when on foot.
func (s *Script) Vehicle() *telemetry.Vehicle {
	return s.veh
}

// ActiveConfig returns the config resolved for the current vehicle, or nil.
func (s *Script) ActiveConfig() *model.VehicleConfig {
	if s.activeIdx < 0 || s.activeIdx >= len(s.configs) {
		return nil
	}
	return &s.configs[s.activeIdx]
}

// UpdateActiveConfig re-resolves the active config for the current vehicle.
func (s *Script) UpdateActiveConfig() {
	if s.veh == nil || !s.veh.Valid() || len(s.configs) == 0 {
		s.activeIdx = -1
		s.publishConfig()
		return
	}

	veh := s.veh.Handle()
	modelHash := s.h.ModelHash(veh)
	plate := s.h.Plate(veh)

	idx, tier := resolver.ResolveTier(modelHash, plate, s.configs)
	s.activeIdx = idx

	cfg := &s.configs[idx]
	if changed, err := resolver.ClampCamIndex(cfg); err != nil {
		s.log.Warn("active config unusable", "config", cfg.Name, "error", err)
	} else if changed {
		s.log.Warn("camera index out of range, clamped", "config", cfg.Name, "camIndex", cfg.CamIndex)
	}

	s.log.Debug("active config resolved",
		"config", cfg.Name,
		"tier", tier.String(),
		"model", s.modelName(modelHash),
		"plate", plate)
	s.publishConfig()
}

func (s *Script) modelName(hash uint32) string {
	if s.names != nil {
		if name, ok := s.names.Get(hash); ok {
			return name
		}
	}
	return fmt.Sprintf("0x%08X", hash)
}

func (s *Script) publishConfig() {
	if s.session == nil {
		return
	}
	cfg := s.ActiveConfig()
	if cfg == nil {
		s.session.SetActiveConfig("", "")
		return
	}
	mount := ""
	if m := cfg.ActiveMount(); m != nil {
		mount = m.Name
	}
	s.session.SetActiveConfig(cfg.Name, mount)
}

// trackVehicle swaps the telemetry tracker when the occupied handle changes
// and reports whether it did.
func (s *Script) trackVehicle(veh host.Handle) bool {
	if s.veh != nil && s.veh.Handle() == veh {
		return false
	}
	if veh == 0 {
		s.veh = nil
	} else {
		s.veh = telemetry.New(s.h, veh)
	}
	if s.session != nil {
		v := session.Vehicle{}
		if s.veh != nil && s.veh.Valid() {
			hash := s.h.ModelHash(veh)
			v = session.Vehicle{ModelHash: hash, ModelName: s.modelName(hash), Plate: s.h.Plate(veh)}
		}
		s.session.SetVehicle(v)
	}
	return true
}

// Tick runs one frame. It never panics out to the caller.
func (s *Script) Tick() {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tick panicked, camera cancelled", "panic", r)
			s.Cancel()
		}
		s.metrics.tickDuration.Record(context.Background(), time.Since(start).Seconds())
	}()

	s.logCapabilities()
	s.applyPending()
	settings := s.Settings()

	ped := s.h.PlayerPed()
	veh := s.h.PedVehicle(ped)
	if s.trackVehicle(veh) {
		s.UpdateActiveConfig()
	}
	if s.veh != nil {
		s.veh.Update(s.h.FrameTime())
	}

	if !s.shouldRun(settings, ped, veh) {
		if s.Active() {
			s.Cancel()
		}
		s.countFrame(false)
		return
	}

	cfg := s.ActiveConfig()
	if cfg == nil {
		s.Cancel()
		s.veh = nil
		s.countFrame(false)
		return
	}
	mount := cfg.ActiveMount()
	if mount == nil {
		if _, err := resolver.ClampCamIndex(cfg); err != nil || cfg.ActiveMount() == nil {
			s.Cancel()
			s.countFrame(false)
			return
		}
		mount = cfg.ActiveMount()
	}

	if !s.Active() {
		s.start(settings, ped, veh)
	}
	s.update(settings, ped, veh, cfg, mount)
	s.countFrame(true)
}

func (s *Script) shouldRun(st model.ScriptSettings, ped, veh host.Handle) bool {
	if !st.Enable || veh == 0 || s.veh == nil || !s.veh.Valid() {
		return false
	}
	if !s.h.IsDriver(ped, veh) || !s.h.IsFirstPersonVehicleView() || !s.h.PlayerControlOn() {
		return false
	}
	if s.h.IsAiming() && !s.h.Class(veh).IsAir() {
		return false
	}
	cfg := s.ActiveConfig()
	return cfg == nil || cfg.Enable
}

func (s *Script) start(st model.ScriptSettings, ped, veh host.Handle) {
	// head and props hidden while inactive must survive so Cancel restores them
	s.rt = runtimeState{
		headRemoved:  s.rt.headRemoved,
		propsRemoved: s.rt.propsRemoved,
		props:        s.rt.props,
	}
	s.rt.cam = s.h.CreateCamera()
	s.h.RenderScriptCams(true)
	s.h.SetParticleFxInsideVehicle(true)
	s.shake.Reset()

	if !st.DisableRemoveHead {
		s.hideHead(ped)
	}
	if !st.DisableRemoveProps {
		s.hideProps(ped)
	}

	s.mu.Lock()
	s.stats.Activations++
	s.mu.Unlock()
	s.metrics.activations.Add(context.Background(), 1)
	if s.session != nil {
		s.session.SetCameraActive(true)
	}
	s.log.Debug("camera started", "camera", s.rt.cam, "vehicle", veh)
}

// Cancel tears the camera down and zeroes all runtime state. Calling it
// while inactive does nothing.
func (s *Script) Cancel() {
	ped := s.h.PlayerPed()
	wasActive := s.Active()

	s.restoreHead(ped)

	if wasActive {
		s.h.DestroyCamera(s.rt.cam)
		s.h.RenderScriptCams(false)
		s.h.UnlockMinimapAngle()
		s.h.SetParticleFxInsideVehicle(false)

		s.mu.Lock()
		s.stats.Cancels++
		s.mu.Unlock()
		s.metrics.cancels.Add(context.Background(), 1)
		s.log.Debug("camera cancelled", "camera", s.rt.cam)
	}

	s.rt = runtimeState{}
	s.shake.Reset()
	if s.session != nil {
		s.session.SetCameraActive(false)
	}
}

// HideHead hides or restores the player's head and props.
func (s *Script) HideHead(hide bool) {
	ped := s.h.PlayerPed()
	if !hide {
		s.restoreHead(ped)
		return
	}
	st := s.Settings()
	if !st.DisableRemoveHead {
		s.hideHead(ped)
	}
	if !st.DisableRemoveProps {
		s.hideProps(ped)
	}
}

func (s *Script) hideHead(ped host.Handle) {
	if s.rt.headRemoved || !s.compat.DismembermentAvailable() {
		return
	}
	s.compat.AddBoneDraw(ped, host.BoneHead, -1)
	s.rt.headRemoved = true
}

func (s *Script) hideProps(ped host.Handle) {
	if s.rt.propsRemoved {
		return
	}
	s.rt.props = make(map[int]savedProp, 2)
	for _, anchor := range []int{host.PropAnchorHat, host.PropAnchorEye} {
		idx := s.h.PropIndex(ped, anchor)
		if idx < 0 {
			continue
		}
		s.rt.props[anchor] = savedProp{index: idx, texture: s.h.PropTexture(ped, anchor)}
		s.h.ClearProp(ped, anchor)
	}
	s.rt.propsRemoved = true
}

func (s *Script) restoreHead(ped host.Handle) {
	if s.rt.headRemoved {
		s.compat.RemoveBoneDraw(ped)
		s.rt.headRemoved = false
	}
	if s.rt.propsRemoved {
		for anchor, p := range s.rt.props {
			s.h.SetProp(ped, anchor, p.index, p.texture)
		}
		s.rt.props = nil
		s.rt.propsRemoved = false
	}
}
