package camera

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/resolver"
)

var (
	// ErrNotInVehicle is returned when an operation needs an occupied vehicle.
	ErrNotInVehicle = errors.New("not in a vehicle")
	// ErrConfigExists is returned when a config name is already taken.
	ErrConfigExists = errors.New("config already exists")
	// ErrLastMount is returned when removing the only mount of a config.
	ErrLastMount = errors.New("cannot remove the last mount")
	// ErrMountIndex is returned for a mount index outside the list.
	ErrMountIndex = errors.New("mount index out of range")
)

// CreateConfig adds a config for the occupied vehicle, copying the look and
// mounts of the current active config. withPlate binds it to the plate too.
func (s *Script) CreateConfig(name string, withPlate bool) (model.VehicleConfig, error) {
	if s.veh == nil || !s.veh.Valid() {
		return model.VehicleConfig{}, ErrNotInVehicle
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.VehicleConfig{}, fmt.Errorf("create config: empty name")
	}
	for _, c := range s.configs {
		if strings.EqualFold(c.Name, name) {
			return model.VehicleConfig{}, fmt.Errorf("create config %q: %w", name, ErrConfigExists)
		}
	}

	base := model.DefaultVehicleConfig()
	if active := s.ActiveConfig(); active != nil {
		base = active.Clone()
	}

	veh := s.veh.Handle()
	hash := s.h.ModelHash(veh)
	cfg := base
	cfg.Name = name
	cfg.ModelHash = hash
	cfg.ModelName = ""
	if s.names != nil {
		cfg.ModelName, _ = s.names.Get(hash)
	}
	cfg.Plate = ""
	if withPlate {
		cfg.Plate = s.h.Plate(veh)
	}
	cfg.Enable = true
	cfg.Renumber()

	s.configs = append(s.configs, cfg)
	s.log.Info("config created", "config", name, "model", s.modelName(hash), "plate", cfg.Plate)
	s.UpdateActiveConfig()
	return cfg.Clone(), nil
}

// AddMount appends a default mount to the active config and returns its index.
func (s *Script) AddMount(name string) (int, error) {
	cfg := s.ActiveConfig()
	if cfg == nil {
		return 0, ErrNoActiveConfig
	}
	if name == "" {
		name = fmt.Sprintf("Mount %d", len(cfg.Mounts)+1)
	}
	cfg.Mounts = append(cfg.Mounts, model.DefaultCameraProfile(name, len(cfg.Mounts)))
	cfg.Renumber()
	return len(cfg.Mounts) - 1, nil
}

// RemoveMount deletes mount i from the active config. The selected mount
// stays selected when it survives.
func (s *Script) RemoveMount(i int) error {
	cfg := s.ActiveConfig()
	if cfg == nil {
		return ErrNoActiveConfig
	}
	if i < 0 || i >= len(cfg.Mounts) {
		return fmt.Errorf("remove mount %d: %w", i, ErrMountIndex)
	}
	if len(cfg.Mounts) == 1 {
		return ErrLastMount
	}

	cfg.Mounts = append(cfg.Mounts[:i], cfg.Mounts[i+1:]...)
	cfg.Renumber()
	if cfg.CamIndex > i {
		cfg.CamIndex--
	}
	if _, err := resolver.ClampCamIndex(cfg); err != nil {
		return err
	}
	s.publishConfig()
	return nil
}

// MoveMount moves mount from to position to, shifting the others.
func (s *Script) MoveMount(from, to int) error {
	cfg := s.ActiveConfig()
	if cfg == nil {
		return ErrNoActiveConfig
	}
	n := len(cfg.Mounts)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move mount %d to %d: %w", from, to, ErrMountIndex)
	}
	if from == to {
		return nil
	}

	selected := cfg.CamIndex
	m := cfg.Mounts[from]
	cfg.Mounts = append(cfg.Mounts[:from], cfg.Mounts[from+1:]...)
	cfg.Mounts = append(cfg.Mounts[:to], append([]model.CameraProfile{m}, cfg.Mounts[to:]...)...)
	cfg.Renumber()

	switch {
	case selected == from:
		cfg.CamIndex = to
	case from < selected && selected <= to:
		cfg.CamIndex--
	case to <= selected && selected < from:
		cfg.CamIndex++
	}
	return nil
}

// SelectMount sets the active mount. An out-of-range index is clamped with
// a warning. It returns the index actually selected.
func (s *Script) SelectMount(i int) (int, error) {
	cfg := s.ActiveConfig()
	if cfg == nil {
		return 0, ErrNoActiveConfig
	}
	cfg.CamIndex = i
	changed, err := resolver.ClampCamIndex(cfg)
	if err != nil {
		return 0, err
	}
	if changed {
		s.log.Warn("camera index out of range, clamped", "config", cfg.Name, "requested", i, "camIndex", cfg.CamIndex)
	}
	s.publishConfig()
	return cfg.CamIndex, nil
}
