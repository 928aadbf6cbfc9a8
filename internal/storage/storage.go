// Package storage persists vehicle configs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/util"
)

// ErrNotFound is returned when a named config does not exist.
var ErrNotFound = errors.New("storage: config not found")

// Store is the interface every config backend satisfies. LoadAll returns
// configs as stored; Load applies the ordering and repair rules on top.
type Store interface {
	LoadAll(ctx context.Context) ([]model.VehicleConfig, error)
	Save(ctx context.Context, cfg model.VehicleConfig) error
	SaveAll(ctx context.Context, configs []model.VehicleConfig) error
	Delete(ctx context.Context, name string) error
	Close() error
}

// ModelNames resolves model hashes to display names.
type ModelNames interface {
	Get(hash uint32) (string, bool)
}

// Load reads every config and normalizes the list: Default first (created
// and persisted when missing), identity fields completed, mounts ordered.
func Load(ctx context.Context, s Store, names ModelNames, log *slog.Logger) ([]model.VehicleConfig, error) {
	if log == nil {
		log = slog.Default()
	}
	configs, err := s.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: load configs: %w", err)
	}

	out := make([]model.VehicleConfig, 0, len(configs)+1)
	defaultIdx := -1
	for _, c := range configs {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		c = normalize(c, names, log)
		if strings.EqualFold(c.Name, model.DefaultConfigName) && defaultIdx < 0 {
			c.Name = model.DefaultConfigName
			defaultIdx = len(out)
		}
		out = append(out, c)
	}

	switch {
	case defaultIdx < 0:
		log.Warn("no default config found, generating one")
		def := model.DefaultVehicleConfig()
		if err := s.Save(ctx, def); err != nil {
			return nil, fmt.Errorf("storage: save default config: %w", err)
		}
		out = append([]model.VehicleConfig{def}, out...)
	case defaultIdx > 0:
		def := out[defaultIdx]
		copy(out[1:defaultIdx+1], out[:defaultIdx])
		out[0] = def
	}

	log.Info("configs loaded", "count", len(out))
	return out, nil
}

// normalize fills the identity fields and repairs the mount list.
func normalize(c model.VehicleConfig, names ModelNames, log *slog.Logger) model.VehicleConfig {
	switch {
	case c.ModelHash == 0 && c.ModelName != "":
		c.ModelHash = util.Joaat(c.ModelName)
	case c.ModelHash != 0 && c.ModelName == "" && names != nil:
		c.ModelName, _ = names.Get(c.ModelHash)
	}
	c.Plate = util.NormalizePlate(c.Plate)

	if len(c.Mounts) == 0 {
		log.Warn("config has no mounts, creating default", "config", c.Name)
		c.Mounts = []model.CameraProfile{model.DefaultCameraProfile("Default", 0)}
	}
	sort.SliceStable(c.Mounts, func(i, j int) bool { return c.Mounts[i].Order < c.Mounts[j].Order })
	c.Renumber()
	return c
}

// ForSave strips the identity fields the config's save type does not keep.
// Default never carries a vehicle identity.
func ForSave(c model.VehicleConfig) model.VehicleConfig {
	out := c.Clone()
	if strings.EqualFold(c.Name, model.DefaultConfigName) {
		out.ModelHash, out.ModelName, out.Plate = 0, "", ""
		return out
	}
	if model.SaveTypeOf(c) == model.SaveGenericModel {
		out.Plate = ""
	}
	out.Renumber()
	return out
}
