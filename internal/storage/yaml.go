package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dynfpv/extension/internal/model"
	"gopkg.in/yaml.v3"
)

// YAMLStore keeps one <name>.yaml file per config in a directory. The file
// name is the config name.
type YAMLStore struct {
	dir string
	log *slog.Logger
}

// NewYAMLStore creates the directory if needed.
func NewYAMLStore(dir string, log *slog.Logger) (*YAMLStore, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &YAMLStore{dir: dir, log: log}, nil
}

// Dir is the configs directory.
func (s *YAMLStore) Dir() string {
	return s.dir
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func (s *YAMLStore) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

// LoadConfig reads one config file. The name comes from the file stem.
func LoadConfig(filename string) (model.VehicleConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return model.VehicleConfig{}, fmt.Errorf("storage: load %s: %w", filename, err)
	}
	var cfg model.VehicleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.VehicleConfig{}, fmt.Errorf("storage: unmarshal %s: %w", filename, err)
	}
	base := filepath.Base(filename)
	cfg.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return cfg, nil
}

// LoadAll reads every config file in name order. Unreadable files are
// logged and skipped.
func (s *YAMLStore) LoadAll(ctx context.Context) ([]model.VehicleConfig, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isConfigFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]model.VehicleConfig, 0, len(names))
	for _, n := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cfg, err := LoadConfig(filepath.Join(s.dir, n))
		if err != nil {
			s.log.Warn("skipping config file", "file", n, "error", err)
			continue
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Save writes cfg to <name>.yaml through a temporary file.
func (s *YAMLStore) Save(_ context.Context, cfg model.VehicleConfig) error {
	if cfg.Name == "" || strings.ContainsAny(cfg.Name, `/\:*?"<>|`) {
		return fmt.Errorf("storage: invalid config name %q", cfg.Name)
	}
	data, err := yaml.Marshal(ForSave(cfg))
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", cfg.Name, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", cfg.Name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: save %s: %w", cfg.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: save %s: %w", cfg.Name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(cfg.Name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: save %s: %w", cfg.Name, err)
	}
	return nil
}

// SaveAll writes every config, continuing past failures.
func (s *YAMLStore) SaveAll(ctx context.Context, configs []model.VehicleConfig) error {
	var errs []error
	for _, c := range configs {
		if err := ctx.Err(); err != nil {
			return err
		}
		errs = append(errs, s.Save(ctx, c))
	}
	return errors.Join(errs...)
}

// Delete removes the config file.
func (s *YAMLStore) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}

// Close is a no-op.
func (s *YAMLStore) Close() error {
	return nil
}
