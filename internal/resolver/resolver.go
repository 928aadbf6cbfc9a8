// Package resolver picks the active vehicle config for the occupied vehicle.
package resolver

import (
	"errors"
	"fmt"

	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/util"
)

// ErrNoMounts marks a config that has no camera mounts and cannot drive a camera.
var ErrNoMounts = errors.New("config has no mounts")

// Tier reports which rule matched.
type Tier int

const (
	TierDefault Tier = iota
	TierModel
	TierModelPlate
)

func (t Tier) String() string {
	switch t {
	case TierModelPlate:
		return "model+plate"
	case TierModel:
		return "model"
	default:
		return "default"
	}
}

// Resolve returns the index of the config to use for the given vehicle.
// Model and plate beats model with an empty plate, which beats index 0.
func Resolve(modelHash uint32, plate string, configs []model.VehicleConfig) int {
	idx, _ := ResolveTier(modelHash, plate, configs)
	return idx
}

// ResolveTier is Resolve and also reports the matching tier.
func ResolveTier(modelHash uint32, plate string, configs []model.VehicleConfig) (int, Tier) {
	want := util.NormalizePlate(plate)

	for i := range configs {
		if configs[i].ModelHash != modelHash {
			continue
		}
		if p := util.NormalizePlate(configs[i].Plate); p != "" && p == want {
			return i, TierModelPlate
		}
	}

	for i := range configs {
		if configs[i].ModelHash == modelHash && util.NormalizePlate(configs[i].Plate) == "" {
			return i, TierModel
		}
	}

	return 0, TierDefault
}

// ClampCamIndex keeps CamIndex within the mount list. It returns true if it
// had to change the index. A config without mounts returns ErrNoMounts.
func ClampCamIndex(cfg *model.VehicleConfig) (bool, error) {
	n := len(cfg.Mounts)
	if n == 0 {
		return false, fmt.Errorf("%q: %w", cfg.Name, ErrNoMounts)
	}
	switch {
	case cfg.CamIndex >= n:
		cfg.CamIndex = n - 1
		return true, nil
	case cfg.CamIndex < 0:
		cfg.CamIndex = 0
		return true, nil
	}
	return false, nil
}
