package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"VehicleConfigRecord", &VehicleConfigRecord{}, "vehicle_configs"},
		{"SessionStats", &SessionStats{}, "session_stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestActiveMount(t *testing.T) {
	cfg := DefaultVehicleConfig()
	cfg.Mounts = append(cfg.Mounts, DefaultCameraProfile("Hood", 1))

	cfg.CamIndex = 1
	require.NotNil(t, cfg.ActiveMount())
	assert.Equal(t, "Hood", cfg.ActiveMount().Name)

	cfg.CamIndex = 2
	assert.Nil(t, cfg.ActiveMount())

	cfg.CamIndex = -1
	assert.Nil(t, cfg.ActiveMount())

	var nilCfg *VehicleConfig
	assert.Nil(t, nilCfg.ActiveMount())
}

func TestClone_DoesNotShareMounts(t *testing.T) {
	cfg := DefaultVehicleConfig()
	clone := cfg.Clone()
	clone.Mounts[0].FOV = 90

	assert.Equal(t, float32(55), cfg.Mounts[0].FOV)
}

func TestRenumber(t *testing.T) {
	cfg := VehicleConfig{Mounts: []CameraProfile{
		DefaultCameraProfile("a", 4),
		DefaultCameraProfile("b", 9),
		DefaultCameraProfile("c", 0),
	}}
	cfg.Renumber()
	for i, m := range cfg.Mounts {
		assert.Equal(t, i, m.Order)
	}
}

func TestSaveTypeOf(t *testing.T) {
	tests := []struct {
		name string
		cfg  VehicleConfig
		want SaveType
	}{
		{"no identity", VehicleConfig{}, SaveGenericNone},
		{"model hash only", VehicleConfig{ModelHash: 0xB779A091}, SaveGenericModel},
		{"model name only", VehicleConfig{ModelName: "adder"}, SaveGenericModel},
		{"model and plate", VehicleConfig{ModelHash: 0xB779A091, Plate: "46EEK572"}, SaveSpecific},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SaveTypeOf(tt.cfg))
		})
	}
}

func TestSaveTypeString(t *testing.T) {
	assert.Equal(t, "specific", SaveSpecific.String())
	assert.Equal(t, "model", SaveGenericModel.String())
	assert.Equal(t, "none", SaveGenericNone.String())
	assert.Equal(t, "unknown", SaveType(9).String())
}

func TestRecordRoundTrip(t *testing.T) {
	cfg := DefaultVehicleConfig()
	cfg.Plate = "FPV 01"
	cfg.ModelHash = 0x1234
	cfg.CamIndex = 0

	rec := ToRecord(cfg, 3)
	assert.Equal(t, 3, rec.Position)

	back := rec.ToConfig()
	assert.Equal(t, cfg, back)
}

func TestDefaultVehicleConfig(t *testing.T) {
	cfg := DefaultVehicleConfig()
	assert.Equal(t, DefaultConfigName, cfg.Name)
	assert.True(t, cfg.Enable)
	require.Len(t, cfg.Mounts, 1)
	assert.Equal(t, MountVehicle, cfg.Mounts[0].MountPoint)
	assert.Equal(t, 750, cfg.Look.MouseCenterTimeout)
}
