package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels lists the structs that map to tables.
var DatabaseModels = []any{
	&VehicleConfigRecord{},
	&SessionStats{},
}

// VehicleConfigRecord is the persisted row for a VehicleConfig.
// Mounts are kept as a JSON document since their shape follows the Go struct.
type VehicleConfigRecord struct {
	gorm.Model
	Name      string `gorm:"size:128;uniqueIndex"`
	Position  int    `gorm:"index"`
	ModelHash uint32 `gorm:"index"`
	ModelName string `gorm:"size:64"`
	Plate     string `gorm:"size:16"`
	Enable    bool
	CamIndex  int
	Look      datatypes.JSONType[Look]
	Mounts    datatypes.JSONSlice[CameraProfile]
}

func (*VehicleConfigRecord) TableName() string {
	return "vehicle_configs"
}

// ToRecord converts a config into its row form. Position is the list index.
func ToRecord(c VehicleConfig, position int) VehicleConfigRecord {
	return VehicleConfigRecord{
		Name:      c.Name,
		Position:  position,
		ModelHash: c.ModelHash,
		ModelName: c.ModelName,
		Plate:     c.Plate,
		Enable:    c.Enable,
		CamIndex:  c.CamIndex,
		Look:      datatypes.NewJSONType(c.Look),
		Mounts:    datatypes.NewJSONSlice(c.Mounts),
	}
}

// ToConfig converts a row back into a config.
func (r VehicleConfigRecord) ToConfig() VehicleConfig {
	return VehicleConfig{
		Name:      r.Name,
		ModelHash: r.ModelHash,
		ModelName: r.ModelName,
		Plate:     r.Plate,
		Enable:    r.Enable,
		CamIndex:  r.CamIndex,
		Look:      r.Look.Data(),
		Mounts:    append([]CameraProfile(nil), r.Mounts...),
	}
}

// SessionStats is a periodic snapshot of the camera runtime written by the status monitor.
type SessionStats struct {
	ID            uint      `gorm:"primarykey"`
	Time          time.Time `gorm:"index"`
	SessionStart  time.Time
	Frames        int64
	ActiveFrames  int64
	Activations   int64
	Cancels       int64
	ActiveConfig  string `gorm:"size:128"`
	ActiveMount   string `gorm:"size:128"`
	VehicleModel  string `gorm:"size:64"`
	CameraActive  bool
	// LastTickAgeMs is how long ago the host last ticked the script.
	LastTickAgeMs float32
}

func (*SessionStats) TableName() string {
	return "session_stats"
}
