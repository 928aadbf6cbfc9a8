package shake

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Reaction is how a surface excites the camera.
type Reaction struct {
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
}

// BaseRates are the noise phase rates at zero and full speed ratio.
type BaseRates struct {
	MinRateModSpd float32 `yaml:"minRateModSpd"`
	MaxRateModSpd float32 `yaml:"maxRateModSpd"`
	MinRateModTrn float32 `yaml:"minRateModTrn"`
	MaxRateModTrn float32 `yaml:"maxRateModTrn"`
}

// Envelope holds the ramps shared by both shake sources.
type Envelope struct {
	SpeedRatioMin float32 `yaml:"speedRatioMin"`
	SpeedRatioMax float32 `yaml:"speedRatioMax"`
	RPMMin        float32 `yaml:"rpmMin"`
	RPMMax        float32 `yaml:"rpmMax"`
}

// Table is the static material reaction data. It is read-only once loaded.
type Table struct {
	BaseRates BaseRates
	Envelope  Envelope
	Reactions map[uint16]Reaction
	// Unknown collects material names in the file that have no id.
	Unknown []string
}

type tableFile struct {
	BaseRates        BaseRates           `yaml:"baseRates"`
	Envelope         Envelope            `yaml:"envelope"`
	MaterialReaction map[string]Reaction `yaml:"materialReaction"`
}

func DefaultBaseRates() BaseRates {
	return BaseRates{
		MinRateModSpd: 1.0,
		MaxRateModSpd: 12.0,
		MinRateModTrn: 4.0,
		MaxRateModTrn: 24.0,
	}
}

func DefaultEnvelope() Envelope {
	return Envelope{
		SpeedRatioMin: 0.5,
		SpeedRatioMax: 1.0,
		RPMMin:        0.3,
		RPMMax:        0.9,
	}
}

// DefaultTable covers common road and off-road surfaces.
func DefaultTable() *Table {
	t := &Table{
		BaseRates: DefaultBaseRates(),
		Envelope:  DefaultEnvelope(),
		Reactions: map[uint16]Reaction{},
	}
	for name, r := range map[string]Reaction{
		"CONCRETE":       {0.2, 1.0},
		"TARMAC":         {0.1, 1.0},
		"TARMAC_POTHOLE": {0.8, 0.6},
		"RUMBLE_STRIPS":  {1.0, 2.0},
		"COBBLESTONE":    {0.9, 1.5},
		"GRAVEL_SMALL":   {0.7, 1.2},
		"GRAVEL_LARGE":   {1.0, 0.9},
		"DIRT_TRACK":     {0.6, 0.8},
		"MUD_HARD":       {0.5, 0.7},
		"SAND_COMPACT":   {0.4, 0.7},
		"GRASS":          {0.5, 0.9},
	} {
		id, _ := MaterialID(name)
		t.Reactions[id] = r
	}
	return t
}

// LoadTable reads a YAML reaction table. Missing sections keep their defaults.
func LoadTable(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("shake: load %s: %w", filename, err)
	}
	return ParseTable(data)
}

// ParseTable decodes YAML table data.
func ParseTable(data []byte) (*Table, error) {
	f := tableFile{
		BaseRates: DefaultBaseRates(),
		Envelope:  DefaultEnvelope(),
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("shake: unmarshal table: %w", err)
	}

	t := &Table{
		BaseRates: f.BaseRates,
		Envelope:  f.Envelope,
		Reactions: make(map[uint16]Reaction, len(f.MaterialReaction)),
	}
	for name, r := range f.MaterialReaction {
		id, ok := MaterialID(name)
		if !ok {
			t.Unknown = append(t.Unknown, name)
			continue
		}
		t.Reactions[id] = r
	}
	sort.Strings(t.Unknown)
	return t, nil
}

// Reaction returns the reaction for a material id. Unlisted materials do not
// shake and run at unit frequency.
func (t *Table) Reaction(id uint16) Reaction {
	if r, ok := t.Reactions[id]; ok {
		return r
	}
	return Reaction{Amplitude: 0, Frequency: 1}
}
