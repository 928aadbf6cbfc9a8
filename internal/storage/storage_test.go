package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/dynfpv/extension/internal/model"
	"github.com/dynfpv/extension/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	configs []model.VehicleConfig
	saved   []string
	loadErr error
}

func (m *memStore) LoadAll(context.Context) ([]model.VehicleConfig, error) {
	return m.configs, m.loadErr
}

func (m *memStore) Save(_ context.Context, c model.VehicleConfig) error {
	m.saved = append(m.saved, c.Name)
	return nil
}

func (m *memStore) SaveAll(ctx context.Context, cs []model.VehicleConfig) error {
	for _, c := range cs {
		_ = m.Save(ctx, c)
	}
	return nil
}

func (m *memStore) Delete(context.Context, string) error { return nil }
func (m *memStore) Close() error                         { return nil }

type names map[uint32]string

func (n names) Get(h uint32) (string, bool) {
	s, ok := n[h]
	return s, ok
}

func named(name string) model.VehicleConfig {
	c := model.DefaultVehicleConfig()
	c.Name = name
	return c
}

func configNames(cs []model.VehicleConfig) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestLoad_SynthesizesDefault(t *testing.T) {
	s := &memStore{configs: []model.VehicleConfig{named("Adder")}}

	got, err := Load(context.Background(), s, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "Adder"}, configNames(got))
	assert.Equal(t, []string{"Default"}, s.saved, "generated default is persisted")
}

func TestLoad_MovesDefaultFirst(t *testing.T) {
	s := &memStore{configs: []model.VehicleConfig{named("Adder"), named("Banshee"), named("default"), named("Zentorno")}}

	got, err := Load(context.Background(), s, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "Adder", "Banshee", "Zentorno"}, configNames(got))
	assert.Empty(t, s.saved)
}

func TestLoad_SkipsNamelessConfigs(t *testing.T) {
	s := &memStore{configs: []model.VehicleConfig{named("Default"), named("  ")}}

	got, err := Load(context.Background(), s, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default"}, configNames(got))
}

func TestLoad_Error(t *testing.T) {
	s := &memStore{loadErr: errors.New("disk gone")}
	_, err := Load(context.Background(), s, nil, nil)
	assert.ErrorContains(t, err, "disk gone")
}

func TestNormalize(t *testing.T) {
	byName := named("Adder")
	byName.ModelName = "adder"

	byHash := named("Hashed")
	byHash.ModelHash = 0xB779A091

	noMounts := named("Empty")
	noMounts.Mounts = nil

	shuffled := named("Shuffled")
	shuffled.Mounts = []model.CameraProfile{
		model.DefaultCameraProfile("B", 5),
		model.DefaultCameraProfile("A", 2),
	}

	lower := named("Plate")
	lower.ModelHash = 1
	lower.Plate = " 46eek572 "

	s := &memStore{configs: []model.VehicleConfig{named("Default"), byName, byHash, noMounts, shuffled, lower}}
	got, err := Load(context.Background(), s, names{0xB779A091: "adder"}, nil)
	require.NoError(t, err)

	assert.Equal(t, util.Joaat("adder"), got[1].ModelHash)
	assert.Equal(t, "adder", got[2].ModelName)
	require.Len(t, got[3].Mounts, 1)
	assert.Equal(t, "Default", got[3].Mounts[0].Name)

	require.Len(t, got[4].Mounts, 2)
	assert.Equal(t, "A", got[4].Mounts[0].Name)
	assert.Equal(t, 0, got[4].Mounts[0].Order)
	assert.Equal(t, 1, got[4].Mounts[1].Order)

	assert.Equal(t, util.NormalizePlate(" 46eek572 "), got[5].Plate)
}

func TestForSave(t *testing.T) {
	def := named("Default")
	def.ModelHash, def.ModelName, def.Plate = 1, "adder", "X"
	stripped := ForSave(def)
	assert.Zero(t, stripped.ModelHash)
	assert.Empty(t, stripped.ModelName)
	assert.Empty(t, stripped.Plate)

	specific := named("Mine")
	specific.ModelHash, specific.Plate = 1, "46EEK572"
	assert.Equal(t, "46EEK572", ForSave(specific).Plate)

	specific.Mounts[0].Order = 7
	assert.Equal(t, 0, ForSave(specific).Mounts[0].Order)
	assert.Equal(t, 7, specific.Mounts[0].Order, "input is not modified")
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(TypeYAML, t.TempDir(), nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, s)

	_, err = NewStore(TypeSQLite, "", nil, nil)
	assert.Error(t, err)

	_, err = NewStore("redis", "", nil, nil)
	assert.ErrorContains(t, err, "unknown storage type")
}
