package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tree-scene/internal/placement"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidFileReturnsDefaults(t *testing.T) {
	path := writeConfig(t, "{not yaml: [")
	cfg := loadFrom(path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
geometry:
  height: 20
counts:
  foliage: 300
`)
	cfg := loadFrom(path)
	assert.Equal(t, float32(20), cfg.Geometry.Height)
	assert.Equal(t, Default().Geometry.Radius, cfg.Geometry.Radius)
	assert.Equal(t, 300, cfg.Counts.Foliage)
	assert.Equal(t, Default().Counts.Lights, cfg.Counts.Lights)
	assert.Equal(t, Default().Theme, cfg.Theme)
}

func TestLoadClampsNonsense(t *testing.T) {
	path := writeConfig(t, `
geometry:
  height: -5
  radius: 0
min_distance: -1
`)
	cfg := loadFrom(path)
	assert.Equal(t, Default().Geometry, cfg.Geometry)
	assert.Equal(t, Default().MinDistance, cfg.MinDistance)
}

func TestLoadPhotosAndSeed(t *testing.T) {
	path := writeConfig(t, `
seed: 42
photos:
  - photos/one.png
  - photos/two.png
`)
	cfg := loadFrom(path)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, []string{"photos/one.png", "photos/two.png"}, cfg.Photos)
}

func TestOverlapPolicy(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    placement.OverlapPolicy
		wantErr bool
	}{
		{"Empty defaults to accept", "", placement.OverlapAccept, false},
		{"Accept", "accept", placement.OverlapAccept, false},
		{"Relax", "relax", placement.OverlapRelax, false},
		{"Fail", "fail", placement.OverlapFail, false},
		{"Unknown errors and degrades", "explode", placement.OverlapAccept, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Overlap = tt.value
			got, err := cfg.OverlapPolicy()
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
