// Package config loads the scene configuration from config/tree.yaml. A
// missing or invalid file falls back to defaults, matching how engine
// preferences behave: the scene always starts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tree-scene/internal/placement"
)

// Path is the scene config file, relative to the process working directory.
const Path = "config/tree.yaml"

// Geometry reshapes the placement cone.
type Geometry struct {
	Height float32 `yaml:"height"`
	Radius float32 `yaml:"radius"`
}

// Counts sets population sizes. The ornament population is additionally
// capped by the number of configured photos.
type Counts struct {
	Foliage     int `yaml:"foliage"`
	OrnamentCap int `yaml:"ornament_cap"`
	Lights      int `yaml:"lights"`
}

// Theme names the palette and its six colors as hex strings.
type Theme struct {
	Name       string `yaml:"name"`
	FoliageA   string `yaml:"foliage_a"`
	FoliageB   string `yaml:"foliage_b"`
	FoliageC   string `yaml:"foliage_c"`
	Ornament   string `yaml:"ornament"`
	Light      string `yaml:"light"`
	Background string `yaml:"background"`
}

// Config is the full scene configuration.
type Config struct {
	Theme    Theme    `yaml:"theme"`
	Geometry Geometry `yaml:"geometry"`
	Counts   Counts   `yaml:"counts"`

	// MinDistance is the pairwise spacing target for foliage placement;
	// OrnamentSpacing and LightSpacing are the per-category equivalents.
	MinDistance     float32 `yaml:"min_distance"`
	OrnamentSpacing float32 `yaml:"ornament_spacing"`
	LightSpacing    float32 `yaml:"light_spacing"`

	// OrnamentOffset pushes photo ornaments outward from the cone surface so
	// foliage does not occlude them.
	OrnamentOffset float32 `yaml:"ornament_offset"`

	// ChaosRadius bounds the scattered arrangement (sphere for foliage and
	// ornaments, cube half-extent for lights).
	ChaosRadius float32 `yaml:"chaos_radius"`

	// Photos are texture file paths; the ornament population size is
	// min(OrnamentCap, len(Photos)).
	Photos []string `yaml:"photos"`

	// GestureReplay, when set, is a YAML script of recognizer samples played
	// in place of a live hand tracker.
	GestureReplay string `yaml:"gesture_replay"`

	// Seed drives all placement randomness. 0 means time-based (layouts not
	// reproducible across runs).
	Seed int64 `yaml:"seed"`

	// Overlap selects the rejection-sampling fallback: accept, relax, fail.
	Overlap string `yaml:"overlap"`
}

// Default returns the reference configuration: a 28x12 cone with 500 foliage
// spheres, up to 12 photo ornaments, and 100 fairy lights.
func Default() Config {
	return Config{
		Theme: Theme{
			Name:       "classic",
			FoliageA:   "#0f5132",
			FoliageB:   "#146c43",
			FoliageC:   "#1a7f4f",
			Ornament:   "#d4a373",
			Light:      "#ffd166",
			Background: "#0b1120",
		},
		Geometry:        Geometry{Height: 28, Radius: 12},
		Counts:          Counts{Foliage: 500, OrnamentCap: 12, Lights: 100},
		MinDistance:     2.0,
		OrnamentSpacing: 3.0,
		LightSpacing:    2.2,
		OrnamentOffset:  0.5,
		ChaosRadius:     40,
		Seed:            0,
		Overlap:         "accept",
	}
}

// Load reads the scene config from Path. Missing or invalid files return
// Default(); partial files keep defaults for absent or non-positive values.
func Load() Config {
	return loadFrom(Path)
}

func loadFrom(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg.sanitized()
}

// sanitized clamps nonsensical values back to defaults, the same way mapgen
// options were clamped in place of erroring.
func (c Config) sanitized() Config {
	def := Default()
	if c.Geometry.Height <= 0 {
		c.Geometry.Height = def.Geometry.Height
	}
	if c.Geometry.Radius <= 0 {
		c.Geometry.Radius = def.Geometry.Radius
	}
	if c.Counts.Foliage <= 0 {
		c.Counts.Foliage = def.Counts.Foliage
	}
	if c.Counts.OrnamentCap < 0 {
		c.Counts.OrnamentCap = def.Counts.OrnamentCap
	}
	if c.Counts.Lights <= 0 {
		c.Counts.Lights = def.Counts.Lights
	}
	if c.MinDistance <= 0 {
		c.MinDistance = def.MinDistance
	}
	if c.OrnamentSpacing <= 0 {
		c.OrnamentSpacing = def.OrnamentSpacing
	}
	if c.LightSpacing <= 0 {
		c.LightSpacing = def.LightSpacing
	}
	if c.OrnamentOffset < 0 {
		c.OrnamentOffset = def.OrnamentOffset
	}
	if c.ChaosRadius <= 0 {
		c.ChaosRadius = def.ChaosRadius
	}
	return c
}

// Cone returns the placement cone for the configured geometry.
func (c Config) Cone() placement.Cone {
	return placement.Cone{Height: c.Geometry.Height, Radius: c.Geometry.Radius}
}

// OverlapPolicy maps the configured overlap string to a placement policy.
// Unknown values return an error and callers fall back to accept.
func (c Config) OverlapPolicy() (placement.OverlapPolicy, error) {
	switch c.Overlap {
	case "", "accept":
		return placement.OverlapAccept, nil
	case "relax":
		return placement.OverlapRelax, nil
	case "fail":
		return placement.OverlapFail, nil
	}
	return placement.OverlapAccept, fmt.Errorf("config: unknown overlap policy %q", c.Overlap)
}
