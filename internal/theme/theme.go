// Package theme turns the configured hex palette into render colors. All
// palette-derived materials recolor by rebuilding the populations with a new
// Palette; nothing here is mutated after construction.
package theme

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"tree-scene/internal/config"
)

// Palette is the resolved six-color theme.
type Palette struct {
	Name       string
	Foliage    [3]rl.Color // per-instance palette index selects one of these
	Ornament   rl.Color
	Light      rl.Color
	Background rl.Color
}

// Parse resolves a config theme's hex colors. An unparsable color fails the
// whole theme so a typo cannot silently render half-themed.
func Parse(t config.Theme) (Palette, error) {
	p := Palette{Name: t.Name}
	fields := []struct {
		name string
		hex  string
		dst  *rl.Color
	}{
		{"foliage_a", t.FoliageA, &p.Foliage[0]},
		{"foliage_b", t.FoliageB, &p.Foliage[1]},
		{"foliage_c", t.FoliageC, &p.Foliage[2]},
		{"ornament", t.Ornament, &p.Ornament},
		{"light", t.Light, &p.Light},
		{"background", t.Background, &p.Background},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("theme %q: %s: %w", t.Name, f.name, err)
		}
		r, g, b := c.RGB255()
		*f.dst = rl.NewColor(r, g, b, 255)
	}
	return p, nil
}

// builtins are palettes selectable from the console without editing the
// config file.
var builtins = map[string]config.Theme{
	"classic": {
		Name:       "classic",
		FoliageA:   "#0f5132",
		FoliageB:   "#146c43",
		FoliageC:   "#1a7f4f",
		Ornament:   "#d4a373",
		Light:      "#ffd166",
		Background: "#0b1120",
	},
	"frost": {
		Name:       "frost",
		FoliageA:   "#2c7da0",
		FoliageB:   "#468faf",
		FoliageC:   "#61a5c2",
		Ornament:   "#e9ecef",
		Light:      "#caf0f8",
		Background: "#03045e",
	},
	"ember": {
		Name:       "ember",
		FoliageA:   "#6a040f",
		FoliageB:   "#9d0208",
		FoliageC:   "#d00000",
		Ornament:   "#ffba08",
		Light:      "#faa307",
		Background: "#161a1d",
	},
}

// Builtin returns the named built-in theme.
func Builtin(name string) (config.Theme, bool) {
	t, ok := builtins[name]
	return t, ok
}

// BuiltinNames returns the built-in theme names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LightAtBrightness scales the light color by brightness in [0,1], used as
// the emissive tint for fairy lights.
func (p Palette) LightAtBrightness(b float32) rl.Color {
	if b < 0 {
		b = 0
	}
	if b > 1 {
		b = 1
	}
	return rl.NewColor(
		uint8(float32(p.Light.R)*b),
		uint8(float32(p.Light.G)*b),
		uint8(float32(p.Light.B)*b),
		255,
	)
}
