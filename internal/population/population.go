// Package population owns the per-instance records for each visual category.
// Populations are built once per configuration change and their size never
// changes afterward; re-theming, a new photo list, or new geometry rebuilds
// them wholesale instead of patching records in place.
package population

import (
	"math/rand"

	"tree-scene/internal/config"
	"tree-scene/internal/placement"
	"tree-scene/internal/vec"
)

// Category is a visual element kind.
type Category int

const (
	Foliage Category = iota
	Ornament
	Light
)

// Instance is one managed visual element. ChaosPos and TargetPos are fixed at
// construction; Pos, Rot, Scale, and Brightness are the live fields the
// interpolator writes every frame. Pos is assigned directly exactly once, at
// construction — all later motion goes through interpolation so a mode switch
// never teleports an element.
type Instance struct {
	ChaosPos  vec.Vec3
	TargetPos vec.Vec3

	Pos   vec.Vec3 // live position
	Rot   vec.Vec3 // live rotation, Euler radians
	Scale float32  // live uniform scale

	ScaleBase     float32  // fixed per-instance size variation
	RotationSpeed vec.Vec3 // fixed, chaos-mode spin
	Phase         float32  // fixed sinusoid offset (wobble, blink)

	PaletteIdx int // foliage: index into the 3-color foliage palette
	TextureIdx int // ornaments: index into the photo list

	BlinkSpeed float32 // lights: sinusoid speed
	Brightness float32 // lights: live emissive level, 0 in chaos
}

// Population is a fixed-size ordered collection of instances of one category.
// Rate is the exponential-approach rate for position interpolation.
type Population struct {
	Category Category
	Items    []Instance
	Rate     float32
}

// Set bundles the three populations plus placement diagnostics. Warning is a
// non-fatal construction note (e.g. an unknown overlap policy that degraded
// to accept), for the status line and log.
type Set struct {
	Foliage   *Population
	Ornaments *Population
	Lights    *Population
	Report    placement.Report
	Warning   string
}

// Position approach rates per category; ornaments additionally lerp their
// world scale at ornamentScaleRate (see the animation package).
const (
	foliageRate  = 2.0
	ornamentRate = 2.0
	lightRate    = 2.5
)

// Build constructs all three populations from the configuration. The same
// seeded rng drives chaos scatter and target placement, so a fixed seed
// reproduces the full layout.
func Build(rng *rand.Rand, cfg config.Config) (*Set, error) {
	policy, perr := cfg.OverlapPolicy()
	set := &Set{}
	if perr != nil {
		policy = placement.OverlapAccept
		set.Warning = perr.Error()
	}
	var total placement.Report

	foliage, rep, ferr := buildFoliage(rng, cfg, policy)
	if ferr != nil {
		return nil, ferr
	}
	set.Foliage = foliage
	total.Attempts += rep.Attempts
	total.Overlaps += rep.Overlaps

	ornaments, rep := buildOrnaments(rng, cfg)
	set.Ornaments = ornaments
	total.Attempts += rep.Attempts
	total.Overlaps += rep.Overlaps

	lights, rep, lerr := buildLights(rng, cfg, policy)
	if lerr != nil {
		return nil, lerr
	}
	set.Lights = lights
	total.Attempts += rep.Attempts
	total.Overlaps += rep.Overlaps

	set.Report = total
	return set, nil
}

func buildFoliage(rng *rand.Rand, cfg config.Config, policy placement.OverlapPolicy) (*Population, placement.Report, error) {
	count := cfg.Counts.Foliage
	targets, rep, err := placement.Sample(rng, count, cfg.Cone(), cfg.MinDistance, policy)
	if err != nil {
		return nil, rep, err
	}
	scatter := placement.ScatterSphere(rng, count, cfg.ChaosRadius)

	items := make([]Instance, count)
	for i := range items {
		items[i] = Instance{
			ChaosPos:      scatter[i],
			TargetPos:     targets[i],
			Pos:           scatter[i],
			Scale:         1,
			ScaleBase:     0.7 + rng.Float32()*0.6,
			RotationSpeed: randSpin(rng, 1.0),
			Phase:         rng.Float32() * 6.2832,
			PaletteIdx:    rng.Intn(3),
		}
		items[i].Scale = items[i].ScaleBase
	}
	return &Population{Category: Foliage, Items: items, Rate: foliageRate}, rep, nil
}

func buildOrnaments(rng *rand.Rand, cfg config.Config) (*Population, placement.Report) {
	count := cfg.Counts.OrnamentCap
	if len(cfg.Photos) < count {
		count = len(cfg.Photos)
	}
	targets, rep := placement.SampleSurface(rng, count, cfg.Cone(),
		cfg.OrnamentSpacing, cfg.OrnamentOffset, placement.DefaultSurfaceExponent)
	scatter := placement.ScatterSphere(rng, count, cfg.ChaosRadius)

	items := make([]Instance, count)
	for i := range items {
		items[i] = Instance{
			ChaosPos:      scatter[i],
			TargetPos:     targets[i],
			Pos:           scatter[i],
			Scale:         4, // chaos world scale; formed lerps toward 2
			ScaleBase:     1,
			RotationSpeed: randSpin(rng, 1.5),
			Phase:         rng.Float32() * 6.2832,
			TextureIdx:    i,
		}
	}
	return &Population{Category: Ornament, Items: items, Rate: ornamentRate}, rep
}

func buildLights(rng *rand.Rand, cfg config.Config, policy placement.OverlapPolicy) (*Population, placement.Report, error) {
	count := cfg.Counts.Lights
	targets, rep, err := placement.Sample(rng, count, cfg.Cone(), cfg.LightSpacing, policy)
	if err != nil {
		return nil, rep, err
	}
	scatter := placement.ScatterCube(rng, count, cfg.ChaosRadius)

	items := make([]Instance, count)
	for i := range items {
		items[i] = Instance{
			ChaosPos:   scatter[i],
			TargetPos:  targets[i],
			Pos:        scatter[i],
			Scale:      0.25,
			ScaleBase:  0.25,
			BlinkSpeed: 1.5 + rng.Float32()*2.5,
			Phase:      rng.Float32() * 6.2832,
		}
	}
	return &Population{Category: Light, Items: items, Rate: lightRate}, rep, nil
}

// randSpin returns a per-axis rotation speed in [-max, max] rad/s.
func randSpin(rng *rand.Rand, max float32) vec.Vec3 {
	return vec.New(
		(rng.Float32()*2-1)*max,
		(rng.Float32()*2-1)*max,
		(rng.Float32()*2-1)*max,
	)
}
