package scene

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tree-scene/internal/animation"
	"tree-scene/internal/config"
	"tree-scene/internal/logger"
	"tree-scene/internal/orbit"
	"tree-scene/internal/population"
	"tree-scene/internal/primitives"
	"tree-scene/internal/state"
	"tree-scene/internal/theme"
	"tree-scene/internal/vec"
)

// Scene owns the populations, the camera, and the draw submission. Update
// runs the interpolator and orbit controller each frame; Draw renders between
// BeginMode3D and EndMode3D. The shared state cells are read at exactly one
// point per frame (Update), never from Draw.
type Scene struct {
	Camera rl.Camera3D

	shared *state.Shared
	log    *logger.Logger
	orbit  *orbit.Controller
	interp *animation.Interpolator
	reg    *primitives.Registry

	cfg config.Config
	set *population.Set
	pal theme.Palette

	// CameraDistance is the orbit radius; GridVisible toggles the reference
	// grid under the tree.
	CameraDistance float32
	GridVisible    bool

	// mode as read this frame, reused by Draw without re-reading the cell.
	frameMode state.Mode
}

// New builds a scene from the configuration. The interpolator, orbit
// controller, and registry are long-lived; populations rebuild on
// Reconfigure.
func New(cfg config.Config, shared *state.Shared, log *logger.Logger) (*Scene, error) {
	s := &Scene{
		shared:         shared,
		log:            log,
		orbit:          orbit.New(),
		interp:         animation.New(),
		reg:            primitives.NewRegistry(),
		CameraDistance: cfg.Geometry.Height * 2,
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	if err := s.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure rebuilds populations and palette wholesale for a new theme,
// photo list, or geometry. Counts and fixed positions never mutate in place;
// this is the only reconfiguration path.
func (s *Scene) Reconfigure(cfg config.Config) error {
	pal, err := theme.Parse(cfg.Theme)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	set, err := population.Build(rand.New(rand.NewSource(seed)), cfg)
	if err != nil {
		return err
	}
	if set.Warning != "" {
		s.log.Log(set.Warning)
	}
	if set.Report.Overlaps > 0 {
		s.log.Log(fmt.Sprintf("placement: %d of %d points accepted with overlap",
			set.Report.Overlaps, s.instanceCountOf(set)))
	}

	s.cfg = cfg
	s.set = set
	s.pal = pal
	s.reg.SetPhotos(cfg.Photos)
	return nil
}

// Config returns the active configuration.
func (s *Scene) Config() config.Config {
	return s.cfg
}

// InstanceCount returns the total managed element count, for the HUD.
func (s *Scene) InstanceCount() int {
	return s.instanceCountOf(s.set)
}

func (s *Scene) instanceCountOf(set *population.Set) int {
	if set == nil {
		return 0
	}
	return len(set.Foliage.Items) + len(set.Ornaments.Items) + len(set.Lights.Items)
}

// Overlaps returns the placement overlap diagnostic for the current layout.
func (s *Scene) Overlaps() int {
	if s.set == nil {
		return 0
	}
	return s.set.Report.Overlaps
}

// Update runs once per frame: advance every instance toward the current
// mode's arrangement, then move the camera. All instance updates complete
// here, before Draw submits anything.
func (s *Scene) Update(dt float32) {
	s.frameMode = s.shared.Mode()
	s.interp.Step(s.set, dt, s.frameMode)

	sig := s.shared.Signal()
	s.orbit.Update(dt, sig, s.frameMode == state.Formed)
	eye := s.orbit.Position(vec.Vec3{}, s.CameraDistance)
	s.Camera.Position = rl.NewVector3(eye.X, eye.Y, eye.Z)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
}

// Background returns the themed clear color.
func (s *Scene) Background() rl.Color {
	return s.pal.Background
}

// Draw submits every instance's live transform. Call between ClearBackground
// and the 2D overlay.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	pos := s.Camera.Position
	s.reg.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.5, 1, 0.5})

	if s.GridVisible {
		drawReferenceGrid(s.cfg.Geometry.Radius, -s.cfg.Geometry.Height*0.5)
	}

	if s.set != nil {
		for i := range s.set.Foliage.Items {
			in := &s.set.Foliage.Items[i]
			s.reg.DrawFoliage(in.Pos, in.Rot, in.Scale, s.pal.Foliage[in.PaletteIdx%3])
		}
		for i := range s.set.Ornaments.Items {
			in := &s.set.Ornaments.Items[i]
			s.reg.DrawOrnament(in.Pos, in.Rot, in.Scale, in.TextureIdx, s.pal.Ornament)
		}
		for i := range s.set.Lights.Items {
			in := &s.set.Lights.Items[i]
			s.reg.DrawLight(in.Pos, in.Scale, s.pal.LightAtBrightness(in.Brightness))
		}
	}

	rl.EndMode3D()
}

// Unload releases GPU resources at teardown.
func (s *Scene) Unload() {
	s.reg.Unload()
}

const gridStep = 2

// drawReferenceGrid draws a simple XZ grid at the tree base, sized to the
// cone radius. Reuses start/end vectors to avoid per-frame allocations.
func drawReferenceGrid(radius, baseY float32) {
	extent := int32(radius)*2 + 2
	c := rl.NewColor(128, 128, 128, 60)
	var start, end rl.Vector3
	for x := -extent; x <= extent; x += gridStep {
		start.X, start.Y, start.Z = float32(x), baseY, float32(-extent)
		end.X, end.Y, end.Z = float32(x), baseY, float32(extent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -extent; z <= extent; z += gridStep {
		start.X, start.Y, start.Z = float32(-extent), baseY, float32(z)
		end.X, end.Y, end.Z = float32(extent), baseY, float32(z)
		rl.DrawLine3D(start, end, c)
	}
}
