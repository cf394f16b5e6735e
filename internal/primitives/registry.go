package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tree-scene/internal/vec"
)

// cached holds mesh and material for one element kind. Created lazily on
// first draw so GPU resources are allocated after the window/GL context
// exists.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps element kinds to mesh+material and holds the ornament photo
// textures. One registry serves the whole session; populations index into it.
type Registry struct {
	cache    map[string]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame

	photoPaths    []string
	textures      []rl.Texture2D
	texturesReady bool
}

// NewRegistry returns an empty registry. Meshes and textures are created on
// first use.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call
// once per frame before drawing so lit meshes get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// SetPhotos replaces the ornament photo list. GPU loading is deferred to the
// first ornament draw; a previous texture set is released first.
func (r *Registry) SetPhotos(paths []string) {
	r.unloadTextures()
	r.photoPaths = paths
	r.texturesReady = false
}

const (
	foliageRings  = 12
	foliageSlices = 12
	lightRings    = 6
	lightSlices   = 6
	// Ornament card: unit square, slightly thick so edges catch light.
	ornamentThickness = 0.06
)

func (r *Registry) ensureFoliage() {
	if _, ok := r.cache["foliage"]; ok {
		return
	}
	mesh := rl.GenMeshSphere(0.5, foliageRings, foliageSlices)
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.cache["foliage"] = cached{mesh: mesh, mtl: mtl}
}

func (r *Registry) ensureOrnament() {
	if _, ok := r.cache["ornament"]; ok {
		return
	}
	mesh := rl.GenMeshCube(1, 1, ornamentThickness)
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if shader := loadLitTexturedShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.cache["ornament"] = cached{mesh: mesh, mtl: mtl}
}

// ensureLight uses the default material with no lighting shader: fairy
// lights are emissive, their color is the brightness-scaled tint itself.
func (r *Registry) ensureLight() {
	if _, ok := r.cache["light"]; ok {
		return
	}
	mesh := rl.GenMeshSphere(0.5, lightRings, lightSlices)
	mtl := rl.LoadMaterialDefault()
	r.cache["light"] = cached{mesh: mesh, mtl: mtl}
}

// ensureTextures loads the photo textures once a GL context exists. Files
// that fail to load keep a zero texture; those ornaments draw untextured
// rather than failing construction.
func (r *Registry) ensureTextures() {
	if r.texturesReady {
		return
	}
	r.textures = make([]rl.Texture2D, len(r.photoPaths))
	for i, path := range r.photoPaths {
		r.textures[i] = rl.LoadTexture(path)
	}
	r.texturesReady = true
}

func (r *Registry) unloadTextures() {
	for _, tex := range r.textures {
		if rl.IsTextureValid(tex) {
			rl.UnloadTexture(tex)
		}
	}
	r.textures = nil
}

// DrawFoliage draws one foliage sphere. Must be called between BeginMode3D
// and EndMode3D, after SetView.
func (r *Registry) DrawFoliage(pos, rot vec.Vec3, scale float32, tint rl.Color) {
	r.ensureFoliage()
	c := r.cache["foliage"]
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, composeTransform(pos, rot, scale))
}

// DrawOrnament draws one photo card with the texture at texIdx. fallback
// tints the card when the index is out of range or the file failed to load;
// textured cards stay white so the photo is not recolored.
func (r *Registry) DrawOrnament(pos, rot vec.Vec3, scale float32, texIdx int, fallback rl.Color) {
	r.ensureOrnament()
	r.ensureTextures()
	c := r.cache["ornament"]
	tint := fallback
	if texIdx >= 0 && texIdx < len(r.textures) && rl.IsTextureValid(r.textures[texIdx]) {
		rl.SetMaterialTexture(&c.mtl, rl.MapAlbedo, r.textures[texIdx])
		tint = rl.White
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, composeTransform(pos, rot, scale))
}

// DrawLight draws one emissive fairy light. color carries the brightness
// (pre-scaled by the palette); no lighting is applied.
func (r *Registry) DrawLight(pos vec.Vec3, scale float32, color rl.Color) {
	r.ensureLight()
	c := r.cache["light"]
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	rl.DrawMesh(c.mesh, c.mtl, composeTransform(pos, vec.Vec3{}, scale))
}

// composeTransform builds the model matrix from the instance's explicit
// position/rotation/scale fields. The transform exists only here, at
// submission time; live state never round-trips through a matrix.
func composeTransform(pos, rot vec.Vec3, scale float32) rl.Matrix {
	m := rl.MatrixScale(scale, scale, scale)
	if rot.X != 0 || rot.Y != 0 || rot.Z != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateXYZ(rl.NewVector3(rot.X, rot.Y, rot.Z)))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
}

// Unload releases GPU resources at teardown.
func (r *Registry) Unload() {
	r.unloadTextures()
	for key, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, key)
	}
}
