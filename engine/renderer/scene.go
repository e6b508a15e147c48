package renderer

import "github.com/go-gl/mathgl/mgl32"

// Camera supplies the view transform and the projection for a given
// viewport. Implementations live outside the pipeline; see
// renderer/components.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	Position() mgl32.Vec3
	ProjectionMatrix(width, height uint32) mgl32.Mat4
}

// DirectionalLight is the scene's single analytic sun.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
}

// Material is the PBR surface description set per draw in the shading pass.
type Material struct {
	Albedo    mgl32.Vec3
	Metallic  float32
	Roughness float32
	AO        float32
}

// MeshDraw is one indexed draw unit: a vertex-array handle plus its index
// count.
type MeshDraw struct {
	VAO        uint32
	IndexCount int32
}

// Model is a drawable render-list entry. The pipeline reads it; it never
// mutates or owns it.
type Model interface {
	ModelMatrix() mgl32.Mat4
	Material() Material
	Meshes() []MeshDraw
}

// Scene is the per-frame input to Render: a camera, an ordered render list
// and the sun parameters. All borrowed references.
type Scene interface {
	Camera() Camera
	RenderList() []Model
	Sun() DirectionalLight
}

// Environment is the image-based-lighting collaborator: a precomputed
// irradiance cube map for ambient shading, and the skybox draw itself.
type Environment interface {
	IrradianceMap() uint32
	DrawSkybox()
}
