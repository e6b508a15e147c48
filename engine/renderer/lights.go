package renderer

import (
	"fmt"
	"math"
	"math/rand"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxNumLights is the fixed capacity of the GPU light array. The culling
// shader and the visible-index buffer sizing both depend on it.
const MaxNumLights = 1024

// Spatial bounds the animated lights live in, per axis.
var (
	LightMinBounds = mgl32.Vec3{-135.0, -20.0, -60.0}
	LightMaxBounds = mgl32.Vec3{135.0, 170.0, 60.0}
)

const (
	lightRadius    = 30.0
	lightFallSpeed = 4.5
)

// PointLight mirrors the std430 layout of the light SSBO: three vec4 slots,
// with the radius carried in the last component of the third.
type PointLight struct {
	Position         mgl32.Vec4
	Color            mgl32.Vec4
	RadiusAndPadding mgl32.Vec4
}

// Radius returns the light's bounding-sphere radius.
func (l *PointLight) Radius() float32 {
	return l.RadiusAndPadding[3]
}

// randomLight draws a light from the caller-owned stream: position uniform
// inside the bounds per axis, over-bright color channels in [1, 2), fixed
// radius. Over-bright values are brought back into range by the tone-mapping
// pass.
func randomLight(rng *rand.Rand) PointLight {
	var position mgl32.Vec3
	for i := 0; i < 3; i++ {
		min := LightMinBounds[i]
		max := LightMaxBounds[i]
		position[i] = rng.Float32()*(max-min) + min
	}
	return PointLight{
		Position:         position.Vec4(1.0),
		Color:            mgl32.Vec4{1.0 + rng.Float32(), 1.0 + rng.Float32(), 1.0 + rng.Float32(), 1.0},
		RadiusAndPadding: mgl32.Vec4{0, 0, 0, lightRadius},
	}
}

// seedLights populates every slot of the mapped light array.
func seedLights(lights []PointLight, rng *rand.Rand) {
	for i := range lights {
		lights[i] = randomLight(rng)
	}
}

// animateLights lowers each light along the vertical axis and wraps it back
// into the bounds, producing an endless falling animation with no per-frame
// allocation.
func animateLights(lights []PointLight, deltaTime float64) {
	min := float64(LightMinBounds[1])
	max := float64(LightMaxBounds[1])
	for i := range lights {
		y := float64(lights[i].Position[1])
		y = math.Mod(y+(-lightFallSpeed*deltaTime)-min+max, max) + min
		lights[i].Position[1] = float32(y)
	}
}

// LightBuffer is the persistent GPU-resident array of point lights.
type LightBuffer struct {
	handle   uint32
	capacity int32
}

// NewLightBuffer allocates the SSBO and seeds it from rng. The stream is
// caller-owned so tests can inject a fixed seed.
func NewLightBuffer(capacity int32, rng *rand.Rand) (*LightBuffer, error) {
	var handle uint32
	gl.GenBuffers(1, &handle)
	if handle == 0 {
		return nil, fmt.Errorf("light buffer could not be created")
	}

	lb := &LightBuffer{handle: handle, capacity: capacity}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, handle)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, int(capacity)*int(unsafe.Sizeof(PointLight{})), nil, gl.DYNAMIC_DRAW)

	ptr := gl.MapBuffer(gl.SHADER_STORAGE_BUFFER, gl.READ_WRITE)
	if ptr == nil {
		lb.Destroy()
		return nil, fmt.Errorf("light buffer could not be mapped")
	}
	seedLights(unsafe.Slice((*PointLight)(ptr), capacity), rng)
	gl.UnmapBuffer(gl.SHADER_STORAGE_BUFFER)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)

	return lb, nil
}

// Update advances the falling animation by deltaTime seconds. Exactly one
// map/unmap cycle per call; must not run concurrently with a GPU pass that
// reads the buffer.
func (lb *LightBuffer) Update(deltaTime float64) {
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, lb.handle)
	ptr := gl.MapBuffer(gl.SHADER_STORAGE_BUFFER, gl.READ_WRITE)
	if ptr == nil {
		gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
		return
	}
	animateLights(unsafe.Slice((*PointLight)(ptr), lb.capacity), deltaTime)
	gl.UnmapBuffer(gl.SHADER_STORAGE_BUFFER)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

// BindBase binds the buffer to an SSBO binding point for the culling and
// shading passes.
func (lb *LightBuffer) BindBase(index uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, index, lb.handle)
}

func (lb *LightBuffer) Capacity() int32 {
	return lb.capacity
}

func (lb *LightBuffer) Destroy() {
	if lb.handle != 0 {
		gl.DeleteBuffers(1, &lb.handle)
		lb.handle = 0
	}
}

// VisibleIndexBuffer holds the per-tile visible-light index lists produced
// by the culling stage. Sized for the worst case of every light visible in
// every tile; entirely rewritten on the GPU each frame.
type VisibleIndexBuffer struct {
	handle   uint32
	numTiles uint32
}

func NewVisibleIndexBuffer(numTiles uint32) (*VisibleIndexBuffer, error) {
	var handle uint32
	gl.GenBuffers(1, &handle)
	if handle == 0 {
		return nil, fmt.Errorf("visible light index buffer could not be created")
	}
	vb := &VisibleIndexBuffer{handle: handle, numTiles: numTiles}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, handle)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, int(numTiles)*MaxNumLights*4, nil, gl.STATIC_DRAW)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return vb, nil
}

func (vb *VisibleIndexBuffer) BindBase(index uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, index, vb.handle)
}

func (vb *VisibleIndexBuffer) NumTiles() uint32 {
	return vb.numTiles
}

func (vb *VisibleIndexBuffer) Destroy() {
	if vb.handle != 0 {
		gl.DeleteBuffers(1, &vb.handle)
		vb.handle = 0
	}
}
