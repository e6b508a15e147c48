// Package model imports external 3D assets into the mesh/material
// representation the render list consumes.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer"
)

// Vertex holds the attributes the pipeline's vertex stages expect, in
// attribute-location order: position, normal, texture coordinates.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// MeshData is CPU-side indexed geometry plus its surface description.
// Produced by loaders or generators, consumed by Model.Upload.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material renderer.Material
}

// Bounds returns the axis-aligned bounding box of the geometry.
func (m *MeshData) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	min := m.Vertices[0].Position
	max := m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}

// NewCubeMesh generates a unit-ish cube centered on the origin with
// per-face normals, scaled by size.
func NewCubeMesh(name string, size float32, material renderer.Material) *MeshData {
	h := size * 0.5
	faces := [6]struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	mesh := &MeshData{Name: name, Material: material}
	for _, face := range faces {
		base := uint32(len(mesh.Vertices))
		for i, corner := range face.corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: corner,
				Normal:   face.normal,
				UV:       uvs[i],
			})
		}
		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return mesh
}
