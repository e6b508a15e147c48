package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer"
)

func TestNewCubeMesh(t *testing.T) {
	material := renderer.Material{
		Albedo:    mgl32.Vec3{1, 0, 0},
		Metallic:  0.5,
		Roughness: 0.25,
		AO:        1,
	}
	cube := NewCubeMesh("crate", 2.0, material)

	if cube.Name != "crate" {
		t.Errorf("name = %q, want crate", cube.Name)
	}
	if len(cube.Vertices) != 24 {
		t.Errorf("len(Vertices) = %d, want 24 (4 per face)", len(cube.Vertices))
	}
	if len(cube.Indices) != 36 {
		t.Errorf("len(Indices) = %d, want 36 (2 triangles per face)", len(cube.Indices))
	}
	if cube.Material != material {
		t.Errorf("material = %+v, want %+v", cube.Material, material)
	}

	for i, idx := range cube.Indices {
		if idx >= uint32(len(cube.Vertices)) {
			t.Fatalf("index %d refers to vertex %d, out of range", i, idx)
		}
	}

	for i, v := range cube.Vertices {
		if got := v.Normal.Len(); mgl32.Abs(got-1.0) > 1e-6 {
			t.Errorf("vertex %d: normal length %f, want 1", i, got)
		}
		// Per-face normals are axis-aligned.
		axisAligned := false
		for axis := 0; axis < 3; axis++ {
			if mgl32.Abs(v.Normal[axis]) == 1 {
				axisAligned = true
			}
		}
		if !axisAligned {
			t.Errorf("vertex %d: normal %v is not axis-aligned", i, v.Normal)
		}
	}
}

func TestMeshDataBounds(t *testing.T) {
	cube := NewCubeMesh("unit", 3.0, renderer.Material{})
	min, max := cube.Bounds()
	if min != (mgl32.Vec3{-1.5, -1.5, -1.5}) {
		t.Errorf("min = %v, want (-1.5, -1.5, -1.5)", min)
	}
	if max != (mgl32.Vec3{1.5, 1.5, 1.5}) {
		t.Errorf("max = %v, want (1.5, 1.5, 1.5)", max)
	}

	var empty MeshData
	min, max = empty.Bounds()
	if min != (mgl32.Vec3{}) || max != (mgl32.Vec3{}) {
		t.Errorf("empty mesh bounds = %v..%v, want zero", min, max)
	}
}
