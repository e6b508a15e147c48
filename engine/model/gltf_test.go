package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

func TestPrimitiveMaterialDefaults(t *testing.T) {
	doc := &gltf.Document{}
	material := primitiveMaterial(doc, &gltf.Primitive{})

	if material.Albedo != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("albedo = %v, want white", material.Albedo)
	}
	if material.Metallic != 0 || material.Roughness != 1 || material.AO != 1 {
		t.Errorf("defaults = %+v, want metallic 0, roughness 1, ao 1", material)
	}
}

func TestPrimitiveMaterialFactors(t *testing.T) {
	metallic := float64(0.25)
	roughness := float64(0.4)
	doc := &gltf.Document{
		Materials: []*gltf.Material{
			{
				PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
					BaseColorFactor: &[4]float64{0.8, 0.2, 0.1, 1.0},
					MetallicFactor:  &metallic,
					RoughnessFactor: &roughness,
				},
			},
		},
	}
	matIdx := 0
	material := primitiveMaterial(doc, &gltf.Primitive{Material: &matIdx})

	if material.Albedo != (mgl32.Vec3{0.8, 0.2, 0.1}) {
		t.Errorf("albedo = %v, want (0.8, 0.2, 0.1)", material.Albedo)
	}
	if material.Metallic != 0.25 {
		t.Errorf("metallic = %f, want 0.25", material.Metallic)
	}
	if material.Roughness != 0.4 {
		t.Errorf("roughness = %f, want 0.4", material.Roughness)
	}
}

func TestCalculateNormals(t *testing.T) {
	// One counter-clockwise triangle in the XY plane; the face normal
	// points along +Z.
	mesh := &MeshData{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
	calculateNormals(mesh)

	want := mgl32.Vec3{0, 0, 1}
	for i, v := range mesh.Vertices {
		if !v.Normal.ApproxEqualThreshold(want, 1e-6) {
			t.Errorf("vertex %d: normal = %v, want %v", i, v.Normal, want)
		}
	}
}

func TestCalculateNormalsDegenerate(t *testing.T) {
	// Collapsed triangle: no direction to normalize, normals stay zero
	// instead of going NaN.
	p := mgl32.Vec3{1, 1, 1}
	mesh := &MeshData{
		Vertices: []Vertex{{Position: p}, {Position: p}, {Position: p}},
		Indices:  []uint32{0, 1, 2},
	}
	calculateNormals(mesh)

	for i, v := range mesh.Vertices {
		if v.Normal != (mgl32.Vec3{}) {
			t.Errorf("vertex %d: normal = %v, want zero", i, v.Normal)
		}
	}
}

func TestLoadGLTFMissingFile(t *testing.T) {
	if _, err := LoadGLTF("does-not-exist.glb"); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
