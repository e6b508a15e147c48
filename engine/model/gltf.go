package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer"
)

// LoadGLTF reads a glTF/GLB document and extracts one MeshData per triangle
// primitive. Only embedded (GLB) buffers are supported.
func LoadGLTF(path string) ([]*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var meshes []*MeshData
	for _, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			mesh, err := loadPrimitive(doc, m, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, pi, err)
			}
			if mesh != nil {
				meshes = append(meshes, mesh)
			}
		}
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("%s: no triangle geometry found", path)
	}
	return meshes, nil
}

func loadPrimitive(doc *gltf.Document, m *gltf.Mesh, prim *gltf.Primitive) (*MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals []mgl32.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readVec3Accessor(doc, normIdx); err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs []mgl32.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readVec2Accessor(doc, uvIdx); err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
	}

	mesh := &MeshData{
		Name:     m.Name,
		Material: primitiveMaterial(doc, prim),
	}
	for i := range positions {
		v := Vertex{Position: positions[i]}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			// glTF uses a top-left UV origin; GL samples from bottom-left.
			v.UV = mgl32.Vec2{uvs[i].X(), 1.0 - uvs[i].Y()}
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if prim.Indices != nil {
		indices, err := readIndexAccessor(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		mesh.Indices = indices
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	if len(normals) == 0 {
		calculateNormals(mesh)
	}
	return mesh, nil
}

func primitiveMaterial(doc *gltf.Document, prim *gltf.Primitive) renderer.Material {
	material := renderer.Material{
		Albedo:    mgl32.Vec3{1, 1, 1},
		Metallic:  0,
		Roughness: 1,
		AO:        1,
	}
	if prim.Material == nil {
		return material
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return material
	}
	base := pbr.BaseColorFactorOrDefault()
	material.Albedo = mgl32.Vec3{float32(base[0]), float32(base[1]), float32(base[2])}
	material.Metallic = float32(pbr.MetallicFactorOrDefault())
	material.Roughness = float32(pbr.RoughnessFactorOrDefault())
	return material
}

// calculateNormals derives flat per-vertex normals from the triangle faces.
func calculateNormals(mesh *MeshData) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]].Position
		b := mesh.Vertices[mesh.Indices[i+1]].Position
		c := mesh.Vertices[mesh.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() > 0 {
			n = n.Normalize()
		}
		for j := 0; j < 3; j++ {
			mesh.Vertices[mesh.Indices[i+j]].Normal = n
		}
	}
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]mgl32.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}
	result := make([]mgl32.Vec3, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		for j := 0; j < 3; j++ {
			result[i][j] = readFloat32(data[offset+j*4:])
		}
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]mgl32.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	data, start, stride, err := accessorBytes(doc, accessor, 8)
	if err != nil {
		return nil, err
	}
	result := make([]mgl32.Vec2, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		for j := 0; j < 2; j++ {
			result[i][j] = readFloat32(data[offset+j*4:])
		}
	}
	return result, nil
}

func readIndexAccessor(doc *gltf.Document, accessorIdx int) ([]uint32, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}
	var componentSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		componentSize = 1
	case gltf.ComponentUshort:
		componentSize = 2
	case gltf.ComponentUint:
		componentSize = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}
	data, start, stride, err := accessorBytes(doc, accessor, componentSize)
	if err != nil {
		return nil, err
	}
	result := make([]uint32, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		switch componentSize {
		case 1:
			result[i] = uint32(data[offset])
		case 2:
			result[i] = uint32(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = binary.LittleEndian.Uint32(data[offset:])
		}
	}
	return result, nil
}

// accessorBytes resolves an accessor's backing bytes: the buffer slice, the
// starting offset and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.URI != "" && buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
