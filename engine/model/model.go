package model

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer"
)

// meshBuffers are the GL objects backing one uploaded MeshData.
type meshBuffers struct {
	vao uint32
	vbo uint32
	ebo uint32
}

// Model is geometry resident on the GPU together with a transform and a
// material, implementing the render-list entry contract. A model uses one
// material across its meshes; per-primitive materials become separate
// models.
type Model struct {
	name      string
	transform mgl32.Mat4
	material  renderer.Material
	draws     []renderer.MeshDraw
	buffers   []meshBuffers
}

// Upload creates GPU buffers for the given meshes. Must be called on the
// context thread. The first mesh's material becomes the model's material.
func Upload(name string, meshes []*MeshData) (*Model, error) {
	if len(meshes) == 0 {
		return nil, fmt.Errorf("model %q: no meshes", name)
	}
	m := &Model{
		name:      name,
		transform: mgl32.Ident4(),
		material:  meshes[0].Material,
	}
	for _, mesh := range meshes {
		if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
			continue
		}
		buf := uploadMesh(mesh)
		m.buffers = append(m.buffers, buf)
		m.draws = append(m.draws, renderer.MeshDraw{
			VAO:        buf.vao,
			IndexCount: int32(len(mesh.Indices)),
		})
	}
	if len(m.draws) == 0 {
		return nil, fmt.Errorf("model %q: no drawable geometry", name)
	}
	return m, nil
}

func uploadMesh(mesh *MeshData) meshBuffers {
	var buf meshBuffers
	gl.GenVertexArrays(1, &buf.vao)
	gl.GenBuffers(1, &buf.vbo)
	gl.GenBuffers(1, &buf.ebo)

	gl.BindVertexArray(buf.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(unsafe.Sizeof(Vertex{})), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(unsafe.Sizeof(Vertex{}))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(unsafe.Offsetof(Vertex{}.Normal)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, uintptr(unsafe.Offsetof(Vertex{}.UV)))

	gl.BindVertexArray(0)
	return buf
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) ModelMatrix() mgl32.Mat4 {
	return m.transform
}

func (m *Model) SetTransform(transform mgl32.Mat4) {
	m.transform = transform
}

func (m *Model) Material() renderer.Material {
	return m.material
}

func (m *Model) SetMaterial(material renderer.Material) {
	m.material = material
}

func (m *Model) Meshes() []renderer.MeshDraw {
	return m.draws
}

// Destroy releases the model's GL buffers.
func (m *Model) Destroy() {
	for i := range m.buffers {
		buf := &m.buffers[i]
		if buf.ebo != 0 {
			gl.DeleteBuffers(1, &buf.ebo)
		}
		if buf.vbo != 0 {
			gl.DeleteBuffers(1, &buf.vbo)
		}
		if buf.vao != 0 {
			gl.DeleteVertexArrays(1, &buf.vao)
		}
	}
	m.buffers = nil
	m.draws = nil
}
