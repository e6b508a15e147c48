package renderer

import (
	"github.com/go-gl/gl/v4.3-core/gl"
)

// screenQuadVertices is the static full-screen triangle strip: position xyz
// followed by texture coordinates uv, per vertex.
var screenQuadVertices = [...]float32{
	-1.0, 1.0, 0.0, 0.0, 1.0,
	-1.0, -1.0, 0.0, 0.0, 0.0,
	1.0, 1.0, 0.0, 1.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 0.0,
}

// ScreenQuad is the static geometry of the post-process pass.
type ScreenQuad struct {
	vao uint32
	vbo uint32
}

func NewScreenQuad() *ScreenQuad {
	q := &ScreenQuad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)

	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(screenQuadVertices)*4, gl.Ptr(&screenQuadVertices[0]), gl.STATIC_DRAW)

	stride := int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.BindVertexArray(0)

	return q
}

func (q *ScreenQuad) Draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (q *ScreenQuad) Destroy() {
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
}
