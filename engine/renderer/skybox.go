package renderer

import (
	"github.com/go-gl/gl/v4.3-core/gl"
)

// cubeVertices is a unit cube expressed as 36 positions, wound for rendering
// from the inside.
var cubeVertices = [...]float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
	-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
	1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
	-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
	-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
	-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// Skybox renders a precomputed environment cube map and hands its irradiance
// map to the shading pass. The cube map and irradiance map are produced by
// an offline/startup IBL precompute step and are owned by the caller.
type Skybox struct {
	vao         uint32
	vbo         uint32
	cubemap     uint32
	irradiance  uint32
	shader      *ShaderProgram
	ownTextures bool
}

// NewSkybox wraps already-created cube map handles. The shader is expected
// to read the shared view/projection uniform block at binding 0.
func NewSkybox(cubemap, irradiance uint32, shader *ShaderProgram) *Skybox {
	sb := &Skybox{
		cubemap:    cubemap,
		irradiance: irradiance,
		shader:     shader,
	}
	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(&cubeVertices[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return sb
}

// NewSolidSkybox builds a 1x1 single-color environment, useful when no HDRI
// has been precomputed. The skybox owns the generated textures.
func NewSolidSkybox(r, g, b float32, shader *ShaderProgram) *Skybox {
	cubemap := solidCubemap(r, g, b)
	irradiance := solidCubemap(r*0.5, g*0.5, b*0.5)
	sb := NewSkybox(cubemap, irradiance, shader)
	sb.ownTextures = true
	return sb
}

func solidCubemap(r, g, b float32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	texel := [4]float32{r, g, b, 1}
	for face := 0; face < 6; face++ {
		gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face), 0, gl.RGBA16F, 1, 1, 0, gl.RGBA, gl.FLOAT, gl.Ptr(&texel[0]))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return tex
}

func (sb *Skybox) IrradianceMap() uint32 {
	return sb.irradiance
}

// DrawSkybox renders the cube after the opaque geometry; the LEQUAL depth
// test lets it fill only the background.
func (sb *Skybox) DrawSkybox() {
	sb.shader.Bind()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sb.cubemap)
	sb.shader.SetUniformI("environmentMap", 0)

	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

func (sb *Skybox) Destroy() {
	if sb.ownTextures {
		if sb.cubemap != 0 {
			gl.DeleteTextures(1, &sb.cubemap)
			sb.cubemap = 0
		}
		if sb.irradiance != 0 {
			gl.DeleteTextures(1, &sb.irradiance)
			sb.irradiance = 0
		}
	}
	if sb.vbo != 0 {
		gl.DeleteBuffers(1, &sb.vbo)
		sb.vbo = 0
	}
	if sb.vao != 0 {
		gl.DeleteVertexArrays(1, &sb.vao)
		sb.vao = 0
	}
}
