package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/config"
)

// StageSource is one shader stage of a program: a GLSL source file plus its
// pipeline stage.
type StageSource struct {
	Path string
	Type uint32
}

// StageFromConfig maps a config stage identifier onto the GL shader type.
func StageFromConfig(s config.ShaderFile) (StageSource, error) {
	switch s.Stage {
	case config.StageVertex:
		return StageSource{Path: s.Path, Type: gl.VERTEX_SHADER}, nil
	case config.StageFragment:
		return StageSource{Path: s.Path, Type: gl.FRAGMENT_SHADER}, nil
	case config.StageCompute:
		return StageSource{Path: s.Path, Type: gl.COMPUTE_SHADER}, nil
	default:
		return StageSource{}, fmt.Errorf("unknown shader stage %q", s.Stage)
	}
}

// ShaderProgram owns one linked GL program. Immutable after linking; the only
// valid mutation is Delete.
type ShaderProgram struct {
	name      string
	handle    uint32
	locations map[string]int32
}

// CompileProgram reads, compiles and links every stage into a program.
// All intermediate shader objects are released on every exit path.
func CompileProgram(name string, stages []StageSource) (*ShaderProgram, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("program %q: no stages", name)
	}

	program := gl.CreateProgram()
	compiled := make([]uint32, 0, len(stages))
	defer func() {
		for _, sh := range compiled {
			gl.DetachShader(program, sh)
			gl.DeleteShader(sh)
		}
	}()

	for _, stage := range stages {
		src, err := os.ReadFile(stage.Path)
		if err != nil {
			gl.DeleteProgram(program)
			return nil, fmt.Errorf("program %q: %w", name, err)
		}
		sh, err := compileStage(string(src), stage.Type)
		if err != nil {
			gl.DeleteProgram(program)
			return nil, fmt.Errorf("program %q: stage %s: %w", name, stage.Path, err)
		}
		compiled = append(compiled, sh)
		gl.AttachShader(program, sh)
	}

	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		logText := programInfoLog(program)
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("program %q: link failed: %s", name, logText)
	}

	return &ShaderProgram{
		name:      name,
		handle:    program,
		locations: make(map[string]int32),
	}, nil
}

func compileStage(source string, stageType uint32) (uint32, error) {
	shader := gl.CreateShader(stageType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (p *ShaderProgram) Name() string {
	return p.name
}

func (p *ShaderProgram) Handle() uint32 {
	return p.handle
}

func (p *ShaderProgram) Bind() {
	gl.UseProgram(p.handle)
}

// Delete releases the GL program. The receiver must not be used afterwards.
func (p *ShaderProgram) Delete() {
	if p.handle != 0 {
		gl.DeleteProgram(p.handle)
		p.handle = 0
	}
}

func (p *ShaderProgram) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *ShaderProgram) SetUniformMat4(name string, value mgl32.Mat4) *ShaderProgram {
	gl.UniformMatrix4fv(p.location(name), 1, false, &value[0])
	return p
}

func (p *ShaderProgram) SetUniformVec3(name string, value mgl32.Vec3) *ShaderProgram {
	gl.Uniform3f(p.location(name), value.X(), value.Y(), value.Z())
	return p
}

func (p *ShaderProgram) SetUniformF(name string, value float32) *ShaderProgram {
	gl.Uniform1f(p.location(name), value)
	return p
}

func (p *ShaderProgram) SetUniformI(name string, value int32) *ShaderProgram {
	gl.Uniform1i(p.location(name), value)
	return p
}

func (p *ShaderProgram) SetUniformB(name string, value bool) *ShaderProgram {
	var v int32
	if value {
		v = 1
	}
	gl.Uniform1i(p.location(name), v)
	return p
}
