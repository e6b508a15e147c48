package renderer

import (
	"fmt"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
)

// ShaderCache owns every compiled program, keyed by name. Callers register
// the programs they need during initialization and resolve them once; the
// cache is not meant to be queried in the render hot path.
type ShaderCache struct {
	programs map[string]*ShaderProgram
}

func NewShaderCache() *ShaderCache {
	return &ShaderCache{
		programs: make(map[string]*ShaderProgram),
	}
}

// Compile builds the named program and caches it. Compiling under an
// existing name replaces the cached entry and releases the previous program,
// which is what makes shader hot-reload safe to repeat.
func (c *ShaderCache) Compile(name string, stages []StageSource) (*ShaderProgram, error) {
	if c.programs == nil {
		return nil, fmt.Errorf("compile %q: cache has been shut down", name)
	}
	program, err := CompileProgram(name, stages)
	if err != nil {
		return nil, err
	}
	if old, ok := c.programs[name]; ok {
		core.LogDebug("shader cache: replacing program %q", name)
		old.Delete()
	}
	c.programs[name] = program
	return program, nil
}

// Get returns the named program or core.ErrShaderNotFound.
func (c *ShaderCache) Get(name string) (*ShaderProgram, error) {
	program, ok := c.programs[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, core.ErrShaderNotFound)
	}
	return program, nil
}

// Shutdown releases every compiled program. Subsequent Get calls report
// core.ErrShaderNotFound rather than handing out dead handles.
func (c *ShaderCache) Shutdown() {
	for name, program := range c.programs {
		program.Delete()
		delete(c.programs, name)
	}
}
