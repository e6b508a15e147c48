// Package config loads the renderer description document: initial viewport
// size, post-process tunables and the list of named shader programs with
// their stage sources.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Program names the pipeline resolves during initialization. Missing any of
// them is a configuration error surfaced before the first frame.
var RequiredPrograms = []string{
	"DepthPassShader",
	"LightCullShader",
	"PBRShader",
	"PostProcessShader",
}

// Shader stage identifiers accepted in program definitions.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
	StageCompute  = "compute"
)

type Config struct {
	Viewport    Viewport    `toml:"viewport"`
	PostProcess PostProcess `toml:"postprocess"`
	// Wireframe forwards a debug tint toggle to the PBR pass.
	Wireframe bool      `toml:"wireframe"`
	Programs  []Program `toml:"program"`
}

type Viewport struct {
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type PostProcess struct {
	Vibrance float32 `toml:"vibrance"`
	// Coefficient is the luma weight vector of the vibrance filter.
	Coefficient [3]float32 `toml:"coefficient"`
}

type Program struct {
	Name    string       `toml:"name"`
	Shaders []ShaderFile `toml:"shader"`
}

type ShaderFile struct {
	Path  string `toml:"path"`
	Stage string `toml:"stage"`
}

// Load reads and validates a renderer configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read renderer config: %w", err)
	}
	cfg := defaultConfig()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse renderer config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Viewport: Viewport{Width: 1280, Height: 720},
		PostProcess: PostProcess{
			Vibrance:    0.1,
			Coefficient: [3]float32{0.299, 0.587, 0.114},
		},
	}
}

// Validate checks dimensions, stage names and the presence of every program
// the pipeline requires.
func (c *Config) Validate() error {
	if c.Viewport.Width == 0 || c.Viewport.Height == 0 {
		return fmt.Errorf("viewport must be non-zero, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	byName := make(map[string]*Program, len(c.Programs))
	for i := range c.Programs {
		p := &c.Programs[i]
		if p.Name == "" {
			return fmt.Errorf("program %d has no name", i)
		}
		if len(p.Shaders) == 0 {
			return fmt.Errorf("program %q has no shader stages", p.Name)
		}
		for _, s := range p.Shaders {
			switch s.Stage {
			case StageVertex, StageFragment, StageCompute:
			default:
				return fmt.Errorf("program %q: unknown shader stage %q", p.Name, s.Stage)
			}
			if s.Path == "" {
				return fmt.Errorf("program %q: shader stage %q has no path", p.Name, s.Stage)
			}
		}
		byName[p.Name] = p
	}
	for _, name := range RequiredPrograms {
		if _, ok := byName[name]; !ok {
			return fmt.Errorf("required program %q missing from config", name)
		}
	}
	return nil
}

// Program returns the named program definition, or nil if absent.
func (c *Config) Program(name string) *Program {
	for i := range c.Programs {
		if c.Programs[i].Name == name {
			return &c.Programs[i]
		}
	}
	return nil
}
