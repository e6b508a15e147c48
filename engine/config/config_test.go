package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const requiredProgramsTOML = `
[[program]]
name = "DepthPassShader"
[[program.shader]]
path = "assets/shaders/depth.vert"
stage = "vertex"
[[program.shader]]
path = "assets/shaders/depth.frag"
stage = "fragment"

[[program]]
name = "LightCullShader"
[[program.shader]]
path = "assets/shaders/light_culling.comp"
stage = "compute"

[[program]]
name = "PBRShader"
[[program.shader]]
path = "assets/shaders/pbr.vert"
stage = "vertex"
[[program.shader]]
path = "assets/shaders/pbr.frag"
stage = "fragment"

[[program]]
name = "PostProcessShader"
[[program.shader]]
path = "assets/shaders/post_process.vert"
stage = "vertex"
[[program.shader]]
path = "assets/shaders/post_process.frag"
stage = "fragment"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "renderer.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	doc := `
wireframe = true

[viewport]
width = 1600
height = 900

[postprocess]
vibrance = 0.25
coefficient = [0.3, 0.6, 0.1]
` + requiredProgramsTOML

	cfg, err := Load(writeConfig(t, doc))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewport.Width != 1600 || cfg.Viewport.Height != 900 {
		t.Errorf("viewport = %dx%d, want 1600x900", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if !cfg.Wireframe {
		t.Error("wireframe not set")
	}
	if cfg.PostProcess.Vibrance != 0.25 {
		t.Errorf("vibrance = %f, want 0.25", cfg.PostProcess.Vibrance)
	}
	if cfg.PostProcess.Coefficient != [3]float32{0.3, 0.6, 0.1} {
		t.Errorf("coefficient = %v", cfg.PostProcess.Coefficient)
	}
	if len(cfg.Programs) != 4 {
		t.Fatalf("len(Programs) = %d, want 4", len(cfg.Programs))
	}
}

func TestLoadDefaults(t *testing.T) {
	// Only the programs are given; viewport and post-process fall back to
	// their defaults.
	cfg, err := Load(writeConfig(t, requiredProgramsTOML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewport.Width != 1280 || cfg.Viewport.Height != 720 {
		t.Errorf("default viewport = %dx%d, want 1280x720", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.PostProcess.Vibrance != 0.1 {
		t.Errorf("default vibrance = %f, want 0.1", cfg.PostProcess.Vibrance)
	}
	if cfg.PostProcess.Coefficient != [3]float32{0.299, 0.587, 0.114} {
		t.Errorf("default coefficient = %v", cfg.PostProcess.Coefficient)
	}
	if cfg.Wireframe {
		t.Error("wireframe should default to false")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "zero viewport",
			doc:     "[viewport]\nwidth = 0\nheight = 720\n" + requiredProgramsTOML,
			wantErr: "viewport",
		},
		{
			name: "missing required program",
			doc: `
[[program]]
name = "DepthPassShader"
[[program.shader]]
path = "assets/shaders/depth.vert"
stage = "vertex"
`,
			wantErr: "required program",
		},
		{
			name: "unknown stage",
			doc: strings.Replace(requiredProgramsTOML,
				`stage = "compute"`, `stage = "geometry"`, 1),
			wantErr: "unknown shader stage",
		},
		{
			name: "stage without path",
			doc: strings.Replace(requiredProgramsTOML,
				`path = "assets/shaders/light_culling.comp"`, `path = ""`, 1),
			wantErr: "has no path",
		},
		{
			name:    "not toml",
			doc:     "{ nope",
			wantErr: "parse renderer config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProgramLookup(t *testing.T) {
	cfg, err := Load(writeConfig(t, requiredProgramsTOML))
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.Program("LightCullShader")
	if p == nil {
		t.Fatal("Program(LightCullShader) = nil")
	}
	if len(p.Shaders) != 1 || p.Shaders[0].Stage != StageCompute {
		t.Errorf("unexpected stages: %+v", p.Shaders)
	}
	if cfg.Program("BloomShader") != nil {
		t.Error("lookup of unknown program should return nil")
	}
}
