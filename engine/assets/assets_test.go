package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/config"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
)

func watcherConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "depth.vert")
	if err := os.WriteFile(source, []byte("#version 430 core\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		Programs: []config.Program{
			{
				Name: "DepthPassShader",
				Shaders: []config.ShaderFile{
					{Path: source, Stage: config.StageVertex},
				},
			},
		},
	}
	return cfg, source
}

func TestShaderWatcherReportsChangedProgram(t *testing.T) {
	cfg, source := watcherConfig(t)
	watcher, err := NewShaderWatcher(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()
	watcher.Start()

	if err := os.WriteFile(source, []byte("#version 430 core\nvoid main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-watcher.Changed():
		if name != "DepthPassShader" {
			t.Errorf("changed program = %q, want DepthPassShader", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestShaderWatcherIgnoresUnrelatedFiles(t *testing.T) {
	cfg, source := watcherConfig(t)
	watcher, err := NewShaderWatcher(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()
	watcher.Start()

	unrelated := filepath.Join(filepath.Dir(source), "notes.txt")
	if err := os.WriteFile(unrelated, []byte("scratch"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-watcher.Changed():
		t.Errorf("unexpected notification for %q", name)
	case <-time.After(250 * time.Millisecond):
	}
}

func TestShaderWatcherDoubleClose(t *testing.T) {
	cfg, _ := watcherConfig(t)
	watcher, err := NewShaderWatcher(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := watcher.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := watcher.Close(); !errors.Is(err, core.ErrWatcherClosed) {
		t.Fatalf("second close = %v, want core.ErrWatcherClosed", err)
	}
}
