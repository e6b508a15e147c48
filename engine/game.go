package engine

import (
	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer"
)

type ApplicationConfig struct {
	Name      string
	StartPosX uint32
	StartPosY uint32
	LogLevel  core.Level
	// RendererConfig is the path of the renderer description document.
	// The initial viewport size comes from that document.
	RendererConfig string
}

// Game is the application half of the engine: hooks the run loop invokes,
// plus the renderer handle the engine injects before FnInitialize runs.
type Game struct {
	ApplicationConfig *ApplicationConfig
	Renderer          *renderer.RenderSystem
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
