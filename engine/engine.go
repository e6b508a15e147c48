package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/assets"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/config"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/platform"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	renderSystem *renderer.RenderSystem
	rendererCfg  *config.Config
	watcher      *assets.ShaderWatcher
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	core.SetLogLevel(g.ApplicationConfig.LogLevel)

	cfg, err := config.Load(g.ApplicationConfig.RendererConfig)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		renderSystem: renderer.New(cfg, rng),
		rendererCfg:  cfg,
		isRunning:    true,
		isSuspended:  false,
		width:        cfg.Viewport.Width,
		height:       cfg.Viewport.Height,
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	if err := core.InputInitialize(); err != nil {
		return err
	}

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.platform.Startup(e.gameInstance.ApplicationConfig.Name,
		e.gameInstance.ApplicationConfig.StartPosX,
		e.gameInstance.ApplicationConfig.StartPosY,
		e.width,
		e.height); err != nil {
		return err
	}

	// The GL context exists now; bring up the whole pipeline.
	if err := e.renderSystem.Init(); err != nil {
		return err
	}

	watcher, err := assets.NewShaderWatcher(e.rendererCfg)
	if err != nil {
		core.LogWarn("shader hot-reload unavailable: %s", err.Error())
	} else {
		e.watcher = watcher
		e.watcher.Start()
	}

	e.gameInstance.Renderer = e.renderSystem
	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	// process engine-wide events off the main thread
	go core.ProcessEvents()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		if !e.isSuspended {
			e.clock.Update()

			currentTime := e.clock.Elapsed()
			delta := currentTime - e.lastTime
			frameStartTime := platform.GetAbsoluteTime()

			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err.Error())
				e.isRunning = false
				break
			}

			if err := e.gameInstance.FnRender(delta); err != nil {
				core.LogError("game render failed, shutting down: %s", err.Error())
				e.isRunning = false
				break
			}

			e.platform.SwapBuffers()

			// Apply pending shader recompiles on the context thread.
			e.drainShaderChanges()

			core.MetricsUpdate(platform.GetAbsoluteTime() - frameStartTime)

			// Input update/state copying is the last thing to happen
			// before the frame ends.
			core.InputUpdate(delta)

			e.lastTime = currentTime
		}
	}

	return nil
}

func (e *Engine) drainShaderChanges() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case name := <-e.watcher.Changed():
			if err := e.renderSystem.RecompileProgram(name); err != nil {
				// Keep rendering with the previous program.
				core.LogError("recompile %q: %s", name, err.Error())
			} else {
				core.LogInfo("program %q recompiled", name)
			}
		default:
			return
		}
	}
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogError(err.Error())
		}
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	e.renderSystem.Shutdown()
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event data associated with the event type `%d`", context.Type)
		return
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event data associated with the event type `%d`", context.Type)
		return
	}

	width := se.WindowWidth
	height := se.WindowHeight

	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	core.LogDebug("window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
