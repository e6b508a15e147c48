package testbed

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bitzhuwei/OpenGL-Renderer/engine"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/model"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/renderer/components"
)

const demoModelPath = "assets/models/scene.glb"

type TestGame struct {
	*engine.Game
}

type gameState struct {
	camera *components.Camera
	scene  *demoScene
	skybox *renderer.Skybox
	models []*model.Model
}

// demoScene adapts the testbed state to the per-frame scene contract.
type demoScene struct {
	camera     *components.Camera
	renderList []renderer.Model
	sun        renderer.DirectionalLight
}

func (s *demoScene) Camera() renderer.Camera        { return s.camera }
func (s *demoScene) RenderList() []renderer.Model   { return s.renderList }
func (s *demoScene) Sun() renderer.DirectionalLight { return s.sun }

func NewTestGame() (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:      100,
				StartPosY:      100,
				Name:           "Forward+ Testbed",
				LogLevel:       core.DebugLevel,
				RendererConfig: "assets/renderer.toml",
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	state := g.State.(*gameState)

	state.camera = components.NewCamera()
	state.camera.SetPosition(mgl32.Vec3{0, 25, 120})

	skyboxShader, err := g.Renderer.ShaderCache().Get("SkyboxShader")
	if err != nil {
		return err
	}
	state.skybox = renderer.NewSolidSkybox(0.3, 0.5, 0.9, skyboxShader)

	if err := state.loadModels(); err != nil {
		return err
	}

	renderList := make([]renderer.Model, 0, len(state.models))
	for _, m := range state.models {
		renderList = append(renderList, m)
	}
	state.scene = &demoScene{
		camera:     state.camera,
		renderList: renderList,
		sun: renderer.DirectionalLight{
			Direction: mgl32.Vec3{-0.4, -1.0, -0.2}.Normalize(),
			Color:     mgl32.Vec3{1.0, 0.96, 0.9},
		},
	}

	g.Renderer.InitView(state.camera)
	return nil
}

// loadModels imports the demo asset when present and falls back to a
// generated cube field otherwise, so the testbed runs without any assets
// checked in.
func (s *gameState) loadModels() error {
	if _, err := os.Stat(demoModelPath); err == nil {
		meshes, err := model.LoadGLTF(demoModelPath)
		if err != nil {
			return err
		}
		m, err := model.Upload("scene", meshes)
		if err != nil {
			return err
		}
		s.models = append(s.models, m)
		return nil
	}

	core.LogInfo("no demo model at %s, generating cube field", demoModelPath)

	materials := []renderer.Material{
		{Albedo: mgl32.Vec3{0.9, 0.2, 0.2}, Metallic: 0.1, Roughness: 0.4, AO: 1},
		{Albedo: mgl32.Vec3{0.2, 0.9, 0.3}, Metallic: 0.6, Roughness: 0.25, AO: 1},
		{Albedo: mgl32.Vec3{0.8, 0.8, 0.85}, Metallic: 1.0, Roughness: 0.15, AO: 1},
	}
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			material := materials[(i*5+j+12)%len(materials)]
			mesh := model.NewCubeMesh("cube", 12.0, material)
			m, err := model.Upload("cube", []*model.MeshData{mesh})
			if err != nil {
				return err
			}
			m.SetTransform(mgl32.Translate3D(float32(i)*30, 6, float32(j)*30))
			s.models = append(s.models, m)
		}
	}

	// Ground slab.
	ground := model.NewCubeMesh("ground", 1.0, renderer.Material{
		Albedo: mgl32.Vec3{0.4, 0.4, 0.45}, Metallic: 0, Roughness: 0.9, AO: 1,
	})
	m, err := model.Upload("ground", []*model.MeshData{ground})
	if err != nil {
		return err
	}
	m.SetTransform(mgl32.Translate3D(0, -1, 0).Mul4(mgl32.Scale3D(280, 2, 140)))
	s.models = append(s.models, m)

	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	speed := float32(40.0 * deltaTime)
	if core.InputIsKeyDown(core.KEY_W) {
		state.camera.MoveForward(speed)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		state.camera.MoveBackward(speed)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		state.camera.MoveLeft(speed)
	}
	if core.InputIsKeyDown(core.KEY_D) {
		state.camera.MoveRight(speed)
	}
	if core.InputIsKeyDown(core.KEY_Q) {
		state.camera.MoveUp(speed)
	}
	if core.InputIsKeyDown(core.KEY_E) {
		state.camera.MoveDown(speed)
	}

	g.Renderer.Update(state.camera, deltaTime)
	return nil
}

func (g *TestGame) Render(deltaTime float64) error {
	state := g.State.(*gameState)
	return g.Renderer.Render(state.scene, state.skybox)
}

func (g *TestGame) OnResize(width, height uint32) error {
	core.LogDebug("testbed resize: %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	for _, m := range state.models {
		m.Destroy()
	}
	if state.skybox != nil {
		state.skybox.Destroy()
	}
	return nil
}
