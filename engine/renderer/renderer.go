package renderer

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/config"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
)

// Stage tracks the pipeline's lifecycle.
type Stage uint8

const (
	// Pipeline has not been initialized yet.
	StageUninitialized Stage = iota
	// Pipeline is initialized and idle between frames.
	StageIdle
	// Pipeline is inside a Render call.
	StageRendering
	// Pipeline has been shut down; no further calls are valid.
	StageShutDown
)

// SSBO binding points shared between the culling and shading passes.
const (
	bindingLights        = 0
	bindingVisibleLights = 1
)

const depthMapUnit = 5

// RenderSystem orchestrates the Forward+ pipeline: depth prepass, tiled
// light culling, PBR shading with image-based ambient light, and a
// tone-mapping post-process. It exclusively owns both framebuffers, the
// shader cache, the light and index buffers and the screen quad; the scene,
// camera and environment are borrowed per call.
//
// All methods must be called from the thread owning the GL context. Update
// and Render must not run concurrently: the light buffer's map/unmap cycle
// is the only synchronization boundary between CPU animation and GPU reads.
type RenderSystem struct {
	stage Stage
	cfg   *config.Config
	rng   *rand.Rand

	view ViewState

	shaderCache       *ShaderCache
	depthShader       *ShaderProgram
	lightCullShader   *ShaderProgram
	pbrShader         *ShaderProgram
	postProcessShader *ShaderProgram

	depthFBO *Framebuffer
	hdrFBO   *Framebuffer

	depthTexture    uint32
	hdrColorTexture uint32

	uboMatrices uint32

	lights         *LightBuffer
	visibleIndices *VisibleIndexBuffer
	quad           *ScreenQuad

	vibrance    float32
	coefficient mgl32.Vec3
	wireframe   bool
}

// New prepares an uninitialized pipeline. The pseudorandom stream seeds the
// light buffer and is caller-owned so runs can be made reproducible.
func New(cfg *config.Config, rng *rand.Rand) *RenderSystem {
	return &RenderSystem{
		stage:       StageUninitialized,
		cfg:         cfg,
		rng:         rng,
		shaderCache: NewShaderCache(),
		vibrance:    cfg.PostProcess.Vibrance,
		coefficient: mgl32.Vec3{cfg.PostProcess.Coefficient[0], cfg.PostProcess.Coefficient[1], cfg.PostProcess.Coefficient[2]},
		wireframe:   cfg.Wireframe,
	}
}

// Init loads the GL context, compiles every configured shader program,
// resolves the four pipeline programs and creates all GPU resources.
// Context-load and buffer-creation failures abort the process: without them
// no rendering is possible and no partial mode is meaningful.
func (r *RenderSystem) Init() error {
	if r.stage != StageUninitialized {
		return fmt.Errorf("render system already initialized")
	}

	if err := gl.Init(); err != nil {
		core.LogFatal("failed to load OpenGL: %s", err)
	}

	core.LogDebug("OpenGL Version: %s", glString(gl.VERSION))
	core.LogDebug("GLSL Version: %s", glString(gl.SHADING_LANGUAGE_VERSION))
	core.LogDebug("OpenGL Vendor: %s", glString(gl.VENDOR))
	core.LogDebug("OpenGL Renderer: %s", glString(gl.RENDERER))

	r.view.SetViewport(r.cfg.Viewport.Width, r.cfg.Viewport.Height)

	var err error
	r.depthFBO, err = NewFramebuffer("Depth FBO", r.view.Width, r.view.Height)
	if err != nil {
		return err
	}
	r.hdrFBO, err = NewFramebuffer("HDR FBO", r.view.Width, r.view.Height)
	if err != nil {
		return err
	}

	// Compile and cache every configured shader program.
	for _, program := range r.cfg.Programs {
		stages := make([]StageSource, 0, len(program.Shaders))
		for _, sh := range program.Shaders {
			stage, err := StageFromConfig(sh)
			if err != nil {
				return err
			}
			stages = append(stages, stage)
		}
		if _, err := r.shaderCache.Compile(program.Name, stages); err != nil {
			return err
		}
	}

	// Resolve pipeline programs once, before the first frame. A missing
	// name fails here rather than in the render loop.
	if err := r.resolvePrograms(); err != nil {
		return err
	}

	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	// Uniform buffer shared by every raster program: projection then view.
	gl.GenBuffers(1, &r.uboMatrices)
	if r.uboMatrices == 0 {
		core.LogFatal("view matrix uniform buffer could not be created")
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.uboMatrices)
	gl.BufferData(gl.UNIFORM_BUFFER, 2*64, nil, gl.STATIC_DRAW)
	gl.BindBufferRange(gl.UNIFORM_BUFFER, 0, r.uboMatrices, 0, 2*64)

	r.setupLightBuffers()
	r.quad = NewScreenQuad()
	r.setupDepthBuffer()
	r.setupHDRBuffer()

	gl.Viewport(0, 0, int32(r.view.Width), int32(r.view.Height))

	r.stage = StageIdle
	return nil
}

func (r *RenderSystem) resolvePrograms() error {
	var err error
	if r.depthShader, err = r.shaderCache.Get("DepthPassShader"); err != nil {
		return err
	}
	if r.lightCullShader, err = r.shaderCache.Get("LightCullShader"); err != nil {
		return err
	}
	if r.pbrShader, err = r.shaderCache.Get("PBRShader"); err != nil {
		return err
	}
	if r.postProcessShader, err = r.shaderCache.Get("PostProcessShader"); err != nil {
		return err
	}
	return nil
}

// ShaderCache exposes the cache for collaborators that compile auxiliary
// programs (e.g. the skybox).
func (r *RenderSystem) ShaderCache() *ShaderCache {
	return r.shaderCache
}

// View returns a copy of the current view state.
func (r *RenderSystem) View() ViewState {
	return r.view
}

// SetWireframe toggles the debug tint forwarded to the PBR pass.
func (r *RenderSystem) SetWireframe(enabled bool) {
	r.wireframe = enabled
}

// InitView seeds the projection half of the shared matrix buffer for the
// given camera.
func (r *RenderSystem) InitView(camera Camera) {
	r.view.Projection = camera.ProjectionMatrix(r.view.Width, r.view.Height)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.uboMatrices)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, 64, gl.Ptr(&r.view.Projection[0]))
}

// Update reacts to viewport size changes and advances per-frame state: the
// view half of the matrix buffer and the light animation. It issues no draw
// calls.
func (r *RenderSystem) Update(camera Camera, delta float64) {
	if r.stage != StageIdle {
		return
	}

	if core.InputShouldResize() {
		width, height := core.InputConsumeResize()
		r.onResize(camera, width, height)
	}

	r.view.View = camera.ViewMatrix()
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.uboMatrices)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 64, 64, gl.Ptr(&r.view.View[0]))

	r.lights.Update(delta)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// onResize recomputes the projection and tile grid, resizes the depth
// target and updates the viewport.
//
// Deliberately unchanged from the reference behavior: the HDR framebuffer
// and the visible-light index buffer keep their original dimensions, so
// after growing the window the index buffer is undersized for the new tile
// grid. Kept observable instead of silently fixed; see DESIGN.md.
func (r *RenderSystem) onResize(camera Camera, width, height uint32) {
	core.LogDebug("viewport resize: %dx%d -> %dx%d", r.view.Width, r.view.Height, width, height)

	r.view.SetViewport(width, height)
	if r.view.NumTiles() > r.visibleIndices.NumTiles() {
		core.LogWarn("tile grid (%d tiles) exceeds index buffer capacity (%d tiles)", r.view.NumTiles(), r.visibleIndices.NumTiles())
	}

	r.InitView(camera)
	gl.Viewport(0, 0, int32(width), int32(height))

	r.depthFBO.Resize(width, height)
	r.setupDepthBuffer()
}

// Render executes the four passes in fixed order. Ordering between passes
// relies on the submission order of the single GL queue; there are no
// explicit fences. Once entered, all four passes run to completion.
func (r *RenderSystem) Render(scene Scene, env Environment) error {
	if r.stage != StageIdle {
		return fmt.Errorf("render system is not ready to render")
	}
	r.stage = StageRendering
	defer func() { r.stage = StageIdle }()

	gl.BindBuffer(gl.UNIFORM_BUFFER, r.uboMatrices)

	r.depthPass(scene)
	r.cullingPass(scene)
	r.shadingPass(scene, env)
	r.postProcessPass()

	return nil
}

// depthPass renders the scene's depth into the depth framebuffer. Material
// uniforms are skipped; only the model transform is set per draw.
func (r *RenderSystem) depthPass(scene Scene) {
	r.depthShader.Bind()
	r.depthFBO.Bind()
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	r.renderModels(r.depthShader, scene.RenderList(), true)
	r.depthFBO.Unbind()
}

// cullingPass classifies the point lights into screen-space tiles. It must
// run after the depth pass has fully submitted and before the shading pass
// reads the index buffer; both are guaranteed by pass sequencing alone.
func (r *RenderSystem) cullingPass(scene Scene) {
	r.lightCullShader.Bind()
	r.lightCullShader.
		SetUniformMat4("projection", r.view.Projection).
		SetUniformMat4("view", scene.Camera().ViewMatrix()).
		SetUniformI("lightCount", r.lights.Capacity())

	gl.ActiveTexture(gl.TEXTURE0 + depthMapUnit)
	r.lightCullShader.SetUniformI("depthMap", depthMapUnit)
	gl.BindTexture(gl.TEXTURE_2D, r.depthTexture)

	r.lights.BindBase(bindingLights)
	r.visibleIndices.BindBase(bindingVisibleLights)

	gl.DispatchCompute(r.view.WorkGroupsX, r.view.WorkGroupsY, 1)
}

// shadingPass runs PBR shading into the HDR framebuffer, sampling the
// irradiance map and the per-tile light indices, then draws the skybox.
func (r *RenderSystem) shadingPass(scene Scene, env Environment) {
	r.hdrFBO.Bind()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, env.IrradianceMap())

	sun := scene.Sun()
	r.pbrShader.Bind()
	r.pbrShader.
		SetUniformI("irradianceMap", 0).
		SetUniformB("wireframe", r.wireframe).
		SetUniformI("numberOfTilesX", int32(r.view.WorkGroupsX)).
		SetUniformVec3("viewPos", scene.Camera().Position()).
		SetUniformVec3("sunDirection", sun.Direction).
		SetUniformVec3("sunColor", sun.Color)
	r.renderModels(r.pbrShader, scene.RenderList(), false)

	env.DrawSkybox()
}

// postProcessPass tone-maps the HDR color target onto the screen quad in
// the default framebuffer.
func (r *RenderSystem) postProcessPass() {
	r.hdrFBO.Unbind()
	r.postProcessShader.Bind()
	r.postProcessShader.
		SetUniformF("vibranceAmount", r.vibrance).
		SetUniformVec3("vibranceCoefficient", r.coefficient).
		SetUniformI("hdrBuffer", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.hdrColorTexture)

	r.quad.Draw()
}

func (r *RenderSystem) renderModels(shader *ShaderProgram, renderList []Model, depthPass bool) {
	for _, model := range renderList {
		shader.SetUniformMat4("modelMatrix", model.ModelMatrix())

		material := model.Material()
		for _, mesh := range model.Meshes() {
			if !depthPass {
				shader.
					SetUniformVec3("albedo", material.Albedo).
					SetUniformF("metallic", material.Metallic).
					SetUniformF("ao", material.AO).
					SetUniformF("roughness", material.Roughness)
			}
			gl.BindVertexArray(mesh.VAO)
			gl.DrawElementsWithOffset(gl.TRIANGLES, mesh.IndexCount, gl.UNSIGNED_INT, 0)
			gl.BindTexture(gl.TEXTURE_2D, 0)
		}
	}
	gl.BindVertexArray(0)
}

// RecompileProgram rebuilds one named program from its configured sources
// and re-resolves the pipeline handles. Used by shader hot-reload.
func (r *RenderSystem) RecompileProgram(name string) error {
	program := r.cfg.Program(name)
	if program == nil {
		return fmt.Errorf("%q: %w", name, core.ErrShaderNotFound)
	}
	stages := make([]StageSource, 0, len(program.Shaders))
	for _, sh := range program.Shaders {
		stage, err := StageFromConfig(sh)
		if err != nil {
			return err
		}
		stages = append(stages, stage)
	}
	if _, err := r.shaderCache.Compile(name, stages); err != nil {
		return err
	}
	return r.resolvePrograms()
}

func (r *RenderSystem) setupLightBuffers() {
	lights, err := NewLightBuffer(MaxNumLights, r.rng)
	if err != nil {
		core.LogFatal(err.Error())
	}
	r.lights = lights

	indices, err := NewVisibleIndexBuffer(r.view.NumTiles())
	if err != nil {
		core.LogFatal(err.Error())
	}
	r.visibleIndices = indices
}

// setupDepthBuffer creates the depth texture at the current dimensions and
// attaches it to the depth framebuffer. Called at init and after resize;
// the framebuffer released any previous attachment.
func (r *RenderSystem) setupDepthBuffer() {
	r.depthFBO.Bind()

	gl.GenTextures(1, &r.depthTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.depthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT, int32(r.view.Width), int32(r.view.Height), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
	labelObject(gl.TEXTURE, r.depthTexture, "depth-"+uuid.NewString())

	r.depthFBO.AttachTexture(r.depthTexture, AttachmentDepth)
	r.depthFBO.DisableColorOutput()

	r.depthFBO.Unbind()
}

// setupHDRBuffer creates the high-dynamic-range color target plus a depth
// renderbuffer and attaches both.
func (r *RenderSystem) setupHDRBuffer() {
	r.hdrFBO.Reset(r.view.Width, r.view.Height)
	r.hdrFBO.Bind()

	gl.GenTextures(1, &r.hdrColorTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.hdrColorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(r.view.Width), int32(r.view.Height), 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	labelObject(gl.TEXTURE, r.hdrColorTexture, "hdr-color-"+uuid.NewString())

	var rboDepth uint32
	gl.GenRenderbuffers(1, &rboDepth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rboDepth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(r.view.Width), int32(r.view.Height))

	r.hdrFBO.AttachTexture(r.hdrColorTexture, AttachmentColor0)
	r.hdrFBO.AttachRenderBuffer(rboDepth, AttachmentDepth)
	r.hdrFBO.Unbind()
}

// Shutdown releases every owned GPU resource and moves to the terminal
// state. No further calls are valid afterwards.
func (r *RenderSystem) Shutdown() {
	if r.stage == StageShutDown {
		return
	}
	r.shaderCache.Shutdown()
	if r.quad != nil {
		r.quad.Destroy()
	}
	if r.lights != nil {
		r.lights.Destroy()
	}
	if r.visibleIndices != nil {
		r.visibleIndices.Destroy()
	}
	if r.depthFBO != nil {
		r.depthFBO.Destroy()
	}
	if r.hdrFBO != nil {
		r.hdrFBO.Destroy()
	}
	if r.uboMatrices != 0 {
		gl.DeleteBuffers(1, &r.uboMatrices)
		r.uboMatrices = 0
	}
	r.stage = StageShutDown
}

func glString(name uint32) string {
	return gl.GoStr(gl.GetString(name))
}

func labelObject(identifier, handle uint32, label string) {
	gl.ObjectLabel(identifier, handle, int32(len(label)), gl.Str(label+"\x00"))
}
