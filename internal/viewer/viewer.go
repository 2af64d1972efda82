package viewer

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/hmat-c/polyview/internal/logger"
	"github.com/hmat-c/polyview/internal/render"
)

// state holds the interactive controls. The original tool kept toggle
// state in UI closures; here it is explicit viewer state.
type state struct {
	alpha        float64
	edgeWidth    float64
	elev         float64 // degrees
	azim         float64 // degrees
	distance     float64
	lightweight  bool
	showVertices bool
}

// viewer owns the window, GL resources, and interaction state for one run.
type viewer struct {
	win     *window
	scene   *render.Scene
	program uint32

	faceVAO, faceVBO         uint32
	vertexVAO, vertexVBO     uint32
	centroidVAO, centroidVBO uint32
	faceVertexCount          int32
	vertexCount              int32
	centroidCount            int32

	locMVP, locAlpha, locPointSize int32
	locOverride, locUseOverride    int32

	center    mgl32.Vec3
	halfRange float32

	initial state
	st      state

	dragging      bool
	width, height int
}

// Run opens the interactive viewer for the scene and blocks until the
// window is closed. It must be called from the main goroutine.
func Run(s *render.Scene, cfg WindowConfig) error {
	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	defer win.close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	v := &viewer{
		win:    win,
		scene:  s,
		width:  cfg.Width,
		height: cfg.Height,
	}
	if err := v.setup(); err != nil {
		return err
	}
	defer v.cleanup()

	logger.Info("viewer controls: drag orbits, wheel zooms, L lightweight, V vertices, [ ] alpha, - = edge width, R reset, Esc quits")

	for {
		quit := v.handleEvents()
		if quit {
			return nil
		}
		v.draw()
		v.win.swap()
	}
}

// setup creates GL state and uploads the mesh buffers.
func (v *viewer) setup() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(1, 1, 1, 1)

	var err error
	v.program, err = compileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return fmt.Errorf("creating shader program: %w", err)
	}
	v.locMVP = uniform(v.program, "uMVP")
	v.locAlpha = uniform(v.program, "uAlpha")
	v.locPointSize = uniform(v.program, "uPointSize")
	v.locOverride = uniform(v.program, "uOverrideColor")
	v.locUseOverride = uniform(v.program, "uUseOverride")

	v.uploadBuffers()

	min, max := v.scene.Mesh.Bounds()
	center := min.Add(max).Mul(0.5)
	maxRange := math.Max(max[0]-min[0], math.Max(max[1]-min[1], max[2]-min[2]))
	if maxRange == 0 {
		maxRange = 1
	}
	v.center = mgl32.Vec3{float32(center[0]), float32(center[1]), float32(center[2])}
	v.halfRange = float32(maxRange * 1.1 / 2)

	p := v.scene.Params
	v.initial = state{
		alpha:        p.Alpha,
		edgeWidth:    p.EdgeWidth,
		elev:         p.Elev,
		azim:         p.Azim,
		distance:     float64(v.halfRange) * 3,
		lightweight:  p.Lightweight,
		showVertices: p.ShowVertices && !p.Lightweight,
	}
	v.st = v.initial
	v.win.setTitle(v.title())

	return nil
}

// uploadBuffers builds the face, vertex, and centroid VBOs.
func (v *viewer) uploadBuffers() {
	m := v.scene.Mesh

	// One interleaved record per face corner: position plus the face's
	// shaded color.
	faceData := make([]float32, 0, len(m.Faces)*3*6)
	for i, f := range m.Faces {
		shade := float32(v.scene.Shades[i])
		for c := 0; c < 3; c++ {
			p := m.Vertices[f[c]]
			faceData = append(faceData,
				float32(p[0]), float32(p[1]), float32(p[2]),
				0, shade, shade)
		}
	}
	v.faceVertexCount = int32(len(m.Faces) * 3)
	v.faceVAO, v.faceVBO = uploadInterleaved(faceData)

	vertexData := make([]float32, 0, len(m.Vertices)*3)
	for _, p := range m.Vertices {
		vertexData = append(vertexData, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	v.vertexCount = int32(len(m.Vertices))
	v.vertexVAO, v.vertexVBO = uploadPositions(vertexData)

	centroidData := make([]float32, 0, len(v.scene.Centroids)*3)
	for _, p := range v.scene.Centroids {
		centroidData = append(centroidData, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	v.centroidCount = int32(len(v.scene.Centroids))
	v.centroidVAO, v.centroidVBO = uploadPositions(centroidData)
}

// uploadInterleaved uploads position+color records (6 floats per vertex).
func uploadInterleaved(data []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	return vao, vbo
}

// uploadPositions uploads position-only records (3 floats per vertex);
// these are drawn with the override color.
func uploadPositions(data []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (v *viewer) cleanup() {
	gl.DeleteVertexArrays(1, &v.faceVAO)
	gl.DeleteBuffers(1, &v.faceVBO)
	gl.DeleteVertexArrays(1, &v.vertexVAO)
	gl.DeleteBuffers(1, &v.vertexVBO)
	gl.DeleteVertexArrays(1, &v.centroidVAO)
	gl.DeleteBuffers(1, &v.centroidVBO)
	gl.DeleteProgram(v.program)
}

// mvp builds the orbit camera matrix for the current state.
func (v *viewer) mvp() mgl32.Mat4 {
	elev := v.st.elev * math.Pi / 180
	azim := v.st.azim * math.Pi / 180
	se, ce := math.Sin(elev), math.Cos(elev)
	sa, ca := math.Sin(azim), math.Cos(azim)

	dir := mgl32.Vec3{
		float32(ce * ca),
		float32(ce * sa),
		float32(se),
	}
	up := mgl32.Vec3{
		float32(-ca * se),
		float32(-sa * se),
		float32(ce),
	}
	eye := v.center.Add(dir.Mul(float32(v.st.distance)))

	aspect := float32(v.width) / float32(v.height)
	proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, v.halfRange*0.01, v.halfRange*100)
	view := mgl32.LookAtV(eye, v.center, up)
	return proj.Mul4(view)
}

func (v *viewer) draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(v.program)
	mvp := v.mvp()
	gl.UniformMatrix4fv(v.locMVP, 1, false, &mvp[0])

	if v.st.lightweight {
		gl.Uniform1i(v.locUseOverride, 1)
		gl.Uniform3f(v.locOverride, 0, 0, 1)
		gl.Uniform1f(v.locAlpha, 0.6)
		gl.Uniform1f(v.locPointSize, float32(math.Max(2, v.scene.PointSize)))
		gl.BindVertexArray(v.centroidVAO)
		gl.DrawArrays(gl.POINTS, 0, v.centroidCount)
		gl.BindVertexArray(0)
		return
	}

	// Filled faces with per-face shading.
	gl.Uniform1i(v.locUseOverride, 0)
	gl.Uniform1f(v.locAlpha, float32(v.st.alpha))
	gl.BindVertexArray(v.faceVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, v.faceVertexCount)

	// Edge pass: same geometry in line mode with black override.
	if v.st.edgeWidth > 0 {
		gl.Uniform1i(v.locUseOverride, 1)
		gl.Uniform3f(v.locOverride, 0, 0, 0)
		gl.LineWidth(float32(math.Max(1, v.st.edgeWidth*5)))
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.DrawArrays(gl.TRIANGLES, 0, v.faceVertexCount)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.BindVertexArray(0)

	if v.st.showVertices {
		gl.Uniform1i(v.locUseOverride, 1)
		gl.Uniform3f(v.locOverride, 1, 0, 0)
		gl.Uniform1f(v.locAlpha, 0.5)
		gl.Uniform1f(v.locPointSize, 3)
		gl.BindVertexArray(v.vertexVAO)
		gl.DrawArrays(gl.POINTS, 0, v.vertexCount)
		gl.BindVertexArray(0)
	}
}

// handleEvents drains the SDL event queue. Returns true when the viewer
// should exit.
func (v *viewer) handleEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				v.width, v.height = v.win.size()
				gl.Viewport(0, 0, int32(v.width), int32(v.height))
			}
		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}
		case *sdl.MouseMotionEvent:
			if v.dragging {
				v.st.azim -= float64(e.XRel) * 0.5
				v.st.elev += float64(e.YRel) * 0.5
				v.st.elev = math.Max(-89, math.Min(89, v.st.elev))
			}
		case *sdl.MouseWheelEvent:
			v.st.distance *= 1 - float64(e.Y)*0.1
			minD := float64(v.halfRange) * 0.5
			maxD := float64(v.halfRange) * 20
			v.st.distance = math.Max(minD, math.Min(maxD, v.st.distance))
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if v.handleKey(e.Keysym.Sym) {
				return true
			}
		}
	}
	return false
}

// handleKey applies one key press. Returns true for quit.
func (v *viewer) handleKey(sym sdl.Keycode) bool {
	switch sym {
	case sdl.K_ESCAPE:
		return true
	case sdl.K_l:
		v.st.lightweight = !v.st.lightweight
		v.win.setTitle(v.title())
	case sdl.K_v:
		if !v.st.lightweight {
			v.st.showVertices = !v.st.showVertices
		}
	case sdl.K_LEFTBRACKET:
		v.st.alpha = math.Max(0.1, v.st.alpha-0.1)
	case sdl.K_RIGHTBRACKET:
		v.st.alpha = math.Min(1.0, v.st.alpha+0.1)
	case sdl.K_MINUS:
		v.st.edgeWidth = math.Max(0.0, v.st.edgeWidth-0.05)
	case sdl.K_EQUALS:
		v.st.edgeWidth = math.Min(1.0, v.st.edgeWidth+0.05)
	case sdl.K_r:
		v.st = v.initial
		v.win.setTitle(v.title())
	}
	return false
}

// title mirrors the static renderer's lightweight-mode suffix.
func (v *viewer) title() string {
	if v.st.lightweight {
		return fmt.Sprintf("%s (Lightweight Mode, point size=%.1f)",
			v.scene.Params.Title, v.scene.PointSize)
	}
	return v.scene.Params.Title
}
