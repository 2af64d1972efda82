// Package render draws a parsed mesh to a static image. It consumes the
// mesh plus its derived geometry and the render parameters, projects the
// faces with a painter's-algorithm depth sort, and writes PNG, SVG, or PDF
// depending on the planned export decision.
package render

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hmat-c/polyview/pkg/mesh"
)

// Default parameter values, also used when out-of-range input is reset.
const (
	DefaultAlpha     = 0.8
	DefaultEdgeWidth = 0.1
	DefaultElev      = 20.0
	DefaultAzim      = 30.0
)

// Params are the caller-supplied render controls.
type Params struct {
	Alpha        float64 // face opacity, valid range [0.1, 1.0]
	EdgeWidth    float64 // edge line width, valid range [0.0, 1.0]
	Elev         float64 // viewpoint elevation angle, degrees
	Azim         float64 // viewpoint azimuth angle, degrees
	PointSize    float64 // lightweight point size; 0 selects adaptive sizing
	Title        string
	ShowVertices bool
	Lightweight  bool
}

// Clamp resets out-of-range alpha and edge width to their defaults and
// returns a warning per reset value.
func (p *Params) Clamp() []string {
	var warnings []string
	if p.Alpha < 0.1 || p.Alpha > 1.0 {
		warnings = append(warnings,
			fmt.Sprintf("alpha must be in [0.1, 1.0]; resetting %g to %g", p.Alpha, DefaultAlpha))
		p.Alpha = DefaultAlpha
	}
	if p.EdgeWidth < 0.0 || p.EdgeWidth > 1.0 {
		warnings = append(warnings,
			fmt.Sprintf("edge width must be in [0.0, 1.0]; resetting %g to %g", p.EdgeWidth, DefaultEdgeWidth))
		p.EdgeWidth = DefaultEdgeWidth
	}
	return warnings
}

// lightDir is the fixed shading light direction, normalize(1,1,1).
var lightDir = mgl64.Vec3{1, 1, 1}.Normalize()

// Shade maps a face normal to a brightness in [0.3, 1.0].
func Shade(normal mgl64.Vec3) float64 {
	s := normal.Dot(lightDir)*0.7 + 0.5
	return math.Min(1.0, math.Max(0.3, s))
}

// Scene bundles a mesh with its derived geometry and resolved parameters,
// ready for any backend.
type Scene struct {
	Mesh      *mesh.Mesh
	Normals   []mgl64.Vec3
	Centroids []mgl64.Vec3
	Shades    []float64 // per-face brightness, parallel to Faces
	PointSize float64   // resolved lightweight point size
	Params    Params
}

// NewScene derives normals, centroids, shading, and the lightweight point
// size for m. Params should already be clamped.
func NewScene(m *mesh.Mesh, p Params) *Scene {
	s := &Scene{
		Mesh:      m,
		Normals:   m.Normals(),
		Centroids: m.Centroids(),
		Params:    p,
	}
	s.Shades = make([]float64, len(s.Normals))
	for i, n := range s.Normals {
		s.Shades[i] = Shade(n)
	}
	s.PointSize = p.PointSize
	if s.PointSize <= 0 {
		s.PointSize = mesh.PointSize(s.Centroids, mesh.DefaultSizerOptions())
	}
	return s
}

// DisplayTitle is the title with the lightweight-mode suffix applied.
func (s *Scene) DisplayTitle() string {
	if s.Params.Lightweight {
		return fmt.Sprintf("%s (Lightweight Mode, point size=%.1f)", s.Params.Title, s.PointSize)
	}
	return s.Params.Title
}
