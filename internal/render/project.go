package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hmat-c/polyview/pkg/mesh"
)

// boundsMargin pads the axis range so the mesh does not touch the frame.
const boundsMargin = 1.1

// Projector maps world coordinates to a normalized orthographic view plane
// for a given elevation/azimuth viewpoint. Output x/y are roughly in
// [-1, 1] for points inside the padded bounding box; depth grows towards
// the viewer.
type Projector struct {
	right, up, forward mgl64.Vec3
	center             mgl64.Vec3
	halfRange          float64
}

// NewProjector builds a projector over the mesh's equal-scale bounds:
// the bounding-box center with half-range max(extent) * margin / 2 shared
// by all axes.
func NewProjector(m *mesh.Mesh, elevDeg, azimDeg float64) Projector {
	min, max := m.Bounds()
	center := min.Add(max).Mul(0.5)
	maxRange := math.Max(max[0]-min[0], math.Max(max[1]-min[1], max[2]-min[2]))
	halfRange := maxRange * boundsMargin / 2
	if halfRange == 0 {
		halfRange = 1
	}

	elev := elevDeg * math.Pi / 180
	azim := azimDeg * math.Pi / 180
	se, ce := math.Sin(elev), math.Cos(elev)
	sa, ca := math.Sin(azim), math.Cos(azim)

	return Projector{
		forward:   mgl64.Vec3{ce * ca, ce * sa, se},
		right:     mgl64.Vec3{-sa, ca, 0},
		up:        mgl64.Vec3{-ca * se, -sa * se, ce},
		center:    center,
		halfRange: halfRange,
	}
}

// Project returns view-plane coordinates and depth for p.
func (pr Projector) Project(p mgl64.Vec3) (x, y, depth float64) {
	d := p.Sub(pr.center)
	return d.Dot(pr.right) / pr.halfRange,
		d.Dot(pr.up) / pr.halfRange,
		d.Dot(pr.forward) / pr.halfRange
}

// projectedFace is one face ready to draw: projected corners and the depth
// used for the painter's sort.
type projectedFace struct {
	index int
	xs    [3]float64
	ys    [3]float64
	depth float64
}

// projectFaces projects every face and sorts back-to-front so overlapping
// faces paint correctly.
func projectFaces(s *Scene, pr Projector) []projectedFace {
	faces := make([]projectedFace, len(s.Mesh.Faces))
	for i, f := range s.Mesh.Faces {
		pf := projectedFace{index: i}
		for c := 0; c < 3; c++ {
			x, y, d := pr.Project(s.Mesh.Vertices[f[c]])
			pf.xs[c] = x
			pf.ys[c] = y
			pf.depth += d / 3
		}
		faces[i] = pf
	}
	sort.Slice(faces, func(a, b int) bool { return faces[a].depth < faces[b].depth })
	return faces
}
