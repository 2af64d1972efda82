package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// tetra is a small fixture: four vertices, four faces, unit-cube corners.
func tetra() *Mesh {
	return &Mesh{
		Vertices: []mgl64.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		Faces: [][3]int{
			{0, 1, 2},
			{0, 1, 3},
			{0, 2, 3},
			{1, 2, 3},
		},
	}
}

func TestCounts(t *testing.T) {
	m := tetra()
	if m.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", m.VertexCount())
	}
	if m.FaceCount() != 4 {
		t.Errorf("expected 4 faces, got %d", m.FaceCount())
	}
}

func TestNormals_UnitLength(t *testing.T) {
	normals := tetra().Normals()
	if len(normals) != 4 {
		t.Fatalf("expected 4 normals, got %d", len(normals))
	}
	for i, n := range normals {
		if l := n.Len(); math.Abs(l-1) > 1e-12 {
			t.Errorf("normal %d has length %g, want 1", i, l)
		}
	}
}

func TestNormals_BaseFaceDirection(t *testing.T) {
	// Face {0,1,2} lies in the z=0 plane with counter-clockwise winding,
	// so its normal is +z.
	n := tetra().Normals()[0]
	want := mgl64.Vec3{0, 0, 1}
	if !n.ApproxEqual(want) {
		t.Errorf("expected normal %v, got %v", want, n)
	}
}

func TestNormals_DegenerateFaceIsZero(t *testing.T) {
	m := &Mesh{
		Vertices: []mgl64.Vec3{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}},
		Faces:    [][3]int{{0, 1, 2}},
	}
	n := m.Normals()[0]
	if n != (mgl64.Vec3{}) {
		t.Errorf("expected zero normal for collinear face, got %v", n)
	}
	if area := m.TotalArea(); area != 0 {
		t.Errorf("expected zero area for collinear face, got %g", area)
	}
}

func TestCentroids(t *testing.T) {
	centroids := tetra().Centroids()
	want := mgl64.Vec3{1.0 / 3, 1.0 / 3, 0}
	if !centroids[0].ApproxEqual(want) {
		t.Errorf("expected centroid %v, got %v", want, centroids[0])
	}
}

func TestTotalArea_RightTriangle(t *testing.T) {
	m := &Mesh{
		Vertices: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    [][3]int{{0, 1, 2}},
	}
	if area := m.TotalArea(); math.Abs(area-0.5) > 1e-12 {
		t.Errorf("expected area 0.5, got %g", area)
	}
}

func TestTotalArea_Tetra(t *testing.T) {
	// Three unit right triangles plus the slanted face sqrt(3)/2.
	want := 1.5 + math.Sqrt(3)/2
	if area := tetra().TotalArea(); math.Abs(area-want) > 1e-12 {
		t.Errorf("expected area %g, got %g", want, area)
	}
}

func TestCentroid(t *testing.T) {
	c := tetra().Centroid()
	want := mgl64.Vec3{0.25, 0.25, 0.25}
	if !c.ApproxEqual(want) {
		t.Errorf("expected centroid %v, got %v", want, c)
	}

	// Vertex mean, not area-weighted and not the mean of face centroids.
	m := &Mesh{Vertices: []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, 2}}}
	if c := m.Centroid(); !c.ApproxEqual(mgl64.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("expected centroid (0.5, 0.5, 0.5), got %v", c)
	}
}

func TestCentroid_Empty(t *testing.T) {
	m := &Mesh{}
	if c := m.Centroid(); c != (mgl64.Vec3{}) {
		t.Errorf("expected zero centroid for empty mesh, got %v", c)
	}
}

func TestBounds(t *testing.T) {
	m := &Mesh{
		Vertices: []mgl64.Vec3{{-1, 2, 0}, {3, -4, 5}, {0, 0, 0}},
	}
	min, max := m.Bounds()
	if min != (mgl64.Vec3{-1, -4, 0}) {
		t.Errorf("unexpected min %v", min)
	}
	if max != (mgl64.Vec3{3, 2, 5}) {
		t.Errorf("unexpected max %v", max)
	}
}
