// Package mesh holds the in-memory representation of a triangulated
// surface mesh and the geometry derived from it.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangulated surface: an ordered vertex list and triangular
// faces indexing into it. Face indices are 0-based; readers normalize
// 1-based input before constructing a Mesh. A Mesh is built once by a
// reader and not mutated afterwards.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// Normals computes one unit normal per face, parallel to Faces.
// A degenerate (collinear) face yields the zero vector rather than an error.
func (m *Mesh) Normals() []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(m.Faces))
	for i, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		e1 := m.Vertices[f[1]].Sub(v0)
		e2 := m.Vertices[f[2]].Sub(v0)
		n := e1.Cross(e2)
		if l := n.Len(); l > 0 {
			normals[i] = n.Mul(1 / l)
		}
	}
	return normals
}

// Centroids computes one centroid per face (mean of its three vertices),
// parallel to Faces.
func (m *Mesh) Centroids() []mgl64.Vec3 {
	centroids := make([]mgl64.Vec3, len(m.Faces))
	for i, f := range m.Faces {
		sum := m.Vertices[f[0]].Add(m.Vertices[f[1]]).Add(m.Vertices[f[2]])
		centroids[i] = sum.Mul(1.0 / 3.0)
	}
	return centroids
}

// TotalArea returns the summed area of all faces. Degenerate faces
// contribute zero.
func (m *Mesh) TotalArea() float64 {
	var total float64
	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		e1 := m.Vertices[f[1]].Sub(v0)
		e2 := m.Vertices[f[2]].Sub(v0)
		total += 0.5 * e1.Cross(e2).Len()
	}
	return total
}

// Centroid returns the mean of all vertices. This is not area-weighted
// and not the mean of the face centroids.
func (m *Mesh) Centroid() mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(m.Vertices) == 0 {
		return sum
	}
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(m.Vertices)))
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min = m.Vertices[0]
	max = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for c := 0; c < 3; c++ {
			if v[c] < min[c] {
				min[c] = v[c]
			}
			if v[c] > max[c] {
				max[c] = v[c]
			}
		}
	}
	return min, max
}
