package geometry

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// TriMesh is an indexed triangle mesh expressed in its own local frame.
// The mesh is immutable once registered with a detector.
type TriMesh struct {
	Vertices []r3.Vector `json:"vertices"`
	Faces    [][3]int    `json:"faces"`
}

// NewTriMesh validates the face indices and returns the mesh.
func NewTriMesh(vertices []r3.Vector, faces [][3]int) (*TriMesh, error) {
	for i, face := range faces {
		for _, v := range face {
			if v < 0 || v >= len(vertices) {
				return nil, errors.Errorf("face %d references vertex %d, mesh has %d vertices", i, v, len(vertices))
			}
		}
	}
	return &TriMesh{Vertices: vertices, Faces: faces}, nil
}

// NumFaces returns the number of faces.
func (m *TriMesh) NumFaces() int {
	return len(m.Faces)
}

// NumVertices returns the number of vertices.
func (m *TriMesh) NumVertices() int {
	return len(m.Vertices)
}

// Face returns the triangle of the face at the given index.
func (m *TriMesh) Face(i int) Triangle {
	f := m.Faces[i]
	return Triangle{A: m.Vertices[f[0]], B: m.Vertices[f[1]], C: m.Vertices[f[2]]}
}

// GetBounds returns the local-frame bounding box of the mesh.
func (m *TriMesh) GetBounds() AABB {
	bounds := NewEmptyAABB()
	for _, v := range m.Vertices {
		bounds = bounds.AddPoint(v)
	}
	return bounds
}

// IsClosed reports whether the surface is closed: every undirected edge
// is shared by exactly two faces with opposite orientations. A closed
// surface bounds a well-defined solid; an empty or non-manifold mesh is
// reported open.
func (m *TriMesh) IsClosed() bool {
	if len(m.Faces) == 0 {
		return false
	}
	directed := make(map[[2]int]int, len(m.Faces)*3)
	for _, f := range m.Faces {
		edges := [3][2]int{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[0]}}
		for _, e := range edges {
			if e[0] == e[1] {
				return false
			}
			directed[e]++
			if directed[e] > 1 {
				return false
			}
		}
	}
	for e := range directed {
		if directed[[2]int{e[1], e[0]}] != 1 {
			return false
		}
	}
	return true
}

// NewBoxMesh returns a closed 12-triangle mesh of an axis-aligned
// cuboid, 2 right triangles per face, wound outward.
func NewBoxMesh(center, size r3.Vector) *TriMesh {
	half := size.Mul(0.5)
	min := center.Sub(half)
	max := center.Add(half)
	vertices := []r3.Vector{
		{X: min.X, Y: min.Y, Z: min.Z}, // 0
		{X: max.X, Y: min.Y, Z: min.Z}, // 1
		{X: max.X, Y: max.Y, Z: min.Z}, // 2
		{X: min.X, Y: max.Y, Z: min.Z}, // 3
		{X: min.X, Y: min.Y, Z: max.Z}, // 4
		{X: max.X, Y: min.Y, Z: max.Z}, // 5
		{X: max.X, Y: max.Y, Z: max.Z}, // 6
		{X: min.X, Y: max.Y, Z: max.Z}, // 7
	}
	faces := [][3]int{
		// bottom (z = min)
		{0, 2, 1}, {0, 3, 2},
		// top (z = max)
		{4, 5, 6}, {4, 6, 7},
		// front (y = min)
		{0, 1, 5}, {0, 5, 4},
		// back (y = max)
		{3, 7, 6}, {3, 6, 2},
		// left (x = min)
		{0, 4, 7}, {0, 7, 3},
		// right (x = max)
		{1, 2, 6}, {1, 6, 5},
	}
	return &TriMesh{Vertices: vertices, Faces: faces}
}
