package glbgif

import (
	"errors"
	"fmt"
	"math"
)

// IndexedMesh is a vertex list plus triangular faces indexing into it.
// It is the subject the animation loop poses and renders.
type IndexedMesh struct {
	Vertices []Vector
	Faces    [][3]int
	// FaceColors is either empty or holds one color per face.
	FaceColors []Color
}

func NewIndexedMesh(vertices []Vector, faces [][3]int) *IndexedMesh {
	return &IndexedMesh{Vertices: vertices, Faces: faces}
}

var errEmptyMesh = errors.New("mesh has no faces")

// Validate checks that the mesh can be rendered.
func (m *IndexedMesh) Validate() error {
	if len(m.Faces) == 0 || len(m.Vertices) == 0 {
		return errEmptyMesh
	}
	if len(m.FaceColors) != 0 && len(m.FaceColors) != len(m.Faces) {
		return fmt.Errorf("mesh has %d face colors for %d faces", len(m.FaceColors), len(m.Faces))
	}
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d references vertex %d of %d", i, idx, len(m.Vertices))
			}
		}
	}
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("vertex %d is not finite: %v", i, v)
		}
	}
	return nil
}

// Clone deep-copies the vertex slice. Faces and colors are never mutated
// and stay shared.
func (m *IndexedMesh) Clone() *IndexedMesh {
	vertices := make([]Vector, len(m.Vertices))
	copy(vertices, m.Vertices)
	return &IndexedMesh{Vertices: vertices, Faces: m.Faces, FaceColors: m.FaceColors}
}

// Centroid is the area-weighted mean of the face centroids, falling back
// to the vertex mean when the surface has no area.
func (m *IndexedMesh) Centroid() Vector {
	var sum Vector
	var total float64
	for _, f := range m.Faces {
		p1, p2, p3 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		area := p2.Sub(p1).Cross(p3.Sub(p1)).Length() / 2
		c := p1.Add(p2).Add(p3).DivScalar(3)
		sum = sum.Add(c.MulScalar(area))
		total += area
	}
	if total > 0 {
		return sum.DivScalar(total)
	}
	sum = Vector{}
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	if len(m.Vertices) == 0 {
		return sum
	}
	return sum.DivScalar(float64(len(m.Vertices)))
}

func (m *IndexedMesh) BoundingBox() Box {
	return BoxForPoints(m.Vertices)
}

// Radius returns the largest distance from pivot to any vertex.
func (m *IndexedMesh) Radius(pivot Vector) float64 {
	var r float64
	for _, v := range m.Vertices {
		r = math.Max(r, v.Distance(pivot))
	}
	return r
}

// Apply transforms every vertex in place.
func (m *IndexedMesh) Apply(matrix Matrix) {
	for i, v := range m.Vertices {
		m.Vertices[i] = matrix.MulPosition(v)
	}
}

// Posed returns a copy of m with t applied, leaving m untouched.
func (m *IndexedMesh) Posed(t Transform) *IndexedMesh {
	c := m.Clone()
	c.Apply(t.Forward)
	return c
}

// MaxDeviation returns the largest per-coordinate difference between
// the mesh vertices and want.
func (m *IndexedMesh) MaxDeviation(want []Vector) float64 {
	if len(want) != len(m.Vertices) {
		return math.Inf(1)
	}
	var max float64
	for i, v := range m.Vertices {
		d := v.Sub(want[i]).Abs().MaxComponent()
		if math.IsNaN(d) {
			return math.Inf(1)
		}
		max = math.Max(max, d)
	}
	return max
}

// RenderMesh builds flat-faceted render triangles from the current
// vertex positions. Degenerate faces are skipped.
func (m *IndexedMesh) RenderMesh(color Color) *Mesh {
	triangles := make([]*Triangle, 0, len(m.Faces))
	for i, f := range m.Faces {
		t := &Triangle{}
		t.V1.Position = m.Vertices[f[0]]
		t.V2.Position = m.Vertices[f[1]]
		t.V3.Position = m.Vertices[f[2]]
		if t.IsDegenerate() {
			continue
		}
		t.Facet()
		c := color
		if len(m.FaceColors) > 0 {
			c = m.FaceColors[i]
		}
		t.SetColor(c)
		triangles = append(triangles, t)
	}
	return NewTriangleMesh(triangles)
}

// Concatenate flattens several meshes into one, offsetting face indices.
// Face colors survive only when every part carries them.
func Concatenate(parts ...*IndexedMesh) *IndexedMesh {
	out := &IndexedMesh{}
	colored := len(parts) > 0
	for _, p := range parts {
		if len(p.FaceColors) == 0 {
			colored = false
		}
	}
	for _, p := range parts {
		offset := len(out.Vertices)
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, f := range p.Faces {
			out.Faces = append(out.Faces, [3]int{f[0] + offset, f[1] + offset, f[2] + offset})
		}
		if colored {
			out.FaceColors = append(out.FaceColors, p.FaceColors...)
		}
	}
	return out
}
