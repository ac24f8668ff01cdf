package glbgif

import (
	"github.com/fogleman/simplify"
)

// Simplify returns a decimated copy of m keeping roughly factor of its
// faces. Meshes with face colors, and factors of 1 or more, are returned
// unchanged since decimation cannot carry per-face attributes.
func (m *IndexedMesh) Simplify(factor float64) *IndexedMesh {
	if factor >= 1 || factor <= 0 || len(m.FaceColors) > 0 {
		return m
	}

	triangles := make([]*simplify.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		triangles[i] = simplify.NewTriangle(
			simplifyVector(m.Vertices[f[0]]),
			simplifyVector(m.Vertices[f[1]]),
			simplifyVector(m.Vertices[f[2]]))
	}
	reduced := simplify.NewMesh(triangles).Simplify(factor)

	out := &IndexedMesh{}
	lookup := make(map[Vector]int)
	index := func(v simplify.Vector) int {
		p := Vector{v.X, v.Y, v.Z}
		if i, ok := lookup[p]; ok {
			return i
		}
		i := len(out.Vertices)
		out.Vertices = append(out.Vertices, p)
		lookup[p] = i
		return i
	}
	for _, t := range reduced.Triangles {
		out.Faces = append(out.Faces, [3]int{index(t.V1), index(t.V2), index(t.V3)})
	}
	return out
}

func simplifyVector(v Vector) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
