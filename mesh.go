package glbgif

// Mesh is the render-ready triangle soup the rasterizer draws.
type Mesh struct {
	Triangles []*Triangle
}

func NewTriangleMesh(triangles []*Triangle) *Mesh {
	return &Mesh{Triangles: triangles}
}

func (m *Mesh) SetColor(c Color) {
	for _, t := range m.Triangles {
		t.SetColor(c)
	}
}
