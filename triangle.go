package glbgif

type Triangle struct {
	V1, V2, V3 Vertex
}

func (t *Triangle) IsDegenerate() bool {
	p1 := t.V1.Position
	p2 := t.V2.Position
	p3 := t.V3.Position
	if p1 == p2 || p1 == p3 || p2 == p3 {
		return true
	}
	return t.Area() == 0
}

func (t *Triangle) Normal() Vector {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Normalize()
}

func (t *Triangle) Area() float64 {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Length() / 2
}

// Facet overwrites all three vertex normals with the face normal, so the
// triangle shades flat.
func (t *Triangle) Facet() {
	if t.IsDegenerate() {
		return
	}
	n := t.Normal()
	t.V1.Normal = n
	t.V2.Normal = n
	t.V3.Normal = n
}

func (t *Triangle) SetColor(c Color) {
	t.V1.Color = c
	t.V2.Color = c
	t.V3.Color = c
}
