package glbgif

// Object struct for objects
// objects can be passed to the renderer to be rendered
type Object struct {
	Mesh           *Mesh
	Color          Color
	Matrix         Matrix
	UseVertexColor bool
}

// NewEmptyObject returns an empty object
func NewEmptyObject() *Object {
	return &Object{Matrix: Identity(), Color: White}
}

func NewObjectFromMesh(mesh *Mesh) *Object {
	return &Object{Mesh: mesh, Matrix: Identity(), Color: White}
}

// SetColor set the color of the mesh
func (o *Object) SetColor(c Color) {
	o.Color = c
	if o.Mesh != nil {
		o.Mesh.SetColor(c)
	}
}
