package glbgif

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid rotation by Angle radians about Axis through
// Pivot. Inverse is built analytically as the rotation by -Angle about
// the same axis and pivot, never by numeric inversion.
type Transform struct {
	Angle   float64
	Axis    Vector
	Pivot   Vector
	Forward Matrix
	Inverse Matrix
}

// NewRotation builds the transform. axis need not be normalized but must
// not be zero.
func NewRotation(angle float64, axis, pivot Vector) Transform {
	a := mgl64.Vec3{axis.X, axis.Y, axis.Z}.Normalize()
	to := mgl64.Translate3D(pivot.X, pivot.Y, pivot.Z)
	from := mgl64.Translate3D(-pivot.X, -pivot.Y, -pivot.Z)
	forward := to.Mul4(mgl64.HomogRotate3D(angle, a)).Mul4(from)
	inverse := to.Mul4(mgl64.HomogRotate3D(-angle, a)).Mul4(from)
	return Transform{
		Angle:   angle,
		Axis:    Vector{a[0], a[1], a[2]},
		Pivot:   pivot,
		Forward: MatrixFromMgl(forward),
		Inverse: MatrixFromMgl(inverse),
	}
}
