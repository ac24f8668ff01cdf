package glbgif

import (
	"errors"
	"math"
)

// DefaultTolerance is the largest per-coordinate deviation a restored
// pose may show before the guard treats it as corrupted.
const DefaultTolerance = 1e-9

// PoseGuard applies a transform to a mesh for the duration of a call and
// puts the mesh back afterwards. A PoseGuard reuses an internal snapshot
// buffer and must not be shared between goroutines.
type PoseGuard struct {
	// Tolerance is absolute for meshes within the unit cube and scales
	// with the largest coordinate magnitude beyond it. 0 means
	// DefaultTolerance.
	Tolerance float64

	snapshot []Vector
}

func (g *PoseGuard) tolerance() float64 {
	tol := DefaultTolerance
	if g.Tolerance > 0 {
		tol = g.Tolerance
	}
	scale := 1.0
	for _, v := range g.snapshot {
		if m := v.Abs().MaxComponent(); m > scale && !math.IsInf(m, 1) {
			scale = m
		}
	}
	return tol * scale
}

// WithPose applies t.Forward to mesh in place, runs body, then applies
// t.Inverse on every exit path, including a panic in body. The returned
// deviation is the largest per-coordinate round-trip error. When it is
// within tolerance the mesh is reset to the exact pre-call coordinates,
// so error never carries into the next call; otherwise the mesh is
// still reset and a *RestorationError is returned.
func (g *PoseGuard) WithPose(mesh *IndexedMesh, t Transform, body func() error) (deviation float64, err error) {
	g.snapshot = append(g.snapshot[:0], mesh.Vertices...)
	mesh.Apply(t.Forward)

	defer func() {
		mesh.Apply(t.Inverse)
		deviation = mesh.MaxDeviation(g.snapshot)
		mesh.Vertices = append(mesh.Vertices[:0], g.snapshot...)
		if tol := g.tolerance(); deviation > tol {
			rerr := &RestorationError{Frame: -1, Deviation: deviation, Tolerance: tol}
			if err != nil {
				err = errors.Join(err, rerr)
			} else {
				err = rerr
			}
		}
	}()

	return 0, body()
}
