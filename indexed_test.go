package glbgif

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroidIsAreaWeighted(t *testing.T) {
	// a big triangle on the left and a tiny one far to the right
	m := NewIndexedMesh(
		[]Vector{
			{-3, 0, 0}, {0, 0, 0}, {-3, 3, 0},
			{10, 0, 0}, {10.1, 0, 0}, {10, 0.1, 0},
		},
		[][3]int{{0, 1, 2}, {3, 4, 5}},
	)
	c := m.Centroid()
	bigArea, smallArea := 4.5, 0.005
	wantX := (bigArea*(-2) + smallArea*(10+0.1/3)) / (bigArea + smallArea)
	assert.InDelta(t, wantX, c.X, 1e-12)
	assert.Less(t, c.X, 0.0)
}

func TestCentroidOfCube(t *testing.T) {
	assertVectorNear(t, Vector{}, coloredCube().Centroid(), 1e-15)
}

func TestCentroidFallsBackToVertexMean(t *testing.T) {
	m := NewIndexedMesh([]Vector{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, [][3]int{{0, 1, 2}})
	assertVectorNear(t, V(1, 0, 0), m.Centroid(), 0)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, (&IndexedMesh{}).Validate(), errEmptyMesh)
	assert.NoError(t, coloredCube().Validate())

	bad := skewTetra()
	bad.Faces = append(bad.Faces, [3]int{0, 1, 9})
	assert.Error(t, bad.Validate())

	nan := skewTetra()
	nan.Vertices[1].Y = math.Inf(-1)
	assert.Error(t, nan.Validate())

	colors := coloredCube()
	colors.FaceColors = colors.FaceColors[:3]
	assert.Error(t, colors.Validate())
}

func TestPosedLeavesOriginal(t *testing.T) {
	m := skewTetra()
	want := copyVertices(m)
	tr := NewRotation(1, AxisY, m.Centroid())

	p := m.Posed(tr)
	assert.Equal(t, want, m.Vertices)
	assert.Greater(t, p.MaxDeviation(want), 0.1)
	assert.Equal(t, m.Faces, p.Faces)
}

func TestMaxDeviation(t *testing.T) {
	m := skewTetra()
	assert.Equal(t, 0.0, m.MaxDeviation(copyVertices(m)))
	assert.True(t, math.IsInf(m.MaxDeviation(nil), 1))
}

func TestConcatenate(t *testing.T) {
	a := NewIndexedMesh([]Vector{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, [][3]int{{0, 1, 2}})
	b := NewIndexedMesh([]Vector{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}, [][3]int{{2, 1, 0}})
	out := Concatenate(a, b)
	require.Len(t, out.Vertices, 6)
	assert.Equal(t, [][3]int{{0, 1, 2}, {5, 4, 3}}, out.Faces)
	assert.Empty(t, out.FaceColors)

	a.FaceColors = []Color{White}
	assert.Empty(t, Concatenate(a, b).FaceColors, "colors dropped unless every part has them")
	b.FaceColors = []Color{Black}
	assert.Equal(t, []Color{White, Black}, Concatenate(a, b).FaceColors)
}

func TestRenderMeshSkipsDegenerate(t *testing.T) {
	m := NewIndexedMesh(
		[]Vector{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {2, 0, 0}},
		[][3]int{{0, 1, 2}, {0, 1, 3}},
	)
	rm := m.RenderMesh(White)
	require.Len(t, rm.Triangles, 1)
	assertVectorNear(t, V(0, 0, 1), rm.Triangles[0].V1.Normal, 1e-15)
}

func TestSimplify(t *testing.T) {
	m := coloredCube()
	assert.Same(t, m, m.Simplify(0.5), "colored meshes are not decimated")

	plain := NewIndexedMesh(coloredCube().Vertices, coloredCube().Faces)
	assert.Same(t, plain, plain.Simplify(1))

	reduced := plain.Simplify(0.5)
	assert.NoError(t, reduced.Validate())
	assert.LessOrEqual(t, len(reduced.Faces), len(plain.Faces))
}

func TestBoundingBoxAndRadius(t *testing.T) {
	m := coloredCube()
	box := m.BoundingBox()
	assertVectorNear(t, V(-0.5, -0.5, -0.5), box.Min, 0)
	assertVectorNear(t, V(0.5, 0.5, 0.5), box.Max, 0)
	assert.InDelta(t, math.Sqrt(0.75), m.Radius(Vector{}), 1e-15)
}
