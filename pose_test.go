package glbgif

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPoseAppliesAndRestores(t *testing.T) {
	mesh := skewTetra()
	want := copyVertices(mesh)
	tr := NewRotation(math.Pi/3, AxisY, mesh.Centroid())

	guard := &PoseGuard{}
	var posed []Vector
	dev, err := guard.WithPose(mesh, tr, func() error {
		posed = copyVertices(mesh)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, dev, DefaultTolerance)
	assert.Equal(t, want, mesh.Vertices)
	for i, v := range posed {
		assertVectorNear(t, tr.Forward.MulPosition(want[i]), v, 0)
	}
}

func TestWithPoseRestoresOnError(t *testing.T) {
	mesh := skewTetra()
	want := copyVertices(mesh)
	boom := errors.New("boom")

	_, err := (&PoseGuard{}).WithPose(mesh, NewRotation(1, AxisY, Vector{}), func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, want, mesh.Vertices)
}

func TestWithPoseRestoresOnPanic(t *testing.T) {
	mesh := skewTetra()
	want := copyVertices(mesh)

	assert.Panics(t, func() {
		_, _ = (&PoseGuard{}).WithPose(mesh, NewRotation(1, AxisY, Vector{}), func() error {
			panic("renderer exploded")
		})
	})
	assert.Equal(t, want, mesh.Vertices)
}

func TestWithPoseDetectsCorruption(t *testing.T) {
	mesh := skewTetra()
	want := copyVertices(mesh)

	_, err := (&PoseGuard{}).WithPose(mesh, NewRotation(1, AxisY, Vector{}), func() error {
		mesh.Vertices[2] = mesh.Vertices[2].AddScalar(0.5)
		return nil
	})
	var rerr *RestorationError
	require.True(t, errors.As(err, &rerr))
	assert.Greater(t, rerr.Deviation, rerr.Tolerance)
	assert.Equal(t, want, mesh.Vertices, "mesh is reset even when corrupted")
}

func TestWithPoseJoinsBodyAndRestorationErrors(t *testing.T) {
	mesh := skewTetra()
	boom := errors.New("boom")
	_, err := (&PoseGuard{}).WithPose(mesh, NewRotation(1, AxisY, Vector{}), func() error {
		mesh.Vertices[0] = V(math.NaN(), 0, 0)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	var rerr *RestorationError
	assert.True(t, errors.As(err, &rerr))
}

func TestWithPoseNoDriftOverManyFrames(t *testing.T) {
	mesh := skewTetra()
	want := copyVertices(mesh)
	s, err := NewSchedule(10000, AxisY, mesh.Centroid())
	require.NoError(t, err)

	guard := &PoseGuard{}
	require.NoError(t, s.Each(func(i int, tr Transform) error {
		_, err := guard.WithPose(mesh, tr, func() error { return nil })
		return err
	}))
	assert.Equal(t, want, mesh.Vertices)
	assert.Equal(t, mesh.Centroid(), s.Pivot())
}

// naiveSpin advances mesh one step per frame about its live centroid
// and never resets it, the way an animator without a guard would. It
// returns the deviation from the start pose after each full revolution.
func naiveSpin(mesh *IndexedMesh, n, revolutions int) []float64 {
	want := copyVertices(mesh)
	step := 2 * math.Pi / float64(n)
	deviations := make([]float64, 0, revolutions)
	for r := 0; r < revolutions; r++ {
		for i := 0; i < n; i++ {
			mesh.Apply(NewRotation(step, AxisY, mesh.Centroid()).Forward)
		}
		deviations = append(deviations, mesh.MaxDeviation(want))
	}
	return deviations
}

func TestNaiveRoundTripDrifts(t *testing.T) {
	// Guarded: the per-frame round trip error is bounded and the mesh
	// ends exactly where it started, whatever the frame count.
	const bound = 1e-12
	var guardMax float64
	for _, n := range []int{100, 1000, 10000} {
		mesh := skewTetra()
		want := copyVertices(mesh)
		s, err := NewSchedule(n, AxisY, mesh.Centroid())
		require.NoError(t, err)
		guard := &PoseGuard{}
		require.NoError(t, s.Each(func(_ int, tr Transform) error {
			dev, err := guard.WithPose(mesh, tr, func() error { return nil })
			guardMax = math.Max(guardMax, dev)
			return err
		}))
		assert.Equal(t, want, mesh.Vertices, "n=%d", n)
		assert.LessOrEqual(t, guardMax, bound, "n=%d", n)
	}

	// Naive: error after 100, 1000 and 10000 frames keeps growing.
	drift := naiveSpin(skewTetra(), 100, 100)
	at100, at1000, at10000 := drift[0], drift[9], drift[99]
	assert.LessOrEqual(t, at100, at1000)
	assert.LessOrEqual(t, at1000, at10000)
	assert.Less(t, at100, at10000)
	assert.Greater(t, at10000, guardMax)
}

func TestToleranceScalesWithMesh(t *testing.T) {
	mesh := skewTetra()
	mesh.Apply(Scale(V(1e6, 1e6, 1e6)))
	_, err := (&PoseGuard{}).WithPose(mesh, NewRotation(2.5, AxisY, mesh.Centroid()), func() error { return nil })
	assert.NoError(t, err)
}
