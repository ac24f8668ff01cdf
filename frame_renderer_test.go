package glbgif

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderOptions(size int) RenderOptions {
	opts := DefaultRenderOptions()
	opts.Size = size
	opts.Workers = 2
	return opts
}

func TestRenderCurrentPose(t *testing.T) {
	r, err := NewFrameRenderer(testRenderOptions(48))
	require.NoError(t, err)

	im, err := r.RenderCurrentPose(coloredCube())
	require.NoError(t, err)
	assert.Equal(t, 48, im.Bounds().Dx())
	assert.Equal(t, 48, im.Bounds().Dy())
	assert.Equal(t, 0, r.MeshNodes())

	// the +Z face is red and faces the camera
	c := im.NRGBAAt(24, 24)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(0), c.B)
	// corners are background
	assert.Equal(t, Black.NRGBA(), im.NRGBAAt(0, 0))
}

func TestRenderCurrentPoseIsRepeatable(t *testing.T) {
	r, err := NewFrameRenderer(testRenderOptions(40))
	require.NoError(t, err)
	mesh := skewTetra()

	a, err := r.RenderCurrentPose(mesh)
	require.NoError(t, err)
	b, err := r.RenderCurrentPose(mesh)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
	assert.NotSame(t, a, b, "frames do not alias the color buffer")
}

func TestRenderCurrentPoseRemovesNodeOnFailure(t *testing.T) {
	r, err := NewFrameRenderer(testRenderOptions(16))
	require.NoError(t, err)
	r.Scene().Context.Shader = nil

	_, err = r.RenderCurrentPose(coloredCube())
	assert.ErrorIs(t, err, errNoShader)
	assert.Equal(t, 0, r.MeshNodes())
}

func TestRenderCurrentPoseRejectsBadMeshes(t *testing.T) {
	r, err := NewFrameRenderer(testRenderOptions(16))
	require.NoError(t, err)

	_, err = r.RenderCurrentPose(&IndexedMesh{})
	assert.ErrorIs(t, err, errEmptyMesh)

	flat := NewIndexedMesh([]Vector{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, [][3]int{{0, 1, 2}})
	_, err = r.RenderCurrentPose(flat)
	assert.ErrorIs(t, err, errDegenerateMesh)
	assert.Equal(t, 0, r.MeshNodes())
}

func TestRenderCurrentPoseRefusesDirtyScene(t *testing.T) {
	r, err := NewFrameRenderer(testRenderOptions(16))
	require.NoError(t, err)
	r.Scene().AddObject(NewEmptyObject())

	_, err = r.RenderCurrentPose(coloredCube())
	assert.Error(t, err)
}

func TestSupersample(t *testing.T) {
	opts := testRenderOptions(32)
	opts.Supersample = 2
	r, err := NewFrameRenderer(opts)
	require.NoError(t, err)
	assert.Equal(t, 64, r.Scene().Context.Width)

	im, err := r.RenderCurrentPose(coloredCube())
	require.NoError(t, err)
	assert.Equal(t, 32, im.Bounds().Dx())
}

func TestShadings(t *testing.T) {
	for _, shading := range []string{ShadingPhong, ShadingToon, ShadingSolid} {
		t.Run(shading, func(t *testing.T) {
			opts := testRenderOptions(24)
			opts.Shading = shading
			r, err := NewFrameRenderer(opts)
			require.NoError(t, err)
			im, err := r.RenderCurrentPose(coloredCube())
			require.NoError(t, err)
			assert.NotEqual(t, Black.NRGBA(), im.NRGBAAt(12, 12))
		})
	}
}

// countNot counts pixels that differ from bg.
func countNot(im *image.NRGBA, bg color.NRGBA) int {
	n := 0
	b := im.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if im.NRGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestWireframe(t *testing.T) {
	filled, err := NewFrameRenderer(testRenderOptions(64))
	require.NoError(t, err)
	opts := testRenderOptions(64)
	opts.Wireframe = true
	wire, err := NewFrameRenderer(opts)
	require.NoError(t, err)

	a, err := filled.RenderCurrentPose(coloredCube())
	require.NoError(t, err)
	b, err := wire.RenderCurrentPose(coloredCube())
	require.NoError(t, err)

	bg := Black.NRGBA()
	nFilled, nWire := countNot(a, bg), countNot(b, bg)
	assert.Greater(t, nWire, 0)
	assert.Less(t, nWire, nFilled)
	assert.Less(t, nWire, 64*64/4, "edges are drawn two pixels wide")
}

func TestRenderOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RenderOptions)
		field  string
	}{
		{"size", func(o *RenderOptions) { o.Size = 0 }, "size"},
		{"supersample", func(o *RenderOptions) { o.Supersample = 0 }, "supersample"},
		{"workers", func(o *RenderOptions) { o.Workers = -1 }, "render workers"},
		{"shading", func(o *RenderOptions) { o.Shading = "pbr" }, "shading"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultRenderOptions()
			tt.modify(&opts)
			_, err := NewFrameRenderer(opts)
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestFitTo(t *testing.T) {
	r, err := NewFrameRenderer(testRenderOptions(16))
	require.NoError(t, err)

	big := coloredCube()
	big.Apply(Scale(V(3, 3, 3)))
	r.FitTo(big, big.Centroid())
	assert.Greater(t, r.Scene().Camera.Fovy, DefaultFovy)
	assert.LessOrEqual(t, r.Scene().Camera.Fovy, 170.0)
}

func TestSceneNodes(t *testing.T) {
	s, err := NewScene(DefaultCamera(), DefaultLight(), 8, 1, ShadingPhong)
	require.NoError(t, err)
	o := NewEmptyObject()
	o.SetColor(White)
	n := s.AddObject(o)
	assert.Len(t, s.Nodes(), 1)
	assert.ErrorIs(t, s.Render(), errNilMesh)
	assert.True(t, s.RemoveNode(n))
	assert.False(t, s.RemoveNode(n))
	assert.Empty(t, s.Nodes())

	_, err = NewScene(DefaultCamera(), DefaultLight(), 8, 1, "pbr")
	assert.Error(t, err)
}
