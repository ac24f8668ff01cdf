package glbgif

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// RenderOptions configures a FrameRenderer.
type RenderOptions struct {
	Size        int // output width and height in pixels
	Supersample int // render at Size*Supersample, then downscale
	Shading     string
	Color       Color // mesh color when it has no face colors
	Background  Color
	Outline     bool
	Wireframe   bool
	Fit         bool // widen the lens so the subject stays in frame
	Workers     int  // rasterizer goroutines, 0 means one per CPU
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Size:        512,
		Supersample: 1,
		Shading:     ShadingPhong,
		Color:       HexColor("b4b4b4"),
		Background:  Black,
	}
}

func (o RenderOptions) Validate() error {
	if o.Size < 1 {
		return configErrorf("size", "must be at least 1 pixel, got %d", o.Size)
	}
	if o.Supersample < 1 {
		return configErrorf("supersample", "must be at least 1, got %d", o.Supersample)
	}
	if o.Workers < 0 {
		return configErrorf("render workers", "must not be negative, got %d", o.Workers)
	}
	switch o.Shading {
	case "", ShadingPhong, ShadingToon, ShadingSolid:
	default:
		return configErrorf("shading", "unknown shading %q", o.Shading)
	}
	return nil
}

// PoseRenderer renders whatever pose a mesh currently has.
type PoseRenderer interface {
	RenderCurrentPose(mesh *IndexedMesh) (*image.NRGBA, error)
}

var errDegenerateMesh = errors.New("mesh has only degenerate faces")

// FrameRenderer owns one scene and one render context and reuses them
// for every frame. It is not safe for concurrent use.
type FrameRenderer struct {
	scene *Scene
	opts  RenderOptions
}

func NewFrameRenderer(opts RenderOptions) (*FrameRenderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	scene, err := NewScene(DefaultCamera(), DefaultLight(), opts.Size, opts.Supersample, opts.Shading)
	if err != nil {
		return nil, configErrorf("shading", "%v", err)
	}
	scene.Context.ClearColor = opts.Background
	scene.Context.Wireframe = opts.Wireframe
	scene.Context.Workers = opts.Workers
	if p, ok := scene.Shader.(*PhongShader); ok {
		p.EnableOutline = opts.Outline
	}
	return &FrameRenderer{scene: scene, opts: opts}, nil
}

func (r *FrameRenderer) Scene() *Scene {
	return r.scene
}

// MeshNodes returns how many mesh nodes the scene holds. It is zero
// between calls to RenderCurrentPose.
func (r *FrameRenderer) MeshNodes() int {
	return len(r.scene.nodes)
}

// FitTo widens the field of view once so that the sphere swept by mesh
// rotating about pivot stays in frame.
func (r *FrameRenderer) FitTo(mesh *IndexedMesh, pivot Vector) {
	radius := mesh.Radius(pivot)
	box := Box{pivot.AddScalar(-radius), pivot.AddScalar(radius)}
	r.scene.SetFovy(r.scene.FitFovy(box))
}

// RenderCurrentPose renders mesh as it is right now. The mesh node it
// adds to the scene is removed before returning, on success or failure.
func (r *FrameRenderer) RenderCurrentPose(mesh *IndexedMesh) (*image.NRGBA, error) {
	if n := len(r.scene.nodes); n != 0 {
		return nil, fmt.Errorf("scene already holds %d mesh nodes", n)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	renderMesh := mesh.RenderMesh(r.opts.Color)
	if len(renderMesh.Triangles) == 0 {
		return nil, errDegenerateMesh
	}

	o := NewObjectFromMesh(renderMesh)
	o.Color = r.opts.Color
	o.UseVertexColor = len(mesh.FaceColors) > 0

	node := r.scene.AddObject(o)
	defer r.scene.RemoveNode(node)

	if err := r.scene.Render(); err != nil {
		return nil, err
	}
	return r.capture(), nil
}

// capture copies the color buffer out of the context, downscaling when
// supersampling.
func (r *FrameRenderer) capture() *image.NRGBA {
	src := r.scene.Image()
	if r.opts.Supersample > 1 {
		size := uint(r.opts.Size)
		return toNRGBA(resize.Resize(size, size, src, resize.Lanczos3))
	}
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

func toNRGBA(im image.Image) *image.NRGBA {
	if dst, ok := im.(*image.NRGBA); ok {
		return dst
	}
	dst := image.NewNRGBA(im.Bounds())
	draw.Draw(dst, dst.Rect, im, im.Bounds().Min, draw.Src)
	return dst
}
