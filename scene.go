package glbgif

import (
	"errors"
	"image"
	"math"
)

// Fixed camera rig: 60 degree vertical field of view, two units out on +Z.
const (
	DefaultFovy = 60.0
	DefaultNear = 0.05
	DefaultFar  = 100.0
)

var (
	errNilMesh  = errors.New("object attempted to render with nil mesh")
	errNoShader = errors.New("scene context has no shader")
)

// Camera describes a perspective camera. Fovy is in degrees.
type Camera struct {
	Eye, Center, Up Vector
	Fovy            float64
	Near, Far       float64
}

func DefaultCamera() Camera {
	return Camera{
		Eye:    Vector{0, 0, 2},
		Center: Vector{0, 0, 0},
		Up:     Vector{0, 1, 0},
		Fovy:   DefaultFovy,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// Matrix returns the view-projection matrix for a square viewport.
func (c Camera) Matrix() Matrix {
	return LookAt(c.Eye, c.Center, c.Up).Perspective(c.Fovy, 1, c.Near, c.Far)
}

// DirectionalLight shines uniformly along -Direction; Direction points
// from the surface toward the light.
type DirectionalLight struct {
	Direction Vector
	Color     Color
}

// DefaultLight is a white light placed at the camera.
func DefaultLight() DirectionalLight {
	return DirectionalLight{Direction: Vector{0, 0, 1}, Color: White}
}

// Node is a handle to an object held by a Scene.
type Node struct {
	Object *Object
}

// Scene struct to store all data for a scene
type Scene struct {
	Context *Context
	Shader  Shader
	Camera  Camera
	Light   DirectionalLight
	nodes   []*Node
}

// NewScene returns a new scene rendering size*scale square pixels.
func NewScene(camera Camera, light DirectionalLight, size, scale int, shading string) (*Scene, error) {
	shader, err := NewShader(shading, camera.Matrix(), light.Direction, camera.Eye, light.Color)
	if err != nil {
		return nil, err
	}
	context := NewContext(size*scale, size*scale, shader)
	return &Scene{Context: context, Shader: shader, Camera: camera, Light: light}, nil
}

// AddObject adds an object to the scene
func (s *Scene) AddObject(o *Object) *Node {
	n := &Node{Object: o}
	s.nodes = append(s.nodes, n)
	return n
}

// RemoveNode removes n and reports whether it was present.
func (s *Scene) RemoveNode(n *Node) bool {
	for i, x := range s.nodes {
		if x == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Nodes returns the objects currently in the scene. Camera and light are
// not nodes.
func (s *Scene) Nodes() []*Node {
	nodes := make([]*Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// SetFovy changes the camera field of view and updates the shader.
func (s *Scene) SetFovy(fovy float64) {
	s.Camera.Fovy = fovy
	if m, ok := s.Shader.(matrixShader); ok {
		m.SetMatrix(s.Camera.Matrix())
	}
}

// FitFovy returns the vertical field of view, in degrees, that just
// contains box as seen from the camera, with 5% padding.
func (s *Scene) FitFovy(box Box) float64 {
	viewMatrix := LookAt(s.Camera.Eye, s.Camera.Center, s.Camera.Up)

	var maxAngleX, maxAngleY float64
	for _, corner := range box.Corners() {
		p := viewMatrix.MulPosition(corner)

		// The camera looks down -Z in view space; points behind it or on
		// the camera plane cannot be framed by widening the lens.
		if p.Z > -1e-6 {
			continue
		}
		absZ := math.Abs(p.Z)

		angleX := math.Atan(math.Abs(p.X) / absZ)
		if angleX > maxAngleX {
			maxAngleX = angleX
		}

		angleY := math.Atan(math.Abs(p.Y) / absZ)
		if angleY > maxAngleY {
			maxAngleY = angleY
		}
	}

	fovyFromY := 2 * maxAngleY
	fovyFromX := 2 * maxAngleX // square aspect
	finalFovyRad := math.Max(fovyFromX, fovyFromY)
	if finalFovyRad == 0 {
		return s.Camera.Fovy
	}

	return math.Min(Degrees(finalFovyRad)*1.05, 170)
}

// Render clears the buffers and draws every node.
func (s *Scene) Render() error {
	if s.Context.Shader == nil {
		return errNoShader
	}
	for _, n := range s.nodes {
		if n.Object == nil || n.Object.Mesh == nil {
			return errNilMesh
		}
	}
	s.Context.ClearColorBuffer()
	s.Context.ClearDepthBuffer()
	for _, n := range s.nodes {
		s.Context.DrawObject(n.Object)
	}
	return nil
}

// Image returns the context color buffer. It is overwritten by the next
// Render.
func (s *Scene) Image() *image.NRGBA {
	return s.Context.ColorBuffer
}
