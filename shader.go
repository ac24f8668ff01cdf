package glbgif

import (
	"fmt"
	"math"
)

// Shader shader interface
type Shader interface {
	Vertex(Vertex) Vertex
	Fragment(Vertex, *Object) Color
}

// matrixShader is implemented by shaders whose model-view-projection can
// be composed with a per-object matrix.
type matrixShader interface {
	GetMatrix() Matrix
	SetMatrix(Matrix)
}

// Shading names accepted by NewShader.
const (
	ShadingPhong = "phong"
	ShadingToon  = "toon"
	ShadingSolid = "solid"
)

// NewShader builds the named shader for a camera at eye lit from
// lightDirection.
func NewShader(name string, matrix Matrix, lightDirection, eye Vector, light Color) (Shader, error) {
	switch name {
	case "", ShadingPhong:
		return NewPhongShader(matrix, lightDirection, eye, Gray(0.2), light), nil
	case ShadingToon:
		return NewToonShader(matrix, lightDirection), nil
	case ShadingSolid:
		return NewSolidColorShader(matrix, light), nil
	}
	return nil, fmt.Errorf("unknown shading %q", name)
}

// PhongShader implements Phong shading.
type PhongShader struct {
	Matrix         Matrix
	LightDirection Vector
	CameraPosition Vector
	AmbientColor   Color
	DiffuseColor   Color
	SpecularColor  Color
	SpecularPower  float64
	EnableOutline  bool    // A switch to turn the effect on/off
	OutlineColor   Color   // The color of the outline
	OutlineFactor  float64 // Controls line thickness (lower is thicker)
}

// NewPhongShader f
func NewPhongShader(matrix Matrix, lightDirection, cameraPosition Vector, ambient Color, diffuse Color) *PhongShader {
	specular := Color{1, 1, 1, 1}
	return &PhongShader{
		Matrix:         matrix,
		LightDirection: lightDirection.Normalize(),
		CameraPosition: cameraPosition,
		AmbientColor:   ambient,
		DiffuseColor:   diffuse,
		SpecularColor:  specular,
		SpecularPower:  0,
		EnableOutline:  false,
		OutlineColor:   HexColor("000000"),
		OutlineFactor:  0.05,
	}
}

func (shader *PhongShader) GetMatrix() Matrix  { return shader.Matrix }
func (shader *PhongShader) SetMatrix(m Matrix) { shader.Matrix = m }

// Vertex f
func (shader *PhongShader) Vertex(v Vertex) Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	return v
}

// Fragment f
func (shader *PhongShader) Fragment(v Vertex, fromObject *Object) Color {
	if shader.EnableOutline {
		viewDirection := shader.CameraPosition.Sub(v.Position).Normalize()
		dot := viewDirection.Dot(v.Normal)

		// If the surface normal is nearly perpendicular to the view direction, it's an edge.
		if math.Abs(dot) < shader.OutlineFactor {
			return shader.OutlineColor
		}
	}

	light := shader.AmbientColor
	color := fromObject.Color
	// Per-face colors replace the object color but are still lit.
	if fromObject.UseVertexColor {
		color = v.Color
	}
	diffuse := math.Max(v.Normal.Dot(shader.LightDirection), 0)
	light = light.Add(shader.DiffuseColor.MulScalar(diffuse))
	if diffuse > 0 && shader.SpecularPower > 0 {
		camera := shader.CameraPosition.Sub(v.Position).Normalize()
		reflected := shader.LightDirection.Negate().Reflect(v.Normal)
		specular := math.Max(camera.Dot(reflected), 0)
		if specular > 0 {
			specular = math.Pow(specular, shader.SpecularPower)
			light = light.Add(shader.SpecularColor.MulScalar(specular))
		}
	}
	if color.A < 1 {
		return color.Mul(light).Min(White).DivScalar(color.A).Alpha(color.A)
	}

	return color.Mul(light).Min(White).Alpha(color.A)
}
