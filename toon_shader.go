package glbgif

import "math"

// ToonBand maps a minimum light intensity to the tint applied above it.
type ToonBand struct {
	Threshold float64
	Tint      Color
}

// ToonShader implements cel shading.
type ToonShader struct {
	Matrix         Matrix
	LightDirection Vector
	// Bands are ordered from brightest threshold to darkest; the first
	// band whose threshold is below the intensity wins.
	Bands []ToonBand
}

func NewToonShader(matrix Matrix, lightDir Vector) *ToonShader {
	return &ToonShader{
		Matrix:         matrix,
		LightDirection: lightDir.Normalize(),
		Bands: []ToonBand{
			{0.8, Gray(1.0)},  // Highlight
			{0.5, Gray(0.75)}, // Mid-tone
			{0.2, Gray(0.45)}, // Shadow
			{0.0, Gray(0.25)}, // Deep Shadow
		},
	}
}

func (s *ToonShader) GetMatrix() Matrix  { return s.Matrix }
func (s *ToonShader) SetMatrix(m Matrix) { s.Matrix = m }

func (s *ToonShader) Vertex(v Vertex) Vertex {
	v.Output = s.Matrix.MulPositionW(v.Position)
	return v
}

func (s *ToonShader) Fragment(v Vertex, fromObject *Object) Color {
	intensity := math.Max(0, v.Normal.Dot(s.LightDirection))
	tint := Black
	for _, b := range s.Bands {
		if intensity > b.Threshold || b.Threshold == 0 {
			tint = b.Tint
			break
		}
	}

	base := fromObject.Color
	if fromObject.UseVertexColor {
		base = v.Color
	}
	return base.Mul(tint).Alpha(base.A)
}
