package glbgif

import "math"

// AxisY is the default turntable axis.
var AxisY = Vector{0, 1, 0}

// Schedule is the ordered list of rotations for one full revolution.
// Transforms are built on demand, so a Schedule can be walked any
// number of times.
type Schedule struct {
	n     int
	axis  Vector
	pivot Vector
}

// NewSchedule returns n evenly spaced rotations covering [0, 2π) about
// axis through pivot. The pivot is fixed for the whole schedule.
func NewSchedule(n int, axis, pivot Vector) (*Schedule, error) {
	if n <= 0 {
		return nil, configErrorf("frames", "must be at least 1, got %d", n)
	}
	if axis.IsZero() || !axis.IsFinite() {
		return nil, configErrorf("axis", "must be a finite non-zero vector, got %v", axis)
	}
	if !pivot.IsFinite() {
		return nil, configErrorf("pivot", "must be finite, got %v", pivot)
	}
	return &Schedule{n: n, axis: axis, pivot: pivot}, nil
}

func (s *Schedule) Len() int {
	return s.n
}

func (s *Schedule) Pivot() Vector {
	return s.pivot
}

// Angle returns the rotation of step i in radians. Angle(0) is exactly 0.
func (s *Schedule) Angle(i int) float64 {
	return float64(i) * (2 * math.Pi / float64(s.n))
}

func (s *Schedule) At(i int) Transform {
	return NewRotation(s.Angle(i), s.axis, s.pivot)
}

func (s *Schedule) Angles() []float64 {
	angles := make([]float64, s.n)
	for i := range angles {
		angles[i] = s.Angle(i)
	}
	return angles
}

// Each calls fn for every step in order, stopping at the first error.
func (s *Schedule) Each(fn func(i int, t Transform) error) error {
	for i := 0; i < s.n; i++ {
		if err := fn(i, s.At(i)); err != nil {
			return err
		}
	}
	return nil
}
