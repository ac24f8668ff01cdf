package glbgif

var EmptyBox = Box{}

type Box struct {
	Min, Max Vector
}

func BoxForPoints(points []Vector) Box {
	if len(points) == 0 {
		return EmptyBox
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return Box{min, max}
}

func (a Box) Size() Vector {
	return a.Max.Sub(a.Min)
}

func (a Box) Center() Vector {
	return a.Min.Add(a.Size().MulScalar(0.5))
}

func (a Box) Corners() []Vector {
	return []Vector{
		{a.Min.X, a.Min.Y, a.Min.Z},
		{a.Min.X, a.Min.Y, a.Max.Z},
		{a.Min.X, a.Max.Y, a.Min.Z},
		{a.Min.X, a.Max.Y, a.Max.Z},
		{a.Max.X, a.Min.Y, a.Min.Z},
		{a.Max.X, a.Min.Y, a.Max.Z},
		{a.Max.X, a.Max.Y, a.Min.Z},
		{a.Max.X, a.Max.Y, a.Max.Z},
	}
}
