package glbgif

// coloredCube is a unit cube centred on the origin with outward CCW
// winding and a different saturated color on every side.
func coloredCube() *IndexedMesh {
	vertices := []Vector{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}
	faces := [][3]int{
		{4, 5, 6}, {4, 6, 7}, // +Z
		{0, 2, 1}, {0, 3, 2}, // -Z
		{1, 2, 6}, {1, 6, 5}, // +X
		{0, 4, 7}, {0, 7, 3}, // -X
		{3, 7, 6}, {3, 6, 2}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
	}
	sides := []Color{
		{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1},
		{1, 1, 0, 1}, {0, 1, 1, 1}, {1, 0, 1, 1},
	}
	m := NewIndexedMesh(vertices, faces)
	for i := range faces {
		m.FaceColors = append(m.FaceColors, sides[i/2])
	}
	return m
}

// skewTetra has irregular coordinates so that rotations round.
func skewTetra() *IndexedMesh {
	return NewIndexedMesh(
		[]Vector{
			{0.1234567, -0.3456789, 0.2718281},
			{-0.4142135, 0.1732050, -0.1618033},
			{0.3141592, 0.2236067, -0.0577215},
			{-0.0693147, -0.1414213, 0.4669201},
		},
		[][3]int{{0, 1, 2}, {0, 3, 1}, {1, 3, 2}, {2, 3, 0}},
	)
}

func copyVertices(m *IndexedMesh) []Vector {
	out := make([]Vector, len(m.Vertices))
	copy(out, m.Vertices)
	return out
}
