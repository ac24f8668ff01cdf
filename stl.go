package glbgif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

func LoadSTL(path string) (*IndexedMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadSTLFromReader(file)
}

var errASCIISTL = errors.New("ASCII STL not supported, export as binary STL")

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// LoadSTLFromReader reads a binary STL. Identical corner positions are
// merged into one vertex.
func LoadSTLFromReader(r io.Reader) (*IndexedMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < stlHeaderSize {
		if isASCIISTL(data) {
			return nil, errASCIISTL
		}
		return nil, fmt.Errorf("stl header: %w", io.ErrUnexpectedEOF)
	}
	count := int(binary.LittleEndian.Uint32(data[80:stlHeaderSize]))
	body := data[stlHeaderSize:]
	// Binary exporters may also start the header with "solid", so only a
	// size mismatch marks the file as text.
	if len(body) != count*stlTriangleSize && isASCIISTL(data) {
		return nil, errASCIISTL
	}
	if len(body) < count*stlTriangleSize {
		return nil, fmt.Errorf("stl has %d bytes for %d triangles: %w", len(body), count, io.ErrUnexpectedEOF)
	}

	m := &IndexedMesh{}
	vertMap := make(map[Vector]int)
	for i := 0; i < count; i++ {
		tri := body[i*stlTriangleSize:]
		var face [3]int
		for v := range face {
			var c [3]float64
			for k := range c {
				const start = 3 * 4 // Skip normal
				c[k] = float64(math.Float32frombits(binary.LittleEndian.Uint32(tri[start+12*v+4*k:])))
			}
			p := Vector{c[0], c[1], c[2]}
			idx, ok := vertMap[p]
			if !ok {
				idx = len(m.Vertices)
				m.Vertices = append(m.Vertices, p)
				vertMap[p] = idx
			}
			face[v] = idx
		}
		m.Faces = append(m.Faces, face)
	}
	return m, nil
}

func isASCIISTL(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid"))
}
