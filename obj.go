package glbgif

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func LoadOBJ(path string) (*IndexedMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadOBJFromReader(file)
}

func LoadOBJFromBytes(b []byte) (*IndexedMesh, error) {
	return LoadOBJFromReader(bytes.NewReader(b))
}

// LoadOBJFromReader reads vertex positions and faces. Polygons are fan
// triangulated; texture coordinates, normals and materials are ignored.
func LoadOBJFromReader(r io.Reader) (*IndexedMesh, error) {
	m := &IndexedMesh{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", lineNo)
			}
			m.Vertices = append(m.Vertices, Vector{pf(fields[1]), pf(fields[2]), pf(fields[3])})
		case "f":
			args := fields[1:]
			fvs := make([]int, len(args))
			for i, arg := range args {
				vertex := strings.Split(arg, "/")
				idx, err := fixIndex(vertex[0], len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				fvs[i] = idx
			}
			for i := 1; i < len(fvs)-1; i++ {
				m.Faces = append(m.Faces, [3]int{fvs[0], fvs[i], fvs[i+1]})
			}
		}
	}
	return m, scanner.Err()
}

// Helper for fast float parsing
func pf(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// fixIndex converts a 1-based, possibly negative OBJ index to a 0-based
// one.
func fixIndex(value string, length int) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", value)
	}
	if parsed < 0 {
		return parsed + length, nil
	}
	return parsed - 1, nil
}
