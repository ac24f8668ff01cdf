package glbgif

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LoadMesh picks a loader by file extension.
func LoadMesh(path string) (*IndexedMesh, error) {
	var (
		m   *IndexedMesh
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		m, err = LoadGLTF(path)
	case ".obj":
		m, err = LoadOBJ(path)
	case ".stl":
		m, err = LoadSTL(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}
