package glbgif

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF loads a .gltf or .glb file and flattens every triangle
// primitive of every mesh into one IndexedMesh.
func LoadGLTF(path string) (*IndexedMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return meshFromGLTF(doc)
}

// LoadGLTFFromReader decodes a self-contained glTF or GLB stream.
func LoadGLTFFromReader(r io.Reader) (*IndexedMesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, err
	}
	return meshFromGLTF(doc)
}

func meshFromGLTF(doc *gltf.Document) (*IndexedMesh, error) {
	var parts []*IndexedMesh

	for _, mesh := range doc.Meshes {
		for _, primitive := range mesh.Primitives {
			// We only support Triangles (mode 4)
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
			}

			var indices []uint32
			if primitive.Indices != nil {
				// ReadIndices automatically converts uint8/uint16/uint32 to []uint32
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
				}
			} else {
				// If no indices are provided, generate linear indices (0, 1, 2, ...)
				indices = make([]uint32, len(positions))
				for k := range indices {
					indices[k] = uint32(k)
				}
			}

			part := &IndexedMesh{Vertices: make([]Vector, len(positions))}
			for k, p := range positions {
				part.Vertices[k] = Vector{float64(p[0]), float64(p[1]), float64(p[2])}
			}
			for i := 0; i+2 < len(indices); i += 3 {
				part.Faces = append(part.Faces, [3]int{int(indices[i]), int(indices[i+1]), int(indices[i+2])})
			}
			parts = append(parts, part)
		}
	}

	out := Concatenate(parts...)
	if len(out.Faces) == 0 {
		return nil, fmt.Errorf("no triangles found in gltf")
	}
	return out, nil
}
