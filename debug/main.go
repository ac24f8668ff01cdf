package main

import (
	"flag"
	"fmt"
	"log"

	glbgif "github.com/TooManyMatts/glb-to-gif"
)

func main() {
	path := flag.String("input_path", "model.glb", "Mesh file to inspect")
	simplify := flag.Float64("simplify", 1, "Fraction of faces to keep")
	flag.Parse()

	fmt.Println("--- STARTING DEBUG ---")
	mesh, err := glbgif.LoadMesh(*path)
	if err != nil {
		log.Fatal(err)
	}
	if *simplify < 1 {
		mesh = mesh.Simplify(*simplify)
	}

	box := mesh.BoundingBox()
	centroid := mesh.Centroid()

	fmt.Printf("--- MESH STATS ---\n")
	fmt.Printf("Vertices: %d\n", len(mesh.Vertices))
	fmt.Printf("Faces: %d\n", len(mesh.Faces))
	fmt.Printf("Bounding Box Min: %+v\n", box.Min)
	fmt.Printf("Bounding Box Max: %+v\n", box.Max)
	fmt.Printf("Bounding Box Center: %+v\n", box.Center())
	fmt.Printf("Centroid: %+v\n", centroid)
	fmt.Printf("Radius about centroid: %g\n", mesh.Radius(centroid))

	// the turntable spins about the centroid, so a centroid far from the
	// box center means the model will wobble across the frame
	if d := centroid.Distance(box.Center()); d > 0.25*box.Size().MaxComponent() {
		fmt.Printf("Centroid is %.3f away from the box center; expect visible wobble\n", d)
	}
}
