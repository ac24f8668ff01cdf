package glbgif

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// FrameFileName is the name frame i is written under.
func FrameFileName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}

// FrameWriter writes each frame as a PNG into Dir.
type FrameWriter struct {
	Dir   string
	paths []string
}

func NewFrameWriter(dir string) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame dir: %w", err)
	}
	return &FrameWriter{Dir: dir}, nil
}

func (w *FrameWriter) WriteFrame(f Frame) error {
	path := filepath.Join(w.Dir, FrameFileName(f.Index))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, f.Image); err != nil {
		file.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	w.paths = append(w.paths, path)
	return nil
}

// Paths lists the written files in the order they were written.
func (w *FrameWriter) Paths() []string {
	out := make([]string, len(w.paths))
	copy(out, w.paths)
	return out
}
