package glbgif

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

const (
	EncoderBuiltin = "builtin"
	EncoderConvert = "convert"
)

// EncodeJob is everything an encoder may need to assemble the GIF.
type EncodeJob struct {
	Frames     []Frame
	FramePaths []string // PNG files in frame order
	Delay      int      // hundredths of a second
	Output     string
}

// Encoder assembles rendered frames into an endlessly looping GIF.
type Encoder interface {
	Encode(ctx context.Context, job EncodeJob) error
}

func NewEncoder(name string) (Encoder, error) {
	switch name {
	case "", EncoderBuiltin:
		return &GIFEncoder{}, nil
	case EncoderConvert:
		return &ConvertEncoder{Binary: "convert"}, nil
	}
	return nil, configErrorf("encoder", "unknown encoder %q", name)
}

// GIFEncoder quantizes in-memory frames to the Plan9 palette with
// Floyd-Steinberg dithering.
type GIFEncoder struct{}

func (e *GIFEncoder) Encode(ctx context.Context, job EncodeJob) error {
	if len(job.Frames) == 0 {
		return errors.New("no frames to encode")
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(job.Frames)),
		Delay:     make([]int, 0, len(job.Frames)),
		LoopCount: 0,
	}
	for _, f := range job.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		pimg := image.NewPaletted(f.Image.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), f.Image, f.Image.Bounds().Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, job.Delay)
	}

	file, err := os.Create(job.Output)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := gif.EncodeAll(file, out); err != nil {
		file.Close()
		return fmt.Errorf("encoding gif: %w", err)
	}
	return file.Close()
}

// ConvertEncoder shells out to ImageMagick with the frame files.
type ConvertEncoder struct {
	Binary string
}

func (e *ConvertEncoder) Args(job EncodeJob) []string {
	args := []string{"-delay", strconv.Itoa(job.Delay), "-loop", "0"}
	args = append(args, job.FramePaths...)
	return append(args, job.Output)
}

func (e *ConvertEncoder) Encode(ctx context.Context, job EncodeJob) error {
	if len(job.FramePaths) == 0 {
		return errors.New("no frame files to encode")
	}
	bin := e.Binary
	if bin == "" {
		bin = "convert"
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, e.Args(job)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", bin, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
