package glbgif

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnimationSpec holds the per-run animation settings.
type AnimationSpec struct {
	Frames int // frames per revolution
	Delay  int // per-frame delay in hundredths of a second
	Size   int // square frame size in pixels
}

func DefaultAnimationSpec() AnimationSpec {
	return AnimationSpec{Frames: 128, Delay: 10, Size: 512}
}

func (s AnimationSpec) Validate() error {
	if s.Frames < 1 {
		return configErrorf("frames", "must be at least 1, got %d", s.Frames)
	}
	if s.Size < 1 {
		return configErrorf("size", "must be at least 1 pixel, got %d", s.Size)
	}
	if s.Delay < 0 {
		return configErrorf("delay", "must not be negative, got %d", s.Delay)
	}
	return nil
}

// Frame is one rendered step of the revolution.
type Frame struct {
	Index int
	Angle float64
	Image *image.NRGBA
}

// FrameStats describes how one frame was produced.
type FrameStats struct {
	Index     int
	Angle     float64
	Deviation float64 // round-trip pose error before reset
	Elapsed   time.Duration
}

// Observer is notified after each frame, in frame order.
type Observer interface {
	ObserveFrame(FrameStats)
}

// FrameSink receives frames in order as they become final.
type FrameSink interface {
	WriteFrame(Frame) error
}

// RendererFactory builds a renderer producing size x size frames.
type RendererFactory func(size int) (PoseRenderer, error)

// Loop renders a mesh through a full revolution.
type Loop struct {
	// Render configures the default FrameRenderer. Size is taken from
	// the AnimationSpec.
	Render RenderOptions
	// NewRenderer overrides how renderers are built.
	NewRenderer RendererFactory
	// Axis is the rotation axis; zero means AxisY.
	Axis Vector
	// Workers above 1 render from posed copies of the mesh on that many
	// goroutines, each with its own renderer.
	Workers   int
	Tolerance float64
	Sink      FrameSink
	Observer  Observer
	Logger    *zap.Logger
}

func NewLoop(opts RenderOptions) *Loop {
	return &Loop{Render: opts, Axis: AxisY, Workers: 1}
}

func (l *Loop) logger() *zap.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return zap.NewNop()
}

func (l *Loop) axis() Vector {
	if l.Axis.IsZero() {
		return AxisY
	}
	return l.Axis
}

func (l *Loop) newRenderer(size int, mesh *IndexedMesh, pivot Vector) (PoseRenderer, error) {
	if l.NewRenderer != nil {
		return l.NewRenderer(size)
	}
	opts := l.Render
	opts.Size = size
	fr, err := NewFrameRenderer(opts)
	if err != nil {
		return nil, err
	}
	if opts.Fit {
		fr.FitTo(mesh, pivot)
	}
	return fr, nil
}

// Run renders spec.Frames frames of mesh rotating about its centroid and
// returns them in schedule order. The pivot is sampled once, before the
// first frame. An invalid mesh or spec is rejected before any frame is
// rendered. On a render failure no frames are returned and the error
// is a *RenderError naming the frame. mesh is back in its original pose
// when Run returns.
func (l *Loop) Run(ctx context.Context, mesh *IndexedMesh, spec AnimationSpec) ([]Frame, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if l.Workers < 0 {
		return nil, configErrorf("workers", "must not be negative, got %d", l.Workers)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	pivot := mesh.Centroid()
	schedule, err := NewSchedule(spec.Frames, l.axis(), pivot)
	if err != nil {
		return nil, err
	}

	log := l.logger().With(zap.Int("frames", spec.Frames), zap.Int("size", spec.Size))
	log.Info("animation started",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", len(mesh.Faces)),
		zap.Float64s("pivot", []float64{pivot.X, pivot.Y, pivot.Z}),
		zap.Int("workers", l.Workers))
	start := time.Now()

	var frames []Frame
	if l.Workers > 1 && spec.Frames > 1 {
		frames, err = l.runParallel(ctx, mesh, spec, schedule)
	} else {
		frames, err = l.runSequential(ctx, mesh, spec, schedule)
	}
	if err != nil {
		log.Error("animation failed", zap.Error(err))
		return nil, err
	}
	log.Info("animation finished", zap.Duration("elapsed", time.Since(start)))
	return frames, nil
}

func (l *Loop) runSequential(ctx context.Context, mesh *IndexedMesh, spec AnimationSpec, schedule *Schedule) ([]Frame, error) {
	renderer, err := l.newRenderer(spec.Size, mesh, schedule.Pivot())
	if err != nil {
		return nil, err
	}
	guard := &PoseGuard{Tolerance: l.Tolerance}
	frames := make([]Frame, 0, schedule.Len())

	err = schedule.Each(func(i int, t Transform) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		var im *image.NRGBA
		deviation, err := guard.WithPose(mesh, t, func() error {
			var rerr error
			im, rerr = renderer.RenderCurrentPose(mesh)
			if rerr == nil {
				rerr = checkFrameSize(im, spec.Size)
			}
			return rerr
		})
		if err != nil {
			return frameError(i, err)
		}
		frame := Frame{Index: i, Angle: t.Angle, Image: im}
		l.emit(frame, FrameStats{Index: i, Angle: t.Angle, Deviation: deviation, Elapsed: time.Since(start)})
		if l.Sink != nil {
			if err := l.Sink.WriteFrame(frame); err != nil {
				return fmt.Errorf("write frame %d: %w", i, err)
			}
		}
		frames = append(frames, frame)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

// runParallel never mutates mesh: each worker renders posed copies over
// a contiguous index range, and frames are emitted in index order once
// all workers finish.
func (l *Loop) runParallel(ctx context.Context, mesh *IndexedMesh, spec AnimationSpec, schedule *Schedule) ([]Frame, error) {
	n := schedule.Len()
	workers := l.Workers
	if workers > n {
		workers = n
	}
	frames := make([]Frame, n)
	stats := make([]FrameStats, n)
	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			renderer, err := l.newRenderer(spec.Size, mesh, schedule.Pivot())
			if err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				start := time.Now()
				t := schedule.At(i)
				im, err := renderer.RenderCurrentPose(mesh.Posed(t))
				if err == nil {
					err = checkFrameSize(im, spec.Size)
				}
				if err != nil {
					return frameError(i, err)
				}
				frames[i] = Frame{Index: i, Angle: t.Angle, Image: im}
				stats[i] = FrameStats{Index: i, Angle: t.Angle, Elapsed: time.Since(start)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, frame := range frames {
		l.emit(frame, stats[i])
		if l.Sink != nil {
			if err := l.Sink.WriteFrame(frame); err != nil {
				return nil, fmt.Errorf("write frame %d: %w", i, err)
			}
		}
	}
	return frames, nil
}

func (l *Loop) emit(frame Frame, stats FrameStats) {
	l.logger().Debug("frame rendered",
		zap.Int("frame", stats.Index),
		zap.Float64("angle", stats.Angle),
		zap.Float64("deviation", stats.Deviation),
		zap.Duration("elapsed", stats.Elapsed))
	if l.Observer != nil {
		l.Observer.ObserveFrame(stats)
	}
}

func checkFrameSize(im *image.NRGBA, size int) error {
	if im == nil {
		return errors.New("renderer returned no image")
	}
	if b := im.Bounds(); b.Dx() != size || b.Dy() != size {
		return fmt.Errorf("renderer returned %dx%d image, want %dx%d", b.Dx(), b.Dy(), size, size)
	}
	return nil
}

// frameError attaches the frame index. Restoration failures stay fatal
// restoration errors, cancellation passes through, anything else is a
// render error.
func frameError(i int, err error) error {
	var rerr *RestorationError
	if errors.As(err, &rerr) {
		rerr.Frame = i
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &RenderError{Frame: i, Err: err}
}
