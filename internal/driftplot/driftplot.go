// Package driftplot records how far each frame's mesh was from its
// original pose before reset, and reports it as a summary and a plot.
package driftplot

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	glbgif "github.com/TooManyMatts/glb-to-gif"
)

// Recorder collects per-frame stats. It implements glbgif.Observer.
type Recorder struct {
	mu    sync.Mutex
	stats []glbgif.FrameStats
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ObserveFrame(s glbgif.FrameStats) {
	r.mu.Lock()
	r.stats = append(r.stats, s)
	r.mu.Unlock()
}

func (r *Recorder) Stats() []glbgif.FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]glbgif.FrameStats, len(r.stats))
	copy(out, r.stats)
	return out
}

// Summary aggregates a run.
type Summary struct {
	Frames        int
	MaxDeviation  float64
	MeanDeviation float64
	MeanElapsed   time.Duration
	StdDevElapsed time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("%d frames, deviation max %g mean %g, %v ± %v per frame",
		s.Frames, s.MaxDeviation, s.MeanDeviation, s.MeanElapsed, s.StdDevElapsed)
}

func (r *Recorder) Summary() Summary {
	stats := r.Stats()
	if len(stats) == 0 {
		return Summary{}
	}
	deviation := make([]float64, len(stats))
	elapsed := make([]float64, len(stats))
	for i, s := range stats {
		deviation[i] = s.Deviation
		elapsed[i] = float64(s.Elapsed)
	}
	sum := Summary{
		Frames:        len(stats),
		MaxDeviation:  floats.Max(deviation),
		MeanDeviation: stat.Mean(deviation, nil),
		MeanElapsed:   time.Duration(stat.Mean(elapsed, nil)),
	}
	if len(stats) > 1 {
		sum.StdDevElapsed = time.Duration(stat.StdDev(elapsed, nil))
	}
	return sum
}

var errNoFrames = errors.New("no frames recorded")

// Save plots deviation against frame index to path. The format follows
// the file extension.
func (r *Recorder) Save(path string) error {
	stats := r.Stats()
	if len(stats) == 0 {
		return errNoFrames
	}

	p := plot.New()
	p.Title.Text = "Pose round-trip deviation"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "max deviation before reset"

	pts := make(plotter.XYs, len(stats))
	for i, s := range stats {
		pts[i] = plotter.XY{X: float64(s.Index), Y: s.Deviation}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving drift plot: %w", err)
	}
	return nil
}
