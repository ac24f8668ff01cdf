// Command glb-to-gif renders a mesh file as a looping turntable GIF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	glbgif "github.com/TooManyMatts/glb-to-gif"
	"github.com/TooManyMatts/glb-to-gif/internal/config"
	"github.com/TooManyMatts/glb-to-gif/internal/driftplot"
	"github.com/TooManyMatts/glb-to-gif/internal/logger"
)

func main() {
	cfg, err := config.Load("glb-to-gif", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(2)
	}

	opts := logger.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.File = cfg.Logging.LogFile
	opts.JSON = cfg.Logging.JSON
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger.Log); err != nil {
		logger.Log.Error("glb-to-gif failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run executes one conversion with a validated config.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	mesh, err := glbgif.LoadMesh(cfg.InputPath)
	if err != nil {
		return err
	}
	if f := cfg.Mesh.Simplify; f < 1 {
		before := len(mesh.Faces)
		mesh = mesh.Simplify(f)
		log.Info("mesh simplified", zap.Int("faces_before", before), zap.Int("faces_after", len(mesh.Faces)))
	}

	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	if cfg.Animation.Workers > 1 {
		renderOpts.Workers = 1
	}
	encoder, err := glbgif.NewEncoder(cfg.Output.Encoder)
	if err != nil {
		return err
	}
	if ce, ok := encoder.(*glbgif.ConvertEncoder); ok && cfg.Output.ConvertPath != "" {
		ce.Binary = cfg.Output.ConvertPath
	}

	spec := cfg.AnimationSpec()
	pivot := mesh.Centroid()
	manifest := glbgif.NewManifest(cfg.InputPath, spec, pivot, nil)
	log = log.With(zap.String("run", manifest.RunID))

	loop := glbgif.NewLoop(renderOpts)
	loop.Workers = cfg.Animation.Workers
	loop.Tolerance = cfg.Animation.Tolerance
	loop.Logger = log

	var writer *glbgif.FrameWriter
	if cfg.Output.KeepFrames {
		writer, err = glbgif.NewFrameWriter(cfg.FramesDir())
		if err != nil {
			return err
		}
		loop.Sink = writer
	} else if err := os.MkdirAll(cfg.OutputDir(), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	var drift *driftplot.Recorder
	if cfg.Output.DriftPlot {
		drift = driftplot.NewRecorder()
		loop.Observer = drift
	}

	frames, err := loop.Run(ctx, mesh, spec)
	if err != nil {
		return err
	}

	job := glbgif.EncodeJob{Frames: frames, Delay: spec.Delay, Output: cfg.GIFPath()}
	if writer != nil {
		job.FramePaths = writer.Paths()
	}
	if err := encoder.Encode(ctx, job); err != nil {
		return fmt.Errorf("encode %s: %w", job.Output, err)
	}

	if writer != nil {
		for _, p := range job.FramePaths {
			rel, err := filepath.Rel(cfg.OutputDir(), p)
			if err != nil {
				rel = p
			}
			manifest.Files = append(manifest.Files, rel)
		}
	}
	manifest.Output = filepath.Base(job.Output)
	if err := manifest.Save(filepath.Join(cfg.OutputDir(), "manifest.yaml")); err != nil {
		return err
	}
	if err := cfg.SaveTo(filepath.Join(cfg.OutputDir(), "config.yaml")); err != nil {
		return err
	}

	if drift != nil {
		path := filepath.Join(cfg.OutputDir(), "drift.png")
		if err := drift.Save(path); err != nil {
			return err
		}
		log.Info("drift report", zap.Stringer("summary", drift.Summary()), zap.String("plot", path))
	}

	log.Info("gif written", zap.String("path", job.Output), zap.Int("frames", len(frames)))
	return nil
}
