package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	glbgif "github.com/TooManyMatts/glb-to-gif"
	"github.com/TooManyMatts/glb-to-gif/internal/config"
)

const tetraOBJ = `v 0.3 -0.2 0.1
v -0.4 -0.2 0.2
v 0.1 0.4 -0.1
v 0.0 -0.1 -0.4
f 1 2 3
f 1 4 2
f 2 4 3
f 3 4 1
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tetra.obj")
	require.NoError(t, os.WriteFile(input, []byte(tetraOBJ), 0o644))

	cfg := config.Default()
	cfg.InputPath = input
	cfg.Animation.Frames = 3
	cfg.Animation.Size = 24
	cfg.Animation.Workers = 2
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Output.DriftPlot = true
	require.NoError(t, cfg.Validate())

	require.NoError(t, run(context.Background(), cfg, zap.NewNop()))

	for _, name := range []string{"spinning.gif", "manifest.yaml", "config.yaml", "drift.png", "frames/frame_0002.png"} {
		_, err := os.Stat(filepath.Join(cfg.Output.Dir, name))
		assert.NoError(t, err, name)
	}

	m, err := glbgif.LoadManifest(filepath.Join(cfg.Output.Dir, "manifest.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Frames)
	assert.Equal(t, []string{
		filepath.Join("frames", "frame_0000.png"),
		filepath.Join("frames", "frame_0001.png"),
		filepath.Join("frames", "frame_0002.png"),
	}, m.Files)
	assert.Equal(t, "spinning.gif", m.Output)

	saved, err := config.Load("glb-to-gif", []string{"--config", filepath.Join(cfg.Output.Dir, "config.yaml")})
	require.NoError(t, err)
	assert.Equal(t, cfg, saved)
}

func TestRunWithoutFrames(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tetra.obj")
	require.NoError(t, os.WriteFile(input, []byte(tetraOBJ), 0o644))

	cfg := config.Default()
	cfg.InputPath = input
	cfg.Animation.Frames = 2
	cfg.Animation.Size = 16
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Output.KeepFrames = false

	require.NoError(t, run(context.Background(), cfg, zap.NewNop()))
	_, err := os.Stat(filepath.Join(cfg.Output.Dir, "frames"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "spinning.gif"))
	assert.NoError(t, err)
}

func TestRunMissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.InputPath = filepath.Join(t.TempDir(), "missing.glb")
	cfg.Output.Dir = t.TempDir()
	assert.Error(t, run(context.Background(), cfg, zap.NewNop()))
}
