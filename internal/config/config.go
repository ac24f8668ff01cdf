// Package config handles the glb-to-gif settings.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	glbgif "github.com/TooManyMatts/glb-to-gif"
)

// Config holds every setting of a run.
type Config struct {
	InputPath string          `yaml:"input_path"`
	Animation AnimationConfig `yaml:"animation"`
	Render    RenderConfig    `yaml:"render"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig holds revolution and worker settings.
type AnimationConfig struct {
	Frames      int     `yaml:"frames"`
	Delay       int     `yaml:"delay"`
	Size        int     `yaml:"size"`
	Supersample int     `yaml:"supersample"`
	Workers     int     `yaml:"workers"`
	Tolerance   float64 `yaml:"tolerance"`
}

// RenderConfig holds the look of each frame.
type RenderConfig struct {
	Shading    string `yaml:"shading"`
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
	Outline    bool   `yaml:"outline"`
	Wireframe  bool   `yaml:"wireframe"`
	Fit        bool   `yaml:"fit"`
}

// MeshConfig holds preprocessing applied after loading.
type MeshConfig struct {
	// Simplify keeps this fraction of faces; 1 disables decimation.
	Simplify float64 `yaml:"simplify"`
}

// OutputConfig holds where results go.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Encoder     string `yaml:"encoder"`
	ConvertPath string `yaml:"convert_path"`
	KeepFrames  bool   `yaml:"keep_frames"`
	DriftPlot   bool   `yaml:"drift_plot"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			Frames:      128,
			Delay:       10,
			Size:        512,
			Supersample: 1,
			Workers:     1,
			Tolerance:   glbgif.DefaultTolerance,
		},
		Render: RenderConfig{
			Shading:    glbgif.ShadingPhong,
			Color:      "#b4b4b4",
			Background: "#000000",
		},
		Mesh: MeshConfig{
			Simplify: 1,
		},
		Output: OutputConfig{
			Encoder:     glbgif.EncoderBuiltin,
			ConvertPath: "convert",
			KeepFrames:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func invalid(field, format string, args ...interface{}) error {
	return &glbgif.ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate reports the first unusable setting as a *glbgif.ConfigError.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return invalid("input_path", "is required")
	}
	if err := c.AnimationSpec().Validate(); err != nil {
		return err
	}
	if c.Animation.Workers < 0 {
		return invalid("workers", "must not be negative, got %d", c.Animation.Workers)
	}
	if c.Animation.Tolerance < 0 {
		return invalid("tolerance", "must not be negative, got %g", c.Animation.Tolerance)
	}
	if c.Mesh.Simplify <= 0 || c.Mesh.Simplify > 1 {
		return invalid("simplify", "must be in (0, 1], got %g", c.Mesh.Simplify)
	}
	if _, err := glbgif.NewEncoder(c.Output.Encoder); err != nil {
		return err
	}
	if c.Output.Encoder == glbgif.EncoderConvert && !c.Output.KeepFrames {
		return invalid("keep_frames", "the convert encoder reads frame files")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging level", "unknown level %q", c.Logging.Level)
	}
	_, err := c.RenderOptions()
	return err
}

// AnimationSpec returns the revolution settings.
func (c *Config) AnimationSpec() glbgif.AnimationSpec {
	return glbgif.AnimationSpec{
		Frames: c.Animation.Frames,
		Delay:  c.Animation.Delay,
		Size:   c.Animation.Size,
	}
}

// RenderOptions converts the render section, parsing its colors.
func (c *Config) RenderOptions() (glbgif.RenderOptions, error) {
	opts := glbgif.DefaultRenderOptions()
	color, err := glbgif.ParseHexColor(c.Render.Color)
	if err != nil {
		return opts, invalid("color", "%v", err)
	}
	background, err := glbgif.ParseHexColor(c.Render.Background)
	if err != nil {
		return opts, invalid("background", "%v", err)
	}
	opts.Size = c.Animation.Size
	opts.Supersample = c.Animation.Supersample
	opts.Shading = c.Render.Shading
	opts.Color = color
	opts.Background = background
	opts.Outline = c.Render.Outline
	opts.Wireframe = c.Render.Wireframe
	opts.Fit = c.Render.Fit
	return opts, opts.Validate()
}

// OutputDir is Output.Dir, or "<input name>_output" when unset.
func (c *Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	base := filepath.Base(c.InputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_output"
}

func (c *Config) FramesDir() string {
	return filepath.Join(c.OutputDir(), "frames")
}

func (c *Config) GIFPath() string {
	return filepath.Join(c.OutputDir(), "spinning.gif")
}
