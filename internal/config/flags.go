package config

import (
	"flag"
)

// Flags are the command line overrides. Only flags that were set on the
// command line are applied.
type Flags struct {
	fs *flag.FlagSet

	config    *string
	debug     *bool
	inputPath *string
	frames    *int
	delay     *int
	size      *int
	workers   *int
	outputDir *string
	encoder   *string
	shading   *string
	fit       *bool
}

// RegisterFlags defines the flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:        fs,
		config:    fs.String("config", "", "Path to config file"),
		debug:     fs.Bool("debug", false, "Enable debug logging"),
		inputPath: fs.String("input_path", "", "Path to input .glb file"),
		frames:    fs.Int("nr_frames", 128, "Number of frames in the GIF"),
		delay:     fs.Int("delay", 10, "Frame delay for GIF animation"),
		size:      fs.Int("size", 512, "Resolution for output frames (square size)"),
		workers:   fs.Int("workers", 1, "Frames rendered concurrently"),
		outputDir: fs.String("output_dir", "", "Output directory (default <input name>_output)"),
		encoder:   fs.String("encoder", "builtin", "GIF encoder: builtin or convert"),
		shading:   fs.String("shading", "phong", "Shading: phong, toon or solid"),
		fit:       fs.Bool("fit", false, "Widen the field of view to keep the mesh in frame"),
	}
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply copies every flag that was set onto cfg.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "input_path":
			cfg.InputPath = *f.inputPath
		case "nr_frames":
			cfg.Animation.Frames = *f.frames
		case "delay":
			cfg.Animation.Delay = *f.delay
		case "size":
			cfg.Animation.Size = *f.size
		case "workers":
			cfg.Animation.Workers = *f.workers
		case "output_dir":
			cfg.Output.Dir = *f.outputDir
		case "encoder":
			cfg.Output.Encoder = *f.encoder
		case "shading":
			cfg.Render.Shading = *f.shading
		case "fit":
			cfg.Render.Fit = *f.fit
		}
	})
}
