package glbgif

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest records what a run produced so an encoder can be rerun
// without rendering again.
type Manifest struct {
	RunID     string     `yaml:"run_id"`
	Input     string     `yaml:"input"`
	CreatedAt time.Time  `yaml:"created_at"`
	Frames    int        `yaml:"frames"`
	Delay     int        `yaml:"delay"`
	Size      int        `yaml:"size"`
	Loop      bool       `yaml:"loop"`
	Pivot     [3]float64 `yaml:"pivot,flow"`
	Files     []string   `yaml:"files"`
	Output    string     `yaml:"output,omitempty"`
}

func NewManifest(input string, spec AnimationSpec, pivot Vector, files []string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		Input:     input,
		CreatedAt: time.Now().UTC(),
		Frames:    spec.Frames,
		Delay:     spec.Delay,
		Size:      spec.Size,
		Loop:      true,
		Pivot:     [3]float64{pivot.X, pivot.Y, pivot.Z},
		Files:     files,
	}
}

func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if _, err := uuid.Parse(m.RunID); err != nil {
		return nil, fmt.Errorf("manifest %s: bad run id: %w", path, err)
	}
	return m, nil
}
