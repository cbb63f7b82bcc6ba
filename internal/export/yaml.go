package export

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/leochaparro05/rutinas/internal/models"
)

// Snapshot is the full-data export envelope.
type Snapshot struct {
	Version    string                   `yaml:"version"`
	ExportedAt time.Time                `yaml:"exported_at"`
	Tool       string                   `yaml:"tool"`
	Routines   []models.Routine         `yaml:"rutinas"`
	Plans      []models.PlanWithRoutine `yaml:"planificaciones"`
}

// NewSnapshot wraps the fetched data in a versioned envelope.
func NewSnapshot(routines []models.Routine, plans []models.PlanWithRoutine) *Snapshot {
	return &Snapshot{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "rutinas",
		Routines:   routines,
		Plans:      plans,
	}
}

// WriteYAML renders the snapshot as YAML.
func WriteYAML(w io.Writer, snap *Snapshot) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(snap)
}
