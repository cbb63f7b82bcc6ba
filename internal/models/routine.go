package models

import "time"

// Routine is a named, owned collection of exercises. Names are unique
// across all routines; the unique index on rutinas.nombre is the
// authoritative enforcement.
type Routine struct {
	ID          int64     `db:"id" json:"id" yaml:"id"`
	Name        string    `db:"nombre" json:"nombre" yaml:"nombre"`
	Description *string   `db:"descripcion" json:"descripcion,omitempty" yaml:"descripcion,omitempty"`
	CreatedAt   time.Time `db:"creado_en" json:"creado_en" yaml:"creado_en"`

	// Exercises is populated by reads that load the full routine; list
	// queries leave it nil.
	Exercises []Exercise `db:"-" json:"ejercicios" yaml:"ejercicios"`
}
