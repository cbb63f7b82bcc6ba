package models

import "time"

// Plan assigns one routine to one calendar date. At most one plan exists
// per date (unique index on planificaciones.fecha); scheduling an
// occupied date updates the existing row instead of failing.
type Plan struct {
	ID        int64     `db:"id" json:"id" yaml:"id"`
	Date      time.Time `db:"fecha" json:"fecha" yaml:"fecha"`
	RoutineID int64     `db:"rutina_id" json:"rutina_id" yaml:"rutina_id"`
}

// PlanWithRoutine is the calendar read model: a plan joined with the
// name of the routine it schedules.
type PlanWithRoutine struct {
	Plan
	RoutineName string `db:"rutina_nombre" json:"rutina_nombre" yaml:"rutina_nombre"`
}

// PlanDateLayout is the wire format for plan dates.
const PlanDateLayout = "2006-01-02"
