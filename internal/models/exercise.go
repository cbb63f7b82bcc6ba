package models

// Exercise is a single prescribed movement owned by exactly one routine.
// RoutineID is set at creation and never reassigned; deleting the parent
// routine cascades to its exercises.
type Exercise struct {
	ID        int64    `db:"id" json:"id" yaml:"id"`
	RoutineID int64    `db:"rutina_id" json:"rutina_id" yaml:"rutina_id"`
	Name      string   `db:"nombre" json:"nombre" yaml:"nombre"`
	Weekday   Weekday  `db:"dia_semana" json:"dia_semana" yaml:"dia_semana"`
	Sets      int      `db:"series" json:"series" yaml:"series"`
	Reps      int      `db:"repeticiones" json:"repeticiones" yaml:"repeticiones"`
	Weight    *float64 `db:"peso" json:"peso,omitempty" yaml:"peso,omitempty"`
	Notes     *string  `db:"notas" json:"notas,omitempty" yaml:"notas,omitempty"`
	Order     *int     `db:"orden" json:"orden,omitempty" yaml:"orden,omitempty"`
}
