package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/store"
)

// RoutineCount is one entry of the top-routines ranking.
type RoutineCount struct {
	ID            int64  `db:"id" json:"id" yaml:"id"`
	Name          string `db:"nombre" json:"nombre" yaml:"nombre"`
	ExerciseCount int    `db:"total_ejercicios" json:"total_ejercicios" yaml:"total_ejercicios"`
}

// WeekdayCount is one bucket of the weekday histogram.
type WeekdayCount struct {
	Weekday models.Weekday `db:"dia_semana" json:"dia_semana" yaml:"dia_semana"`
	Count   int            `db:"total" json:"total" yaml:"total"`
}

// Stats is the aggregate snapshot over all routines and exercises.
type Stats struct {
	TotalRoutines  int            `json:"total_rutinas" yaml:"total_rutinas"`
	TotalExercises int            `json:"total_ejercicios" yaml:"total_ejercicios"`
	TopRoutines    []RoutineCount `json:"top_rutinas" yaml:"top_rutinas"`
	Weekdays       []WeekdayCount `json:"dias_mas_entrenados" yaml:"dias_mas_entrenados"`
}

// StatsAggregator runs read-only aggregate queries.
type StatsAggregator struct {
	db *sqlx.DB
}

func NewStatsAggregator(db *sqlx.DB) *StatsAggregator {
	return &StatsAggregator{db: db}
}

// topRoutinesLimit caps the ranking at the five busiest routines.
const topRoutinesLimit = 5

// Compute gathers full-table counts, the top routines by exercise count
// (ties broken by name, routines without exercises excluded) and the
// per-weekday exercise histogram ordered by descending count.
func (a *StatsAggregator) Compute(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		TopRoutines: []RoutineCount{},
		Weekdays:    []WeekdayCount{},
	}

	if err := a.db.GetContext(ctx, &stats.TotalRoutines, "SELECT COUNT(*) FROM rutinas"); err != nil {
		return nil, store.ParsePQError(err, "CountRoutines", "rutinas")
	}
	if err := a.db.GetContext(ctx, &stats.TotalExercises, "SELECT COUNT(*) FROM ejercicios"); err != nil {
		return nil, store.ParsePQError(err, "CountExercises", "ejercicios")
	}

	query, args, err := psql.Select("r.id", "r.nombre", "COUNT(e.id) AS total_ejercicios").
		From("rutinas r").
		Join("ejercicios e ON e.rutina_id = r.id").
		GroupBy("r.id", "r.nombre").
		OrderBy("total_ejercicios DESC", "r.nombre ASC").
		Limit(topRoutinesLimit).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := a.db.SelectContext(ctx, &stats.TopRoutines, query, args...); err != nil {
		return nil, store.ParsePQError(err, "TopRoutines", "rutinas")
	}

	query, args, err = psql.Select("dia_semana", "COUNT(*) AS total").
		From("ejercicios").
		GroupBy("dia_semana").
		OrderBy("total DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := a.db.SelectContext(ctx, &stats.Weekdays, query, args...); err != nil {
		return nil, store.ParsePQError(err, "WeekdayHistogram", "ejercicios")
	}

	return stats, nil
}
