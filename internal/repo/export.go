package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/store"
)

// FetchAll returns every routine with its exercises fully populated,
// unfiltered and unpaginated, for exporters. Routines come in id order;
// exercises keep their insertion order.
func (r *RoutineRepo) FetchAll(ctx context.Context) ([]models.Routine, error) {
	query, args, err := psql.Select(routineColumns).
		From("rutinas").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	routines := []models.Routine{}
	if err := r.db.SelectContext(ctx, &routines, query, args...); err != nil {
		return nil, store.ParsePQError(err, "FetchRoutines", "rutinas")
	}

	query, args, err = psql.Select(exerciseColumns).
		From("ejercicios").
		OrderBy("rutina_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	exercises := []models.Exercise{}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, store.ParsePQError(err, "FetchExercises", "ejercicios")
	}

	byRoutine := make(map[int64]int, len(routines))
	for i := range routines {
		byRoutine[routines[i].ID] = i
	}
	for _, ex := range exercises {
		if i, ok := byRoutine[ex.RoutineID]; ok {
			routines[i].Exercises = append(routines[i].Exercises, ex)
		}
	}

	return routines, nil
}

// ExportRow is one line of the flattened routine×exercise view consumed
// by exporters. The field set and its order are a compatibility
// contract; optional values flatten to empty strings.
type ExportRow struct {
	RoutineID   int64
	Name        string
	Description string
	CreatedAt   time.Time
	Exercise    string
	Weekday     string
	Sets        string
	Reps        string
	Weight      string
	Notes       string
	Order       string
}

// Flatten expands routines into export rows, one per routine×exercise
// pair. A routine without exercises still contributes one row with the
// exercise columns empty.
func Flatten(routines []models.Routine) []ExportRow {
	rows := []ExportRow{}
	for _, rt := range routines {
		base := ExportRow{
			RoutineID: rt.ID,
			Name:      rt.Name,
			CreatedAt: rt.CreatedAt,
		}
		if rt.Description != nil {
			base.Description = *rt.Description
		}

		if len(rt.Exercises) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, ex := range rt.Exercises {
			row := base
			row.Exercise = ex.Name
			row.Weekday = ex.Weekday.String()
			row.Sets = strconv.Itoa(ex.Sets)
			row.Reps = strconv.Itoa(ex.Reps)
			if ex.Weight != nil {
				row.Weight = strconv.FormatFloat(*ex.Weight, 'f', -1, 64)
			}
			if ex.Notes != nil {
				row.Notes = *ex.Notes
			}
			if ex.Order != nil {
				row.Order = strconv.Itoa(*ex.Order)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
