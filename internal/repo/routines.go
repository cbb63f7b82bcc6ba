package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/leochaparro05/rutinas/internal/logger"
	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/store"
)

const routineColumns = "id, nombre, descripcion, creado_en"

// ListFilter narrows and pages the routine listing. When Weekday or
// ExerciseName is set, only routines having at least one matching
// exercise are returned, each exactly once.
type ListFilter struct {
	Limit        int
	Offset       int
	Weekday      *models.Weekday
	ExerciseName string
}

func (f ListFilter) filtered() bool {
	return f.Weekday != nil || f.ExerciseName != ""
}

// CreateRoutine is the payload for routine creation, optionally carrying
// the initial exercise batch.
type CreateRoutine struct {
	Name        string          `yaml:"nombre" json:"nombre"`
	Description *string         `yaml:"descripcion" json:"descripcion"`
	Exercises   []ExerciseInput `yaml:"ejercicios" json:"ejercicios"`
}

// Validate fails fast, before any write: every violation across the
// routine and its initial exercises is reported at once.
func (in CreateRoutine) Validate() error {
	var errs store.ValidationErrors
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, store.ValidationError{Field: "nombre", Message: "must not be empty"})
	}
	for i, ex := range in.Exercises {
		if err := ex.Validate(); err != nil {
			if nested, ok := err.(store.ValidationErrors); ok {
				for _, v := range nested {
					v.Field = fmt.Sprintf("ejercicios[%d].%s", i, v.Field)
					errs = append(errs, v)
				}
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UpdateRoutine is a partial update; only non-nil fields change.
type UpdateRoutine struct {
	Name        *string
	Description *string
}

// RoutineRepo provides routine persistence and the duplication flow.
type RoutineRepo struct {
	db *sqlx.DB
}

func NewRoutineRepo(db *sqlx.DB) *RoutineRepo {
	return &RoutineRepo{db: db}
}

// List returns one page of routines, newest first, along with the total
// count of distinct routines matching the same filter. The total is
// independent of Limit/Offset.
func (r *RoutineRepo) List(ctx context.Context, f ListFilter) ([]models.Routine, int, error) {
	sel := psql.Select("r.id", "r.nombre", "r.descripcion", "r.creado_en").From("rutinas r")
	cnt := psql.Select("COUNT(DISTINCT r.id)").From("rutinas r")

	if f.filtered() {
		sel = sel.Distinct().Join("ejercicios e ON e.rutina_id = r.id")
		cnt = cnt.Join("ejercicios e ON e.rutina_id = r.id")
		if f.Weekday != nil {
			sel = sel.Where(squirrel.Eq{"e.dia_semana": *f.Weekday})
			cnt = cnt.Where(squirrel.Eq{"e.dia_semana": *f.Weekday})
		}
		if f.ExerciseName != "" {
			pattern := "%" + f.ExerciseName + "%"
			sel = sel.Where(squirrel.ILike{"e.nombre": pattern})
			cnt = cnt.Where(squirrel.ILike{"e.nombre": pattern})
		}
	}

	sel = sel.OrderBy("r.creado_en DESC")
	if f.Limit > 0 {
		sel = sel.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		sel = sel.Offset(uint64(f.Offset))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, err
	}
	items := []models.Routine{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, store.ParsePQError(err, "ListRoutines", "rutinas")
	}

	query, args, err = cnt.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return nil, 0, store.ParsePQError(err, "CountRoutines", "rutinas")
	}

	return items, total, nil
}

// Get returns a routine by id with its exercises populated in insertion
// order.
func (r *RoutineRepo) Get(ctx context.Context, id int64) (*models.Routine, error) {
	query, args, err := psql.Select(routineColumns).
		From("rutinas").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rt models.Routine
	if err := r.db.GetContext(ctx, &rt, query, args...); err != nil {
		return nil, store.ParsePQError(err, "GetRoutine", "rutinas")
	}

	exercises, err := r.exercisesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rt.Exercises = exercises
	return &rt, nil
}

// Search returns routines whose name contains pattern, case-insensitive,
// ordered alphabetically.
func (r *RoutineRepo) Search(ctx context.Context, pattern string) ([]models.Routine, error) {
	query, args, err := psql.Select(routineColumns).
		From("rutinas").
		Where(squirrel.ILike{"nombre": "%" + pattern + "%"}).
		OrderBy("nombre ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	items := []models.Routine{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, store.ParsePQError(err, "SearchRoutines", "rutinas")
	}
	return items, nil
}

// Create inserts a routine and its initial exercises in one transaction.
// A name collision rolls everything back and surfaces as a duplicate-key
// conflict. Exercises without an explicit order get their batch index.
func (r *RoutineRepo) Create(ctx context.Context, in CreateRoutine) (*models.Routine, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var rt models.Routine
	err := store.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		created, err := insertRoutine(ctx, tx, in.Name, in.Description)
		if err != nil {
			return err
		}
		rt = *created
		for i, ex := range in.Exercises {
			idx := i
			inserted, err := insertExercise(ctx, tx, rt.ID, ex, &idx)
			if err != nil {
				return err
			}
			rt.Exercises = append(rt.Exercises, *inserted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Repo().Debug("created routine %d (%q) with %d exercises", rt.ID, rt.Name, len(rt.Exercises))
	return &rt, nil
}

// Update changes only the supplied fields; a name collision surfaces as
// a duplicate-key conflict.
func (r *RoutineRepo) Update(ctx context.Context, id int64, upd UpdateRoutine) (*models.Routine, error) {
	if upd.Name == nil && upd.Description == nil {
		return r.Get(ctx, id)
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, store.ValidationError{Field: "nombre", Message: "must not be empty"}
	}

	b := psql.Update("rutinas").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + routineColumns)
	if upd.Name != nil {
		b = b.Set("nombre", *upd.Name)
	}
	if upd.Description != nil {
		b = b.Set("descripcion", *upd.Description)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var rt models.Routine
	if err := r.db.GetContext(ctx, &rt, query, args...); err != nil {
		return nil, store.ParsePQError(err, "UpdateRoutine", "rutinas")
	}

	exercises, err := r.exercisesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rt.Exercises = exercises
	return &rt, nil
}

// Delete removes a routine; its exercises and scheduled plans go with it
// through the storage-level cascade.
func (r *RoutineRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("rutinas").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return store.ParsePQError(err, "DeleteRoutine", "rutinas")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &store.Error{Op: "DeleteRoutine", Table: "rutinas", Err: store.ErrNotFound}
	}
	return nil
}

// copyAttempts bounds the retry loop for auto-generated copy names. Two
// concurrent duplications can compute the same candidate; the unique
// index rejects one, which then regenerates against the fresh name set.
const copyAttempts = 3

// Duplicate copies a routine and all its exercises. With newName nil the
// copy name comes from the disambiguator; an explicitly supplied name is
// used verbatim and a collision on it is not retried.
//
// The routine insert commits on its own; if a subsequent exercise copy
// fails, the new routine stays behind with a partial exercise set and
// the error reports which routine was affected.
func (r *RoutineRepo) Duplicate(ctx context.Context, id int64, newName *string) (*models.Routine, error) {
	src, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	attempts := 1
	if newName == nil {
		attempts = copyAttempts
	}

	var dup *models.Routine
	for attempt := 0; attempt < attempts; attempt++ {
		name := ""
		if newName != nil {
			name = *newName
		} else {
			name, err = r.nextCopyName(ctx, src.Name)
			if err != nil {
				return nil, err
			}
		}

		dup, err = insertRoutine(ctx, r.db, name, src.Description)
		if err == nil {
			break
		}
		if newName != nil || !store.IsConflict(err) {
			return nil, err
		}
		logger.Repo().Debug("copy name %q already taken, retrying", name)
	}
	if err != nil {
		return nil, err
	}

	for _, ex := range src.Exercises {
		in := ExerciseInput{
			Name:    ex.Name,
			Weekday: ex.Weekday,
			Sets:    ex.Sets,
			Reps:    ex.Reps,
			Weight:  ex.Weight,
			Notes:   ex.Notes,
			Order:   ex.Order,
		}
		inserted, err := insertExercise(ctx, r.db, dup.ID, in, nil)
		if err != nil {
			return nil, fmt.Errorf("routine %d created but exercise copy failed: %w", dup.ID, err)
		}
		dup.Exercises = append(dup.Exercises, *inserted)
	}

	logger.Repo().Debug("duplicated routine %d into %d (%q)", id, dup.ID, dup.Name)
	return dup, nil
}

func (r *RoutineRepo) exercisesFor(ctx context.Context, routineID int64) ([]models.Exercise, error) {
	query, args, err := psql.Select(exerciseColumns).
		From("ejercicios").
		Where(squirrel.Eq{"rutina_id": routineID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	exercises := []models.Exercise{}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, store.ParsePQError(err, "ListExercises", "ejercicios")
	}
	return exercises, nil
}

// insertRoutine writes a single routine row, returning the stored record
// with its assigned id and creation timestamp.
func insertRoutine(ctx context.Context, q sqlx.ExtContext, name string, description *string) (*models.Routine, error) {
	query, args, err := psql.Insert("rutinas").
		Columns("nombre", "descripcion").
		Values(name, description).
		Suffix("RETURNING " + routineColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rt models.Routine
	if err := sqlx.GetContext(ctx, q, &rt, query, args...); err != nil {
		return nil, store.ParsePQError(err, "CreateRoutine", "rutinas")
	}
	return &rt, nil
}
