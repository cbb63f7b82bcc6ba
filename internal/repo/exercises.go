package repo

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/store"
)

// psql builds every query in this package with $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const exerciseColumns = "id, rutina_id, nombre, dia_semana, series, repeticiones, peso, notas, orden"

// ExerciseInput is the payload for creating an exercise. The transport
// layer has already checked field presence and primitive types; the
// domain constraints (positivity, non-empty name, closed weekday set)
// are enforced here.
type ExerciseInput struct {
	Name    string         `yaml:"nombre" json:"nombre"`
	Weekday models.Weekday `yaml:"dia_semana" json:"dia_semana"`
	Sets    int            `yaml:"series" json:"series"`
	Reps    int            `yaml:"repeticiones" json:"repeticiones"`
	Weight  *float64       `yaml:"peso" json:"peso"`
	Notes   *string        `yaml:"notas" json:"notas"`
	Order   *int           `yaml:"orden" json:"orden"`
}

// Validate applies the domain rules before any write is attempted.
func (in ExerciseInput) Validate() error {
	var errs store.ValidationErrors
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, store.ValidationError{Field: "nombre", Message: "must not be empty"})
	}
	if !in.Weekday.Valid() {
		errs = append(errs, store.ValidationError{Field: "dia_semana", Message: "must be one of the seven weekdays"})
	}
	if in.Sets <= 0 {
		errs = append(errs, store.ValidationError{Field: "series", Message: "must be greater than zero"})
	}
	if in.Reps <= 0 {
		errs = append(errs, store.ValidationError{Field: "repeticiones", Message: "must be greater than zero"})
	}
	if in.Weight != nil && *in.Weight <= 0 {
		errs = append(errs, store.ValidationError{Field: "peso", Message: "must be greater than zero"})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ExerciseUpdate is a partial update; only non-nil fields change.
type ExerciseUpdate struct {
	Name    *string
	Weekday *models.Weekday
	Sets    *int
	Reps    *int
	Weight  *float64
	Notes   *string
	Order   *int
}

func (u ExerciseUpdate) validate() error {
	var errs store.ValidationErrors
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, store.ValidationError{Field: "nombre", Message: "must not be empty"})
	}
	if u.Weekday != nil && !u.Weekday.Valid() {
		errs = append(errs, store.ValidationError{Field: "dia_semana", Message: "must be one of the seven weekdays"})
	}
	if u.Sets != nil && *u.Sets <= 0 {
		errs = append(errs, store.ValidationError{Field: "series", Message: "must be greater than zero"})
	}
	if u.Reps != nil && *u.Reps <= 0 {
		errs = append(errs, store.ValidationError{Field: "repeticiones", Message: "must be greater than zero"})
	}
	if u.Weight != nil && *u.Weight <= 0 {
		errs = append(errs, store.ValidationError{Field: "peso", Message: "must be greater than zero"})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (u ExerciseUpdate) empty() bool {
	return u.Name == nil && u.Weekday == nil && u.Sets == nil &&
		u.Reps == nil && u.Weight == nil && u.Notes == nil && u.Order == nil
}

// ExerciseRepo provides exercise persistence scoped to a parent routine.
type ExerciseRepo struct {
	db *sqlx.DB
}

func NewExerciseRepo(db *sqlx.DB) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

// Create inserts an exercise owned by routineID. When the input carries
// no explicit order, defaultOrder is used (batch creation passes the
// insertion index); a nil defaultOrder leaves the order unset. A
// routineID that references no routine fails at the foreign-key level.
func (r *ExerciseRepo) Create(ctx context.Context, routineID int64, in ExerciseInput, defaultOrder *int) (*models.Exercise, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return insertExercise(ctx, r.db, routineID, in, defaultOrder)
}

// Get returns an exercise by id.
func (r *ExerciseRepo) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	query, args, err := psql.Select(exerciseColumns).
		From("ejercicios").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ex models.Exercise
	if err := r.db.GetContext(ctx, &ex, query, args...); err != nil {
		return nil, store.ParsePQError(err, "GetExercise", "ejercicios")
	}
	return &ex, nil
}

// Update changes only the supplied fields. Positivity rules apply to
// any supplied value; the parent routine is never reassigned.
func (r *ExerciseRepo) Update(ctx context.Context, id int64, upd ExerciseUpdate) (*models.Exercise, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}
	if upd.empty() {
		return r.Get(ctx, id)
	}

	b := psql.Update("ejercicios").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + exerciseColumns)
	if upd.Name != nil {
		b = b.Set("nombre", *upd.Name)
	}
	if upd.Weekday != nil {
		b = b.Set("dia_semana", *upd.Weekday)
	}
	if upd.Sets != nil {
		b = b.Set("series", *upd.Sets)
	}
	if upd.Reps != nil {
		b = b.Set("repeticiones", *upd.Reps)
	}
	if upd.Weight != nil {
		b = b.Set("peso", *upd.Weight)
	}
	if upd.Notes != nil {
		b = b.Set("notas", *upd.Notes)
	}
	if upd.Order != nil {
		b = b.Set("orden", *upd.Order)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var ex models.Exercise
	if err := r.db.GetContext(ctx, &ex, query, args...); err != nil {
		return nil, store.ParsePQError(err, "UpdateExercise", "ejercicios")
	}
	return &ex, nil
}

// Delete removes an exercise by id.
func (r *ExerciseRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("ejercicios").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return store.ParsePQError(err, "DeleteExercise", "ejercicios")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &store.Error{Op: "DeleteExercise", Table: "ejercicios", Err: store.ErrNotFound}
	}
	return nil
}

// insertExercise writes one row through q, which may be a plain
// connection or an open transaction. The caller has already validated
// the input.
func insertExercise(ctx context.Context, q sqlx.ExtContext, routineID int64, in ExerciseInput, defaultOrder *int) (*models.Exercise, error) {
	order := in.Order
	if order == nil {
		order = defaultOrder
	}

	query, args, err := psql.Insert("ejercicios").
		Columns("rutina_id", "nombre", "dia_semana", "series", "repeticiones", "peso", "notas", "orden").
		Values(routineID, in.Name, in.Weekday, in.Sets, in.Reps, in.Weight, in.Notes, order).
		Suffix("RETURNING " + exerciseColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ex models.Exercise
	if err := sqlx.GetContext(ctx, q, &ex, query, args...); err != nil {
		return nil, store.ParsePQError(err, "CreateExercise", "ejercicios")
	}
	return &ex, nil
}
