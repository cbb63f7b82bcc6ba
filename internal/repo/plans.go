package repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/leochaparro05/rutinas/internal/logger"
	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/store"
)

const planColumns = "id, fecha, rutina_id"

// PlanUpdate is a partial update of a calendar assignment.
type PlanUpdate struct {
	Date      *time.Time
	RoutineID *int64
}

// PlanRepo provides date-keyed calendar persistence. The unique index on
// fecha guarantees at most one plan per date.
type PlanRepo struct {
	db *sqlx.DB
}

func NewPlanRepo(db *sqlx.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

// List returns every plan joined with its routine name, earliest date
// first.
func (r *PlanRepo) List(ctx context.Context) ([]models.PlanWithRoutine, error) {
	query, args, err := psql.Select("p.id", "p.fecha", "p.rutina_id", "r.nombre AS rutina_nombre").
		From("planificaciones p").
		Join("rutinas r ON r.id = p.rutina_id").
		OrderBy("p.fecha ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	plans := []models.PlanWithRoutine{}
	if err := r.db.SelectContext(ctx, &plans, query, args...); err != nil {
		return nil, store.ParsePQError(err, "ListPlans", "planificaciones")
	}
	return plans, nil
}

// Get returns a plan by id.
func (r *PlanRepo) Get(ctx context.Context, id int64) (*models.Plan, error) {
	query, args, err := psql.Select(planColumns).
		From("planificaciones").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Plan
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, store.ParsePQError(err, "GetPlan", "planificaciones")
	}
	return &p, nil
}

// GetByDate returns the plan assigned to date, if any.
func (r *PlanRepo) GetByDate(ctx context.Context, date time.Time) (*models.Plan, error) {
	query, args, err := psql.Select(planColumns).
		From("planificaciones").
		Where(squirrel.Eq{"fecha": date.Format(models.PlanDateLayout)}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Plan
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, store.ParsePQError(err, "GetPlanByDate", "planificaciones")
	}
	return &p, nil
}

// Schedule assigns routineID to date. An occupied date is never an
// error: the existing plan's routine reference is updated in place, so
// the calendar keeps exactly one row per date. The caller is responsible
// for having verified that routineID exists; a stale reference still
// fails at the foreign-key level.
func (r *PlanRepo) Schedule(ctx context.Context, date time.Time, routineID int64) (*models.Plan, error) {
	query, args, err := psql.Insert("planificaciones").
		Columns("fecha", "rutina_id").
		Values(date.Format(models.PlanDateLayout), routineID).
		Suffix("ON CONFLICT (fecha) DO UPDATE SET rutina_id = EXCLUDED.rutina_id RETURNING " + planColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Plan
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, store.ParsePQError(err, "SchedulePlan", "planificaciones")
	}

	logger.Repo().Debug("scheduled routine %d on %s (plan %d)", routineID, date.Format(models.PlanDateLayout), p.ID)
	return &p, nil
}

// Update changes the date and/or routine of an existing plan. Moving a
// plan onto an occupied date surfaces as a duplicate-key conflict.
func (r *PlanRepo) Update(ctx context.Context, id int64, upd PlanUpdate) (*models.Plan, error) {
	if upd.Date == nil && upd.RoutineID == nil {
		return r.Get(ctx, id)
	}

	b := psql.Update("planificaciones").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + planColumns)
	if upd.Date != nil {
		b = b.Set("fecha", upd.Date.Format(models.PlanDateLayout))
	}
	if upd.RoutineID != nil {
		b = b.Set("rutina_id", *upd.RoutineID)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Plan
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, store.ParsePQError(err, "UpdatePlan", "planificaciones")
	}
	return &p, nil
}

// Delete removes a plan from the calendar; the referenced routine is
// untouched.
func (r *PlanRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("planificaciones").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return store.ParsePQError(err, "DeletePlan", "planificaciones")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &store.Error{Op: "DeletePlan", Table: "planificaciones", Err: store.ErrNotFound}
	}
	return nil
}
