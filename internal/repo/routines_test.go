package repo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leochaparro05/rutinas/internal/models"
	"github.com/leochaparro05/rutinas/internal/store"
)

func TestRoutineList(t *testing.T) {
	t.Run("unfiltered page ordered by creation date", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT r\.id, r\.nombre, r\.descripcion, r\.creado_en FROM rutinas r ORDER BY r\.creado_en DESC LIMIT 10`).
			WillReturnRows(routineRows().
				AddRow(2, "Espalda", nil, testCreatedAt.Add(1)).
				AddRow(1, "Piernas", "día de pierna", testCreatedAt))
		mock.ExpectQuery(`SELECT COUNT\(DISTINCT r\.id\) FROM rutinas r`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		items, total, err := repo.List(context.Background(), ListFilter{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, 5, total)
		assert.Equal(t, "Espalda", items[0].Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("weekday filter deduplicates and counts independently", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT DISTINCT r\.id, r\.nombre, r\.descripcion, r\.creado_en FROM rutinas r JOIN ejercicios e ON e\.rutina_id = r\.id WHERE e\.dia_semana = \$1 ORDER BY r\.creado_en DESC LIMIT 2`).
			WithArgs("Martes").
			WillReturnRows(routineRows().AddRow(1, "Piernas", nil, testCreatedAt))
		mock.ExpectQuery(`SELECT COUNT\(DISTINCT r\.id\) FROM rutinas r JOIN ejercicios e ON e\.rutina_id = r\.id WHERE e\.dia_semana = \$1`).
			WithArgs("Martes").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		day := models.Tuesday
		items, total, err := repo.List(context.Background(), ListFilter{Limit: 2, Weekday: &day})
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 3, total, "total must ignore the page limit")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("both filters combine with AND", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT DISTINCT .* WHERE e\.dia_semana = \$1 AND e\.nombre ILIKE \$2 ORDER BY r\.creado_en DESC`).
			WithArgs("Lunes", "%press%").
			WillReturnRows(routineRows())
		mock.ExpectQuery(`SELECT COUNT\(DISTINCT r\.id\) .* WHERE e\.dia_semana = \$1 AND e\.nombre ILIKE \$2`).
			WithArgs("Lunes", "%press%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		day := models.Monday
		items, total, err := repo.List(context.Background(), ListFilter{Weekday: &day, ExerciseName: "press"})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, total)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRoutineGet(t *testing.T) {
	t.Run("loads routine with exercises in insertion order", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(routineRows().AddRow(1, "Piernas", "día de pierna", testCreatedAt))
		mock.ExpectQuery(`SELECT id, rutina_id, nombre, dia_semana, series, repeticiones, peso, notas, orden FROM ejercicios WHERE rutina_id = \$1 ORDER BY id ASC`).
			WithArgs(int64(1)).
			WillReturnRows(exerciseRows().
				AddRow(10, 1, "Sentadilla", "Lunes", 4, 12, 80.0, nil, 0).
				AddRow(11, 1, "Prensa", "Lunes", 3, 10, nil, "subir peso", 1))

		rt, err := repo.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Piernas", rt.Name)
		require.Len(t, rt.Exercises, 2)
		assert.Equal(t, "Sentadilla", rt.Exercises[0].Name)
		assert.Equal(t, models.Monday, rt.Exercises[0].Weekday)
		require.NotNil(t, rt.Exercises[0].Weight)
		assert.Equal(t, 80.0, *rt.Exercises[0].Weight)
		assert.Nil(t, rt.Exercises[1].Weight)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing routine is not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		rt, err := repo.Get(context.Background(), 99)
		assert.Nil(t, rt)
		assert.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRoutineSearch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRoutineRepo(db)

	mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE nombre ILIKE \$1 ORDER BY nombre ASC`).
		WithArgs("%pier%").
		WillReturnRows(routineRows().
			AddRow(3, "Piernas", nil, testCreatedAt).
			AddRow(4, "Piernas y glúteos", nil, testCreatedAt))

	items, err := repo.Search(context.Background(), "pier")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Piernas", items[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineCreate(t *testing.T) {
	t.Run("routine and initial exercises commit together", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO rutinas \(nombre,descripcion\) VALUES \(\$1,\$2\) RETURNING id, nombre, descripcion, creado_en`).
			WithArgs("Piernas", "día de pierna").
			WillReturnRows(routineRows().AddRow(1, "Piernas", "día de pierna", testCreatedAt))
		// First exercise has no explicit order: the batch index 0 applies.
		mock.ExpectQuery(`INSERT INTO ejercicios \(rutina_id,nombre,dia_semana,series,repeticiones,peso,notas,orden\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8\) RETURNING`).
			WithArgs(int64(1), "Sentadilla", "Lunes", 4, 12, nil, nil, 0).
			WillReturnRows(exerciseRows().AddRow(10, 1, "Sentadilla", "Lunes", 4, 12, nil, nil, 0))
		// Second exercise carries an explicit order that wins over index 1.
		mock.ExpectQuery(`INSERT INTO ejercicios .* RETURNING`).
			WithArgs(int64(1), "Prensa", "Lunes", 3, 10, nil, nil, 7).
			WillReturnRows(exerciseRows().AddRow(11, 1, "Prensa", "Lunes", 3, 10, nil, nil, 7))
		mock.ExpectCommit()

		rt, err := repo.Create(context.Background(), CreateRoutine{
			Name:        "Piernas",
			Description: ptr("día de pierna"),
			Exercises: []ExerciseInput{
				{Name: "Sentadilla", Weekday: models.Monday, Sets: 4, Reps: 12},
				{Name: "Prensa", Weekday: models.Monday, Sets: 3, Reps: 10, Order: ptr(7)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rt.ID)
		require.Len(t, rt.Exercises, 2)
		assert.Equal(t, 0, *rt.Exercises[0].Order)
		assert.Equal(t, 7, *rt.Exercises[1].Order)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name rolls back with no partial write", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO rutinas`).
			WithArgs("Piernas", nil).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rutinas_nombre"})
		mock.ExpectRollback()

		rt, err := repo.Create(context.Background(), CreateRoutine{Name: "Piernas"})
		assert.Nil(t, rt)
		assert.True(t, store.IsConflict(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid exercise fails before any write", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		rt, err := repo.Create(context.Background(), CreateRoutine{
			Name: "Piernas",
			Exercises: []ExerciseInput{
				{Name: "Sentadilla", Weekday: models.Monday, Sets: 0, Reps: 12},
			},
		})
		assert.Nil(t, rt)
		assert.True(t, store.IsValidation(err))
		assert.Contains(t, err.Error(), "ejercicios[0].series")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty name fails before any write", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		rt, err := repo.Create(context.Background(), CreateRoutine{Name: "   "})
		assert.Nil(t, rt)
		assert.True(t, store.IsValidation(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRoutineUpdate(t *testing.T) {
	t.Run("only supplied fields change", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`UPDATE rutinas SET descripcion = \$1 WHERE id = \$2 RETURNING id, nombre, descripcion, creado_en`).
			WithArgs("nueva descripción", int64(1)).
			WillReturnRows(routineRows().AddRow(1, "Piernas", "nueva descripción", testCreatedAt))
		mock.ExpectQuery(`SELECT id, rutina_id, .* FROM ejercicios WHERE rutina_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(exerciseRows())

		rt, err := repo.Update(context.Background(), 1, UpdateRoutine{Description: ptr("nueva descripción")})
		require.NoError(t, err)
		assert.Equal(t, "Piernas", rt.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("name collision surfaces as conflict", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`UPDATE rutinas SET nombre = \$1 WHERE id = \$2`).
			WithArgs("Espalda", int64(1)).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rutinas_nombre"})

		rt, err := repo.Update(context.Background(), 1, UpdateRoutine{Name: ptr("Espalda")})
		assert.Nil(t, rt)
		assert.True(t, store.IsConflict(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update falls back to a read", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(routineRows().AddRow(1, "Piernas", nil, testCreatedAt))
		mock.ExpectQuery(`SELECT .* FROM ejercicios WHERE rutina_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(exerciseRows())

		rt, err := repo.Update(context.Background(), 1, UpdateRoutine{})
		require.NoError(t, err)
		assert.Equal(t, "Piernas", rt.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank name is a validation error", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		rt, err := repo.Update(context.Background(), 1, UpdateRoutine{Name: ptr(" ")})
		assert.Nil(t, rt)
		assert.True(t, store.IsValidation(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRoutineDelete(t *testing.T) {
	t.Run("existing routine", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectExec(`DELETE FROM rutinas WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing routine is not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectExec(`DELETE FROM rutinas WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRoutineDuplicate(t *testing.T) {
	expectGetPiernas := func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(routineRows().AddRow(1, "Piernas", "día de pierna", testCreatedAt))
		mock.ExpectQuery(`SELECT .* FROM ejercicios WHERE rutina_id = \$1 ORDER BY id ASC`).
			WithArgs(int64(1)).
			WillReturnRows(exerciseRows().
				AddRow(10, 1, "Sentadilla", "Lunes", 4, 12, 80.0, nil, 0).
				AddRow(11, 1, "Prensa", "Lunes", 3, 10, nil, nil, 1))
	}

	t.Run("auto-generated name copies all exercises", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		expectGetPiernas(mock)
		mock.ExpectQuery(`SELECT nombre FROM rutinas WHERE nombre LIKE \$1`).
			WithArgs(`Piernas (copia%`).
			WillReturnRows(sqlmock.NewRows([]string{"nombre"}))
		mock.ExpectQuery(`INSERT INTO rutinas \(nombre,descripcion\) VALUES \(\$1,\$2\) RETURNING`).
			WithArgs("Piernas (copia)", "día de pierna").
			WillReturnRows(routineRows().AddRow(2, "Piernas (copia)", "día de pierna", testCreatedAt))
		mock.ExpectQuery(`INSERT INTO ejercicios .* RETURNING`).
			WithArgs(int64(2), "Sentadilla", "Lunes", 4, 12, 80.0, nil, 0).
			WillReturnRows(exerciseRows().AddRow(20, 2, "Sentadilla", "Lunes", 4, 12, 80.0, nil, 0))
		mock.ExpectQuery(`INSERT INTO ejercicios .* RETURNING`).
			WithArgs(int64(2), "Prensa", "Lunes", 3, 10, nil, nil, 1).
			WillReturnRows(exerciseRows().AddRow(21, 2, "Prensa", "Lunes", 3, 10, nil, nil, 1))

		dup, err := repo.Duplicate(context.Background(), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "Piernas (copia)", dup.Name)
		require.Len(t, dup.Exercises, 2)
		assert.Equal(t, 0, *dup.Exercises[0].Order)
		assert.Equal(t, 1, *dup.Exercises[1].Order)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second duplication gets counter 2", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(routineRows().AddRow(1, "Piernas", nil, testCreatedAt))
		mock.ExpectQuery(`SELECT .* FROM ejercicios WHERE rutina_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(exerciseRows())
		mock.ExpectQuery(`SELECT nombre FROM rutinas WHERE nombre LIKE \$1`).
			WithArgs(`Piernas (copia%`).
			WillReturnRows(sqlmock.NewRows([]string{"nombre"}).AddRow("Piernas (copia)"))
		mock.ExpectQuery(`INSERT INTO rutinas`).
			WithArgs("Piernas (copia 2)", nil).
			WillReturnRows(routineRows().AddRow(3, "Piernas (copia 2)", nil, testCreatedAt))

		dup, err := repo.Duplicate(context.Background(), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "Piernas (copia 2)", dup.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict on generated name regenerates and retries", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(routineRows().AddRow(1, "Piernas", nil, testCreatedAt))
		mock.ExpectQuery(`SELECT .* FROM ejercicios WHERE rutina_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(exerciseRows())
		// A concurrent duplication wins the race for "Piernas (copia)".
		mock.ExpectQuery(`SELECT nombre FROM rutinas WHERE nombre LIKE \$1`).
			WithArgs(`Piernas (copia%`).
			WillReturnRows(sqlmock.NewRows([]string{"nombre"}))
		mock.ExpectQuery(`INSERT INTO rutinas`).
			WithArgs("Piernas (copia)", nil).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rutinas_nombre"})
		mock.ExpectQuery(`SELECT nombre FROM rutinas WHERE nombre LIKE \$1`).
			WithArgs(`Piernas (copia%`).
			WillReturnRows(sqlmock.NewRows([]string{"nombre"}).AddRow("Piernas (copia)"))
		mock.ExpectQuery(`INSERT INTO rutinas`).
			WithArgs("Piernas (copia 2)", nil).
			WillReturnRows(routineRows().AddRow(4, "Piernas (copia 2)", nil, testCreatedAt))

		dup, err := repo.Duplicate(context.Background(), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "Piernas (copia 2)", dup.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit name is used verbatim and not retried", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(routineRows().AddRow(1, "Piernas", nil, testCreatedAt))
		mock.ExpectQuery(`SELECT .* FROM ejercicios WHERE rutina_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(exerciseRows())
		mock.ExpectQuery(`INSERT INTO rutinas`).
			WithArgs("Rutina vieja", nil).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rutinas_nombre"})

		dup, err := repo.Duplicate(context.Background(), 1, ptr("Rutina vieja"))
		assert.Nil(t, dup)
		assert.True(t, store.IsConflict(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing source is not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRoutineRepo(db)

		mock.ExpectQuery(`SELECT id, nombre, descripcion, creado_en FROM rutinas WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		dup, err := repo.Duplicate(context.Background(), 99, nil)
		assert.Nil(t, dup)
		assert.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
