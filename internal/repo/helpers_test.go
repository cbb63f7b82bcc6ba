package repo

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testCreatedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func routineRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nombre", "descripcion", "creado_en"})
}

func exerciseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "rutina_id", "nombre", "dia_semana", "series", "repeticiones", "peso", "notas", "orden",
	})
}

func planRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "fecha", "rutina_id"})
}

func ptr[T any](v T) *T {
	return &v
}
