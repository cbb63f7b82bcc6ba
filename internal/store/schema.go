package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/leochaparro05/rutinas/internal/logger"
)

// schema is the full DDL for the three tables. Statements are idempotent
// so Migrate can run on every startup.
//
// planificaciones.rutina_id cascades on routine deletion: deleting a
// routine removes its scheduled plans along with its exercises.
const schema = `
CREATE TABLE IF NOT EXISTS rutinas (
	id          BIGSERIAL PRIMARY KEY,
	nombre      TEXT NOT NULL,
	descripcion TEXT,
	creado_en   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_rutinas_nombre ON rutinas (nombre);
CREATE INDEX IF NOT EXISTS idx_rutinas_creado_en ON rutinas (creado_en DESC);

CREATE TABLE IF NOT EXISTS ejercicios (
	id           BIGSERIAL PRIMARY KEY,
	rutina_id    BIGINT NOT NULL REFERENCES rutinas (id) ON DELETE CASCADE,
	nombre       TEXT NOT NULL,
	dia_semana   TEXT NOT NULL,
	series       INTEGER NOT NULL CHECK (series > 0),
	repeticiones INTEGER NOT NULL CHECK (repeticiones > 0),
	peso         DOUBLE PRECISION CHECK (peso IS NULL OR peso > 0),
	notas        TEXT,
	orden        INTEGER
);

CREATE INDEX IF NOT EXISTS idx_ejercicios_rutina_id ON ejercicios (rutina_id);
CREATE INDEX IF NOT EXISTS idx_ejercicios_dia_semana ON ejercicios (dia_semana);

CREATE TABLE IF NOT EXISTS planificaciones (
	id        BIGSERIAL PRIMARY KEY,
	fecha     DATE NOT NULL,
	rutina_id BIGINT NOT NULL REFERENCES rutinas (id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_planificaciones_fecha ON planificaciones (fecha);
`

// Migrate provisions the schema, creating tables and indexes that do
// not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return ParsePQError(err, "Migrate", "")
	}
	logger.DB().Debug("schema provisioned")
	return nil
}
