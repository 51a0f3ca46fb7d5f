package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the status enum and all tables when they do not exist yet.
// Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	statusEnum := `
	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_type WHERE typname = 'status_aluno'
		) THEN
			CREATE TYPE status_aluno AS ENUM ('MATRICULADO', 'DESMATRICULADO');
		END IF;
	END $$;
	`
	if _, err := db.ExecContext(ctx, statusEnum); err != nil {
		return fmt.Errorf("create status enum: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(80) UNIQUE NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS classes (
		id         BIGSERIAL PRIMARY KEY,
		nome       VARCHAR(255) UNIQUE NOT NULL,
		professor  VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS alunos (
		id              BIGSERIAL PRIMARY KEY,
		nome            VARCHAR(255) NOT NULL,
		data_nascimento DATE NOT NULL,
		status          status_aluno NOT NULL DEFAULT 'MATRICULADO',
		classe_id       BIGINT NOT NULL REFERENCES classes(id),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS frequencias (
		id             BIGSERIAL PRIMARY KEY,
		classe_id      BIGINT NOT NULL REFERENCES classes(id),
		data           DATE NOT NULL,
		total_biblia   INTEGER NOT NULL DEFAULT 0,
		total_present  INTEGER NOT NULL DEFAULT 0,
		total_absent   INTEGER NOT NULL DEFAULT 0,
		total_visitors INTEGER NOT NULL DEFAULT 0,
		total_general  INTEGER NOT NULL DEFAULT 0,
		presencas      JSONB,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_alunos_classe      ON alunos(classe_id);
	CREATE INDEX IF NOT EXISTS idx_frequencias_classe ON frequencias(classe_id);
	CREATE INDEX IF NOT EXISTS idx_frequencias_data   ON frequencias(data);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
