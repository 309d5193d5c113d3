package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Схема — ровно три таблицы. Внешний ключ enquiries.program_id
// намеренно не объявлен: заявка с несуществующим курсом сохраняется.
var schema = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS programs (
			id          SERIAL PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS enquiries (
			id           SERIAL PRIMARY KEY,
			name         VARCHAR(100) NOT NULL,
			email        VARCHAR(100) NOT NULL,
			address      TEXT NOT NULL,
			contact_no   VARCHAR(15) NOT NULL,
			program_id   INTEGER NOT NULL,
			enquiry_date TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS enquiries_program_id_idx ON enquiries (program_id)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id       SERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			password VARCHAR(100) NOT NULL
		)`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS programs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        VARCHAR(100) NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS enquiries (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         VARCHAR(100) NOT NULL,
			email        VARCHAR(100) NOT NULL,
			address      TEXT NOT NULL,
			contact_no   VARCHAR(15) NOT NULL,
			program_id   INTEGER NOT NULL,
			enquiry_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS enquiries_program_id_idx ON enquiries (program_id)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(50) NOT NULL UNIQUE,
			password VARCHAR(100) NOT NULL
		)`,
	},
}

// Migrate создаёт таблицы, если их ещё нет.
func Migrate(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	stmts, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("db: no schema for dialect %q", dialect)
	}
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: migrate: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: commit migration: %w", err)
	}
	return nil
}
