package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// users.manager_id carries no foreign key. The reference is only checked
// when a user is created.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS managers (
		manager_id TEXT PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		mob_num TEXT NOT NULL,
		pan_num TEXT NOT NULL,
		manager_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS managers (
		manager_id TEXT PRIMARY KEY,
		is_active INTEGER DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		mob_num TEXT NOT NULL,
		pan_num TEXT NOT NULL,
		manager_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		is_active INTEGER DEFAULT 1,
		FOREIGN KEY (manager_id) REFERENCES managers(manager_id)
	)`,
}

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgxmock.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsurePostgresSchema creates the managers and users tables if absent.
func EnsurePostgresSchema(ctx context.Context, db Execer) error {
	for _, stmt := range postgresSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create postgres schema: %w", err)
		}
	}
	return nil
}

// EnsureSQLiteSchema creates the managers and users tables if absent.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create sqlite schema: %w", err)
		}
	}
	return nil
}
