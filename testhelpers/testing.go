package testhelpers

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"usersvc/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the PostgreSQL pool for integration tests
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, creates the schema and empties
// both tables. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.EnsurePostgresSchema(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	truncate := func() error {
		_, err := pool.Exec(ctx, `TRUNCATE users, managers`)
		return err
	}
	if err := truncate(); err != nil {
		pool.Close()
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			defer pool.Close()
			return truncate()
		},
	}
}

// SetupSQLiteDB opens an in-memory SQLite store with the schema applied.
// It is closed when the test ends.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.EnsureSQLiteSchema(ctx, db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// SetupSQLiteManager inserts a manager and returns its id.
func SetupSQLiteManager(t *testing.T, db *sql.DB, active bool) string {
	t.Helper()

	id := uuid.New().String()
	flag := 0
	if active {
		flag = 1
	}
	if _, err := db.Exec(`INSERT INTO managers (manager_id, is_active) VALUES (?, ?)`, id, flag); err != nil {
		t.Fatalf("Failed to create test manager: %v", err)
	}
	return id
}
