package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"usersvc/internal/models"
)

type sqliteManagerRepo struct {
	db *sql.DB
}

// NewSQLiteManagerRepo returns the SQLite manager repository.
func NewSQLiteManagerRepo(db *sql.DB) ManagerRepository {
	return &sqliteManagerRepo{db: db}
}

func (r *sqliteManagerRepo) Create(ctx context.Context, manager *models.Manager) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO managers (manager_id, is_active) VALUES (?, 1)`, manager.ID); err != nil {
		return fmt.Errorf("insert manager: %w", err)
	}
	manager.IsActive = true
	return nil
}

func (r *sqliteManagerRepo) IsActive(ctx context.Context, managerID string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT manager_id FROM managers WHERE manager_id = ? AND is_active = 1`, managerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup manager: %w", err)
	}
	return true, nil
}

func (r *sqliteManagerRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM managers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count managers: %w", err)
	}
	return count, nil
}

func (r *sqliteManagerRepo) ListActive(ctx context.Context) ([]*models.Manager, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT manager_id, is_active FROM managers WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("select managers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	managers := []*models.Manager{}
	for rows.Next() {
		m := &models.Manager{}
		if err := rows.Scan(&m.ID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("scan manager: %w", err)
		}
		managers = append(managers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate managers: %w", err)
	}
	return managers, nil
}
