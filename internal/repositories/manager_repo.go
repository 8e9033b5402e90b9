package repositories

import (
	"context"
	"errors"
	"fmt"

	"usersvc/internal/models"

	"github.com/jackc/pgx/v5"
)

type ManagerRepository interface {
	Create(ctx context.Context, manager *models.Manager) error
	IsActive(ctx context.Context, managerID string) (bool, error)
	Count(ctx context.Context) (int, error)
	ListActive(ctx context.Context) ([]*models.Manager, error)
}

type managerRepo struct {
	db Database
}

// NewManagerRepo returns the PostgreSQL manager repository.
func NewManagerRepo(db Database) ManagerRepository {
	return &managerRepo{db: db}
}

func (r *managerRepo) Create(ctx context.Context, manager *models.Manager) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO managers (manager_id, is_active) VALUES ($1, TRUE)`, manager.ID); err != nil {
		return fmt.Errorf("insert manager: %w", err)
	}
	manager.IsActive = true
	return nil
}

func (r *managerRepo) IsActive(ctx context.Context, managerID string) (bool, error) {
	var id string
	err := r.db.QueryRow(ctx, `SELECT manager_id FROM managers WHERE manager_id = $1 AND is_active = TRUE`, managerID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup manager: %w", err)
	}
	return true, nil
}

func (r *managerRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM managers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count managers: %w", err)
	}
	return count, nil
}

func (r *managerRepo) ListActive(ctx context.Context) ([]*models.Manager, error) {
	rows, err := r.db.Query(ctx, `SELECT manager_id, is_active FROM managers WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("select managers: %w", err)
	}
	defer rows.Close()

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
