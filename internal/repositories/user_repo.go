package repositories

import (
	"context"
	"fmt"

	"usersvc/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Find(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	DeleteByID(ctx context.Context, userID string) (int64, error)
	DeleteByMobile(ctx context.Context, mobNum string) (int64, error)
	Update(ctx context.Context, userID string, patch *models.UserPatch) (int64, error)
	CountActive(ctx context.Context) (int, error)
}

type userRepo struct {
	db Database
}

// NewUserRepo returns the PostgreSQL user repository.
func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, full_name, mob_num, pan_num, manager_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
	`
	if _, err := r.db.Exec(ctx, query, user.ID, user.FullName, user.MobNum, user.PanNum, user.ManagerID); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Find(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	where, args := BuildUserFilter(filter, "TRUE", DollarPlaceholder)
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.FullName, &user.MobNum, &user.PanNum, &user.ManagerID, &user.CreatedAt, &user.UpdatedAt, &user.IsActive); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *userRepo) DeleteByID(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *userRepo) DeleteByMobile(ctx context.Context, mobNum string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE mob_num = $1`, mobNum)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *userRepo) Update(ctx context.Context, userID string, patch *models.UserPatch) (int64, error) {
	query := `
		UPDATE users
		SET full_name = $1, mob_num = $2, pan_num = $3, manager_id = $4, updated_at = NOW()
		WHERE user_id = $5
	`
	tag, err := r.db.Exec(ctx, query, patch.FullName, patch.MobNum, patch.PanNum, patch.ManagerID, userID)
	if err != nil {
		return 0, fmt.Errorf("update user %s: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *userRepo) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
