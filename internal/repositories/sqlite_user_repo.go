package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"usersvc/internal/models"
)

// sqliteTimeLayouts are the text forms SQLite stores for CURRENT_TIMESTAMP
// and for time.Time values written by the driver.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

type sqliteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo returns the SQLite user repository.
func NewSQLiteUserRepo(db *sql.DB) UserRepository {
	return &sqliteUserRepo{db: db}
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (user_id, full_name, mob_num, pan_num, manager_id, is_active) VALUES (?, ?, ?, ?, ?, 1)`
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.FullName, user.MobNum, user.PanNum, user.ManagerID); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *sqliteUserRepo) Find(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	where, args := BuildUserFilter(filter, "1", QuestionPlaceholder)
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		var createdAt, updatedAt any
		if err := rows.Scan(&user.ID, &user.FullName, &user.MobNum, &user.PanNum, &user.ManagerID, &createdAt, &updatedAt, &user.IsActive); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if user.CreatedAt, err = sqliteTime(createdAt); err != nil {
			return nil, err
		}
		if user.UpdatedAt, err = sqliteTime(updatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *sqliteUserRepo) DeleteByID(ctx context.Context, userID string) (int64, error) {
	return r.delete(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
}

func (r *sqliteUserRepo) DeleteByMobile(ctx context.Context, mobNum string) (int64, error) {
	return r.delete(ctx, `DELETE FROM users WHERE mob_num = ?`, mobNum)
}

func (r *sqliteUserRepo) delete(ctx context.Context, query, value string) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, value)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return res.RowsAffected()
}

func (r *sqliteUserRepo) Update(ctx context.Context, userID string, patch *models.UserPatch) (int64, error) {
	query := `UPDATE users SET full_name = ?, mob_num = ?, pan_num = ?, manager_id = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?`
	res, err := r.db.ExecContext(ctx, query, patch.FullName, patch.MobNum, patch.PanNum, patch.ManagerID, userID)
	if err != nil {
		return 0, fmt.Errorf("update user %s: %w", userID, err)
	}
	return res.RowsAffected()
}

func (r *sqliteUserRepo) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_active = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func sqliteTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case []byte:
		return parseSQLiteTime(string(t))
	case string:
		return parseSQLiteTime(t)
	case int64:
		return time.Unix(t, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
}

func parseSQLiteTime(s string) (time.Time, error) {
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", s)
}
