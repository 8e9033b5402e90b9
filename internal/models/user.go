package models

import "time"

// User is a row of the users table.
type User struct {
	ID        string    `json:"user_id" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	MobNum    string    `json:"mob_num" db:"mob_num"`
	PanNum    string    `json:"pan_num" db:"pan_num"`
	ManagerID *string   `json:"manager_id" db:"manager_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}

// UserFilter holds the optional lookup criteria for active users.
// Empty fields are ignored.
type UserFilter struct {
	UserID    string `json:"user_id"`
	MobNum    string `json:"mob_num"`
	ManagerID string `json:"manager_id"`
}

// UserPatch overwrites the mutable columns of every targeted user.
// A nil field is written as NULL.
type UserPatch struct {
	FullName  *string `json:"full_name"`
	MobNum    *string `json:"mob_num"`
	PanNum    *string `json:"pan_num"`
	ManagerID *string `json:"manager_id"`
}
