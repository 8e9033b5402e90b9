package models

// Manager is a row of the managers table. Users reference managers by ID.
type Manager struct {
	ID       string `json:"manager_id" db:"manager_id"`
	IsActive bool   `json:"is_active" db:"is_active"`
}
