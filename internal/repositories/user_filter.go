package repositories

import (
	"strconv"
	"strings"

	"usersvc/internal/models"
)

// Placeholder renders the n-th (1-based) bind parameter of a statement.
type Placeholder func(n int) string

// QuestionPlaceholder renders SQLite style parameters.
func QuestionPlaceholder(int) string { return "?" }

// DollarPlaceholder renders PostgreSQL style parameters.
func DollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

// BuildUserFilter returns the WHERE predicate selecting active users that
// match every non-empty criterion, and the bind arguments in placeholder
// order. activeValue is the backend's literal for an active row.
func BuildUserFilter(filter models.UserFilter, activeValue string, ph Placeholder) (string, []any) {
	var b strings.Builder
	b.WriteString("is_active = ")
	b.WriteString(activeValue)

	args := make([]any, 0, 3)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		b.WriteString(" AND ")
		b.WriteString(column)
		b.WriteString(" = ")
		b.WriteString(ph(len(args)))
	}
	add("user_id", filter.UserID)
	add("mob_num", filter.MobNum)
	add("manager_id", filter.ManagerID)

	return b.String(), args
}
