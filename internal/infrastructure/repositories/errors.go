package repositories

import "strings"

// isUniqueViolation recognizes unique-constraint failures from postgres (SQLSTATE 23505) and sqlite.
// GORM only translates these into ErrDuplicatedKey when TranslateError is enabled.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
