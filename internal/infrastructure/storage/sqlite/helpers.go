package sqlite

import (
	"database/sql"
	"strings"

	"tillbook/internal/core/apperror"
)

// requireAffected maps a zero-row write to NOT_FOUND.
func requireAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.NewPersistence("read rows affected", err)
	}
	if n == 0 {
		return apperror.NewNotFound(entity, id)
	}
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
// The modernc driver surfaces these as plain error strings.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
