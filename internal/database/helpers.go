package database

import (
	"database/sql"
	"fmt"
)

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers
type scanner interface {
	Scan(dest ...interface{}) error
}

// requireRowsAffected converts a zero-row write into sql.ErrNoRows so callers
// can translate it to a not-found response
func requireRowsAffected(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s not found: %w", entity, sql.ErrNoRows)
	}
	return nil
}
