package repository

import (
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Constraint violations surfaced by the store. Callers match them with errors.Is.
var (
	ErrDuplicate  = errors.New("duplicate value")
	ErrForeignKey = errors.New("referenced row does not exist")
)

const (
	rowTimeout  = 3 * time.Second
	listTimeout = 5 * time.Second
)

// translate maps SQLite constraint failures to the package sentinels and passes everything else through.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrForeignKey, err)
		}
	}
	return err
}

// now is the timestamp written to created_at/updated_at columns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
