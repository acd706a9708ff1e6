package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ErrForeignKey is returned when a referenced row does not exist.
var ErrForeignKey = errors.New("referenced row does not exist")

// mapPgError converts constraint violations to repository sentinels, keeping other errors as they are.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrDuplicate)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrForeignKey)
		}
	}
	return err
}

func checkRowsAffected(result sql.Result, what, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s %s not found: %w", what, id, sql.ErrNoRows)
	}
	return nil
}
