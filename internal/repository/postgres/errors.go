package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError reports a unique_violation (23505).
func IsPgDuplicateError(err error) bool {
	return pgCode(err) == "23505"
}

// IsPgForeignKeyError reports a foreign_key_violation (23503).
func IsPgForeignKeyError(err error) bool {
	return pgCode(err) == "23503"
}

// IsPgInvalidTextError reports invalid_text_representation (22P02), which is
// what a malformed uuid parameter produces.
func IsPgInvalidTextError(err error) bool {
	return pgCode(err) == "22P02"
}

// IsPgNoRowsError reports pgx.ErrNoRows.
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsNotFound reports errors that mean the addressed row does not exist.
func IsNotFound(err error) bool {
	return IsPgNoRowsError(err) || IsPgInvalidTextError(err)
}
