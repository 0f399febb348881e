package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// Get-or-create flows catch this and retry the read.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsMissingPartition reports whether an insert failed because no partition
// covers the row's published_at. The article processor reacts by creating
// the specific monthly partition and retrying the single insert.
func IsMissingPartition(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if strings.Contains(pgErr.Message, "no partition of relation") {
		return true
	}
	return pgErr.Code == pgCheckViolation && strings.Contains(pgErr.Message, "partition")
}

// IsNoRows reports whether err is the pgx no-rows sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
