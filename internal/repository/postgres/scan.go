package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventvenues/internal/domain"
)

// uniqueViolation is the postgres SQLSTATE for a unique index violation.
const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// timeArg renders a time of day for a TIME column.
func timeArg(t *domain.TimeOfDay) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.String(), Valid: true}
}

func scanTimeOfDay(ns sql.NullString) (*domain.TimeOfDay, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(ns.String)
	if err != nil {
		return nil, fmt.Errorf("scan time of day: %w", err)
	}
	return &t, nil
}
