package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation devuelve el PgError si err es una violación de constraint único (23505).
func uniqueViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr, true
	}
	return nil, false
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

// constraintContains verifica si el nombre del constraint violado menciona un campo.
func constraintContains(pgErr *pgconn.PgError, field string) bool {
	return strings.Contains(pgErr.ConstraintName, field)
}
