package utils

import (
	"errors"
	"fmt"

	"fleet-management/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// WrapDBError translates pgx errors into domain sentinels and wraps the
// rest with the operation name.
func WrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, models.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, models.ErrReferenced)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
