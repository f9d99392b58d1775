package supplyrequests

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// Postgres SQLSTATE classes/codes treated as bad client input.
const (
	pgClassDataException  = "22"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

// classifyStorageError turns driver errors into shared.Error values. The
// driver message is kept only as the wrapped cause.
func classifyStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		switch {
		case pgErr.Code == pgNotNullViolation:
			return &shared.Error{Code: shared.CodeValidation, Message: "a required value is missing", Fields: fieldMap(field, "is required"), Err: err}
		case pgErr.Code == pgCheckViolation, pgErr.Code == pgForeignKeyViolation:
			return &shared.Error{Code: shared.CodeValidation, Message: "value rejected by storage constraint", Fields: fieldMap(field, "is invalid"), Err: err}
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == pgClassDataException:
			return &shared.Error{Code: shared.CodeValidation, Message: "value out of range or malformed", Err: err}
		}
	}
	return shared.Internal(op, fmt.Errorf("%s: %w", op, err))
}

func fieldMap(field, msg string) map[string]string {
	if field == "" {
		return nil
	}
	return map[string]string{field: msg}
}
