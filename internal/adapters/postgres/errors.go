package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/linkmart/admin-api/internal/domain"
)

// PostgreSQL error codes relevant to the repositories.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// errNoRowsAffected signals an UPDATE or DELETE that matched no row.
var errNoRowsAffected = errors.New("no rows affected")

// translateErr maps driver errors onto the domain sentinels so callers can
// use errors.Is without importing pgx. op names the failed query for the
// wrapped message.
func translateErr(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, errNoRowsAffected):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case isPgCode(err, codeUniqueViolation):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflict, err)
	case isPgCode(err, codeForeignKeyViolation):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
