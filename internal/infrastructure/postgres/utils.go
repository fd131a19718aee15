package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation código SQLSTATE de violación de constraint único.
const pgUniqueViolation = "23505"

// isUniqueViolation indica si err proviene de un índice único violado.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
