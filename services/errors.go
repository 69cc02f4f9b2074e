package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when an entity does not exist for the requesting
// user. Lookups against another user's entities resolve to this too, so
// ownership never leaks through error codes.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique field (email, username) is already
// taken.
var ErrConflict = errors.New("already exists")

// ErrInvalidCredentials is returned on a failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so goal evaluation
// can run inside the run-creation transaction and observe the run that was
// just written.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
