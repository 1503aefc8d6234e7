package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
)

// Database is the subset of pgxpool.Pool the repositories use. pgxmock
// satisfies it too, which is what the repository tests run against.
type Database interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const uniqueViolationCode = "23505"

// itoa shortens positional-argument construction in dynamic queries.
func itoa(n int) string {
	return strconv.Itoa(n)
}

// translateErr converts driver-level errors into the service error
// taxonomy: no rows becomes NotFound, unique violations become Conflict.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return common.ErrConflict
	}
	return err
}
