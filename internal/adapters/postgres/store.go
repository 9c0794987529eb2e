package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkmart/admin-api/internal/ports"
)

// Compile-time interface check.
var _ ports.TxStore = (*Store)(nil)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so a
// repository can run the same query on either.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txKey is the context key for the open transaction.
type txKey struct{}

// Store owns the connection pool and implements the pipeline's transaction
// boundary. Begin stashes the open pgx.Tx in the returned context;
// repositories built over the same Store pick it up via querier.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over the pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Begin starts a transaction and returns a derived context carrying it.
func (s *Store) Begin(ctx context.Context) (context.Context, ports.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	return context.WithValue(ctx, txKey{}, tx), tx, nil
}

// querier returns the transaction carried by ctx, or the pool when ctx is
// outside any transaction.
func (s *Store) querier(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "postgres" }

// HealthCheck reports whether the database answers a ping.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
