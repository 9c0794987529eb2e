package ports

import (
	"context"
	"errors"
	"time"

	"github.com/linkmart/admin-api/internal/domain"
)

// ErrCacheMiss is returned by CacheBackend.Get when the key is absent or
// expired. Adapters must translate their native miss signal into this error.
var ErrCacheMiss = errors.New("cache: miss")

// TxStore is the persistence backend's transaction boundary. Implemented by
// the Postgres adapter; consumed by the mutation pipeline, which begins a
// physical transaction only for the outermost unit of work.
type TxStore interface {
	// Begin starts a transaction and returns a derived context carrying the
	// transaction handle. Repositories resolve the handle from that context,
	// so every repository call inside a transaction body automatically runs
	// on the same physical transaction.
	Begin(ctx context.Context) (context.Context, Tx, error)
}

// Tx is an open transaction against the persistence backend.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// CacheBackend is a key/value store with TTL and pattern deletion.
//
// Pattern semantics are glob: '*' matches any run of characters, '?' a single
// character, and '[...]' a character class. A target containing any of those
// metacharacters is treated as a pattern by callers; plain strings are exact
// keys. Both Delete and DeleteMatching are idempotent.
type CacheBackend interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteMatching removes every key matching the glob pattern.
	DeleteMatching(ctx context.Context, pattern string) error
}

// AuditStore is the append-only audit log backend.
type AuditStore interface {
	// Insert appends one audit record. Implementations must not mutate rec.
	Insert(ctx context.Context, rec domain.AuditRecord) error
}
