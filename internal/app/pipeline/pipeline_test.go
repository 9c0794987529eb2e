package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

// fakeTx records commit and rollback calls against a single transaction.
type fakeTx struct {
	commits     int
	rollbacks   int
	commitErr   error
	rollbackErr error
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.rollbacks++
	return t.rollbackErr
}

// fakeStore hands out fakeTx transactions and counts begins.
type fakeStore struct {
	begins   int
	beginErr error
	lastTx   *fakeTx
}

func (s *fakeStore) Begin(ctx context.Context) (context.Context, ports.Tx, error) {
	s.begins++
	if s.beginErr != nil {
		return nil, nil, s.beginErr
	}
	s.lastTx = &fakeTx{}
	return ctx, s.lastTx, nil
}

// fakeCache is an in-memory CacheBackend that records every operation in
// order, so tests can assert when and how invalidations were applied.
type fakeCache struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	ops     []string // "delete:<key>" and "match:<pattern>" in call order
	getErr  error
	setErr  error
	delErr  error
	matchEr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.ops = append(c.ops, "delete:"+key)
	if c.delErr != nil {
		return c.delErr
	}
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeleteMatching(_ context.Context, pattern string) error {
	c.ops = append(c.ops, "match:"+pattern)
	return c.matchEr
}

// fakeAudit records inserted audit records.
type fakeAudit struct {
	records   []domain.AuditRecord
	insertErr error
}

func (a *fakeAudit) Insert(_ context.Context, rec domain.AuditRecord) error {
	if a.insertErr != nil {
		return a.insertErr
	}
	a.records = append(a.records, rec)
	return nil
}

// newTestPipeline wires a Pipeline over fresh fakes.
func newTestPipeline(opts ...Option) (*Pipeline, *fakeStore, *fakeCache, *fakeAudit) {
	store := &fakeStore{}
	cache := newFakeCache()
	audit := &fakeAudit{}
	return New(store, cache, audit, nil, opts...), store, cache, audit
}

// --- New ---

func TestNew_NilLogger(t *testing.T) {
	t.Parallel()

	p := New(&fakeStore{}, newFakeCache(), &fakeAudit{}, nil)
	if p.logger == nil {
		t.Fatal("New(nil logger) should create a no-op logger, got nil")
	}
}

// --- Actor context ---

func TestWithActor_RoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithActor(context.Background(), id)

	got, ok := ActorFromContext(ctx)
	if !ok {
		t.Fatal("ActorFromContext() ok = false, want true")
	}
	if got != id {
		t.Errorf("ActorFromContext() = %v, want %v", got, id)
	}
}

func TestActorFromContext_Absent(t *testing.T) {
	t.Parallel()

	if _, ok := ActorFromContext(context.Background()); ok {
		t.Error("ActorFromContext() ok = true for bare context, want false")
	}
}
