package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/app/pipeline"
	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/ports"
)

// Hand-rolled fakes: an in-memory transaction stack for the pipeline and
// map-backed repositories. Error fields inject failures per call site.

type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit(context.Context) error   { t.commits++; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rollbacks++; return nil }

type fakeStore struct {
	begins   int
	beginErr error
	lastTx   *fakeTx
}

func (s *fakeStore) Begin(ctx context.Context) (context.Context, ports.Tx, error) {
	if s.beginErr != nil {
		return ctx, nil, s.beginErr
	}
	s.begins++
	s.lastTx = &fakeTx{}
	return ctx, s.lastTx, nil
}

type fakeCache struct {
	data   map[string][]byte
	ops    []string // "delete:<key>" and "match:<pattern>", in apply order
	getErr error
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
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

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.ops = append(c.ops, "delete:"+key)
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeleteMatching(_ context.Context, pattern string) error {
	c.ops = append(c.ops, "match:"+pattern)
	return nil
}

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

// actions returns the recorded audit actions in insertion order.
func (a *fakeAudit) actions() []string {
	out := make([]string, len(a.records))
	for i, rec := range a.records {
		out[i] = rec.Action
	}
	return out
}

// testBackend bundles the pipeline over its three fakes.
type testBackend struct {
	pipe  *pipeline.Pipeline
	store *fakeStore
	cache *fakeCache
	audit *fakeAudit
}

func newTestBackend() *testBackend {
	store := &fakeStore{}
	cache := newFakeCache()
	audit := &fakeAudit{}
	return &testBackend{
		pipe:  pipeline.New(store, cache, audit, slog.New(slog.DiscardHandler)),
		store: store,
		cache: cache,
		audit: audit,
	}
}

func testCacheConfig() *config.CacheConfig {
	return &config.CacheConfig{
		TTL: config.CacheTTLConfig{
			Entity: 5 * time.Minute,
			List:   time.Minute,
		},
	}
}

func testBatchConfig() *config.BatchConfig {
	return &config.BatchConfig{ChunkSize: 50}
}

// --- repositories ---

type fakeLinkRepo struct {
	byID      map[uuid.UUID]domain.Link
	findErr   error
	saveErr   error
	deleteErr error
	finds     int
	saves     int
}

func newFakeLinkRepo(links ...domain.Link) *fakeLinkRepo {
	r := &fakeLinkRepo{byID: make(map[uuid.UUID]domain.Link)}
	for _, l := range links {
		r.byID[l.ID] = l
	}
	return r
}

func (r *fakeLinkRepo) Find(_ context.Context, id uuid.UUID) (*domain.Link, error) {
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	l, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("find link: %w", domain.ErrNotFound)
	}
	return &l, nil
}

func (r *fakeLinkRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]domain.Link, error) {
	var links []domain.Link
	for _, l := range r.byID {
		if l.ProductID == productID {
			links = append(links, l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	return links, nil
}

func (r *fakeLinkRepo) Save(_ context.Context, link *domain.Link) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.byID[link.ID] = *link
	return nil
}

func (r *fakeLinkRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("delete link: %w", domain.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

type fakeCategoryRepo struct {
	byID      map[uuid.UUID]domain.Category
	saveErr   error
	deleteErr error
	lists     int
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byID: make(map[uuid.UUID]domain.Category)}
	for _, c := range categories {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Find(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("find category: %w", domain.ErrNotFound)
	}
	return &c, nil
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	r.lists++
	categories := make([]domain.Category, 0, len(r.byID))
	for _, c := range r.byID {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Position < categories[j].Position })
	return categories, nil
}

func (r *fakeCategoryRepo) Save(_ context.Context, category *domain.Category) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byID[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("delete category: %w", domain.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

type fakeProductRepo struct {
	byID    map[uuid.UUID]domain.Product
	saveErr error
	saves   int
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: make(map[uuid.UUID]domain.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Find(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("find product: %w", domain.ErrNotFound)
	}
	return &p, nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product
	for _, p := range r.byID {
		if p.CategoryID == categoryID {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *domain.Product) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.byID[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("delete product: %w", domain.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

type fakeAdminRepo struct {
	byID     map[uuid.UUID]domain.Admin
	saveErr  error
	countErr error
}

func newFakeAdminRepo(admins ...domain.Admin) *fakeAdminRepo {
	r := &fakeAdminRepo{byID: make(map[uuid.UUID]domain.Admin)}
	for _, a := range admins {
		r.byID[a.ID] = a
	}
	return r
}

func (r *fakeAdminRepo) Find(_ context.Context, id uuid.UUID) (*domain.Admin, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("find admin: %w", domain.ErrNotFound)
	}
	return &a, nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("find admin by email: %w", domain.ErrNotFound)
}

func (r *fakeAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	admins := make([]domain.Admin, 0, len(r.byID))
	for _, a := range r.byID {
		admins = append(admins, a)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].Email < admins[j].Email })
	return admins, nil
}

func (r *fakeAdminRepo) Save(_ context.Context, admin *domain.Admin) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byID[admin.ID] = *admin
	return nil
}

func (r *fakeAdminRepo) CountActiveSuperAdmins(_ context.Context) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	n := 0
	for _, a := range r.byID {
		if a.Role == domain.RoleSuperAdmin && a.Status == domain.AdminActive {
			n++
		}
	}
	return n, nil
}

type fakeMarketplaceRepo struct {
	byID    map[uuid.UUID]domain.Marketplace
	saveErr error
	lists   int
}

func newFakeMarketplaceRepo(marketplaces ...domain.Marketplace) *fakeMarketplaceRepo {
	r := &fakeMarketplaceRepo{byID: make(map[uuid.UUID]domain.Marketplace)}
	for _, m := range marketplaces {
		r.byID[m.ID] = m
	}
	return r
}

func (r *fakeMarketplaceRepo) Find(_ context.Context, id uuid.UUID) (*domain.Marketplace, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("find marketplace: %w", domain.ErrNotFound)
	}
	return &m, nil
}

func (r *fakeMarketplaceRepo) ListAll(_ context.Context) ([]domain.Marketplace, error) {
	r.lists++
	marketplaces := make([]domain.Marketplace, 0, len(r.byID))
	for _, m := range r.byID {
		marketplaces = append(marketplaces, m)
	}
	sort.Slice(marketplaces, func(i, j int) bool { return marketplaces[i].Slug < marketplaces[j].Slug })
	return marketplaces, nil
}

func (r *fakeMarketplaceRepo) Save(_ context.Context, marketplace *domain.Marketplace) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byID[marketplace.ID] = *marketplace
	return nil
}
