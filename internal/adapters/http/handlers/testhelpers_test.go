package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

var (
	testTime          = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)
	testLinkID        = uuid.MustParse("6f1e8a4c-0b3d-4f6e-9a21-5c8d7e2b1a30")
	testProductID     = uuid.MustParse("9b2c4d6e-1f3a-4b5c-8d7e-2a1b3c4d5e6f")
	testMarketplaceID = uuid.MustParse("3a5b7c9d-2e4f-4a6b-8c0d-1e2f3a4b5c6d")
	testCategoryID    = uuid.MustParse("1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f")
	testAdminID       = uuid.MustParse("7e8f9a0b-1c2d-4e3f-a5b6-c7d8e9f0a1b2")
)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validLink() domain.Link {
	return domain.Link{
		ID:            testLinkID,
		ProductID:     testProductID,
		MarketplaceID: testMarketplaceID,
		URL:           "https://shop.example.com/item/42",
		Price:         decimal.NewFromInt(100),
		Position:      1,
		Status:        domain.LinkActive,
		CreatedAt:     testTime,
		UpdatedAt:     testTime,
	}
}

func validCategory() domain.Category {
	return domain.Category{
		ID:        testCategoryID,
		Name:      "Electronics",
		Slug:      "electronics",
		Position:  1,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func validProduct() domain.Product {
	return domain.Product{
		ID:         testProductID,
		CategoryID: testCategoryID,
		Name:       "Wireless Mouse",
		Slug:       "wireless-mouse",
		Price:      decimal.NewFromInt(250),
		Status:     domain.ProductActive,
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
}

func validAdmin() domain.Admin {
	return domain.Admin{
		ID:        testAdminID,
		Email:     "ops@example.com",
		Name:      "Ops Admin",
		Role:      domain.RoleAdmin,
		Status:    domain.AdminActive,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func validMarketplace() domain.Marketplace {
	return domain.Marketplace{
		ID:        testMarketplaceID,
		Name:      "Shoply",
		Slug:      "shoply",
		Domain:    "shoply.example.com",
		Status:    domain.MarketplaceActive,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// Stub service implementations. Each method delegates to the matching
// function field; calling a method whose field is unset fails the test via
// panic, which keeps unexpected-call detection without a mock framework.

type stubLinkService struct {
	getLink             func(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	listProductLinks    func(ctx context.Context, productID uuid.UUID) ([]domain.Link, error)
	createLink          func(ctx context.Context, link *domain.Link) (*domain.Link, error)
	updateLink          func(ctx context.Context, id uuid.UUID, link *domain.Link) (*domain.Link, error)
	updatePrice         func(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Link, error)
	deleteLink          func(ctx context.Context, id uuid.UUID) error
	bulkUpdatePositions func(ctx context.Context, updates []ports.LinkPositionUpdate) (*ports.BatchResult, error)
}

func (s *stubLinkService) GetLink(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	if s.getLink == nil {
		panic("unexpected call to GetLink")
	}
	return s.getLink(ctx, id)
}

func (s *stubLinkService) ListProductLinks(ctx context.Context, productID uuid.UUID) ([]domain.Link, error) {
	if s.listProductLinks == nil {
		panic("unexpected call to ListProductLinks")
	}
	return s.listProductLinks(ctx, productID)
}

func (s *stubLinkService) CreateLink(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	if s.createLink == nil {
		panic("unexpected call to CreateLink")
	}
	return s.createLink(ctx, link)
}

func (s *stubLinkService) UpdateLink(ctx context.Context, id uuid.UUID, link *domain.Link) (*domain.Link, error) {
	if s.updateLink == nil {
		panic("unexpected call to UpdateLink")
	}
	return s.updateLink(ctx, id, link)
}

func (s *stubLinkService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Link, error) {
	if s.updatePrice == nil {
		panic("unexpected call to UpdatePrice")
	}
	return s.updatePrice(ctx, id, price)
}

func (s *stubLinkService) DeleteLink(ctx context.Context, id uuid.UUID) error {
	if s.deleteLink == nil {
		panic("unexpected call to DeleteLink")
	}
	return s.deleteLink(ctx, id)
}

func (s *stubLinkService) BulkUpdatePositions(ctx context.Context, updates []ports.LinkPositionUpdate) (*ports.BatchResult, error) {
	if s.bulkUpdatePositions == nil {
		panic("unexpected call to BulkUpdatePositions")
	}
	return s.bulkUpdatePositions(ctx, updates)
}

type stubCategoryService struct {
	getTree        func(ctx context.Context) ([]domain.Category, error)
	createCategory func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	updateCategory func(ctx context.Context, id uuid.UUID, category *domain.Category) (*domain.Category, error)
	deleteCategory func(ctx context.Context, id uuid.UUID) error
}

func (s *stubCategoryService) GetTree(ctx context.Context) ([]domain.Category, error) {
	if s.getTree == nil {
		panic("unexpected call to GetTree")
	}
	return s.getTree(ctx)
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if s.createCategory == nil {
		panic("unexpected call to CreateCategory")
	}
	return s.createCategory(ctx, category)
}

func (s *stubCategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, category *domain.Category) (*domain.Category, error) {
	if s.updateCategory == nil {
		panic("unexpected call to UpdateCategory")
	}
	return s.updateCategory(ctx, id, category)
}

func (s *stubCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if s.deleteCategory == nil {
		panic("unexpected call to DeleteCategory")
	}
	return s.deleteCategory(ctx, id)
}

type stubProductService struct {
	getProduct       func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	createProduct    func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	updateProduct    func(ctx context.Context, id uuid.UUID, product *domain.Product) (*domain.Product, error)
	deleteProduct    func(ctx context.Context, id uuid.UUID) error
	bulkUpdatePrices func(ctx context.Context, updates []ports.ProductPriceUpdate) (*ports.BatchResult, error)
}

func (s *stubProductService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if s.getProduct == nil {
		panic("unexpected call to GetProduct")
	}
	return s.getProduct(ctx, id)
}

func (s *stubProductService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if s.createProduct == nil {
		panic("unexpected call to CreateProduct")
	}
	return s.createProduct(ctx, product)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id uuid.UUID, product *domain.Product) (*domain.Product, error) {
	if s.updateProduct == nil {
		panic("unexpected call to UpdateProduct")
	}
	return s.updateProduct(ctx, id, product)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if s.deleteProduct == nil {
		panic("unexpected call to DeleteProduct")
	}
	return s.deleteProduct(ctx, id)
}

func (s *stubProductService) BulkUpdatePrices(ctx context.Context, updates []ports.ProductPriceUpdate) (*ports.BatchResult, error) {
	if s.bulkUpdatePrices == nil {
		panic("unexpected call to BulkUpdatePrices")
	}
	return s.bulkUpdatePrices(ctx, updates)
}

type stubAdminService struct {
	getAdmin    func(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	listAdmins  func(ctx context.Context) ([]domain.Admin, error)
	createAdmin func(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	updateAdmin func(ctx context.Context, id uuid.UUID, admin *domain.Admin) (*domain.Admin, error)
	bulkArchive func(ctx context.Context, ids []uuid.UUID) (*ports.BatchResult, error)
}

func (s *stubAdminService) GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	if s.getAdmin == nil {
		panic("unexpected call to GetAdmin")
	}
	return s.getAdmin(ctx, id)
}

func (s *stubAdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	if s.listAdmins == nil {
		panic("unexpected call to ListAdmins")
	}
	return s.listAdmins(ctx)
}

func (s *stubAdminService) CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if s.createAdmin == nil {
		panic("unexpected call to CreateAdmin")
	}
	return s.createAdmin(ctx, admin)
}

func (s *stubAdminService) UpdateAdmin(ctx context.Context, id uuid.UUID, admin *domain.Admin) (*domain.Admin, error) {
	if s.updateAdmin == nil {
		panic("unexpected call to UpdateAdmin")
	}
	return s.updateAdmin(ctx, id, admin)
}

func (s *stubAdminService) BulkArchive(ctx context.Context, ids []uuid.UUID) (*ports.BatchResult, error) {
	if s.bulkArchive == nil {
		panic("unexpected call to BulkArchive")
	}
	return s.bulkArchive(ctx, ids)
}

type stubMarketplaceService struct {
	listMarketplaces  func(ctx context.Context) ([]domain.Marketplace, error)
	createMarketplace func(ctx context.Context, m *domain.Marketplace) (*domain.Marketplace, error)
	updateMarketplace func(ctx context.Context, id uuid.UUID, m *domain.Marketplace) (*domain.Marketplace, error)
}

func (s *stubMarketplaceService) ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error) {
	if s.listMarketplaces == nil {
		panic("unexpected call to ListMarketplaces")
	}
	return s.listMarketplaces(ctx)
}

func (s *stubMarketplaceService) CreateMarketplace(ctx context.Context, m *domain.Marketplace) (*domain.Marketplace, error) {
	if s.createMarketplace == nil {
		panic("unexpected call to CreateMarketplace")
	}
	return s.createMarketplace(ctx, m)
}

func (s *stubMarketplaceService) UpdateMarketplace(ctx context.Context, id uuid.UUID, m *domain.Marketplace) (*domain.Marketplace, error) {
	if s.updateMarketplace == nil {
		panic("unexpected call to UpdateMarketplace")
	}
	return s.updateMarketplace(ctx, id, m)
}

type stubHealthRegistry struct {
	checkAll func(ctx context.Context) map[string]error
}

func (s *stubHealthRegistry) Register(ports.HealthChecker) {}

func (s *stubHealthRegistry) CheckAll(ctx context.Context) map[string]error {
	if s.checkAll == nil {
		panic("unexpected call to CheckAll")
	}
	return s.checkAll(ctx)
}
