package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/linkmart/admin-api/internal/domain"
)

// BatchItemStatus classifies the outcome of one item in a batch operation.
type BatchItemStatus string

const (
	BatchSucceeded BatchItemStatus = "succeeded"
	BatchFailed    BatchItemStatus = "failed"
	BatchSkipped   BatchItemStatus = "skipped"
)

// BatchItem is the per-item outcome of a batch operation, in input order.
type BatchItem struct {
	Index  int
	Key    string // item identifier supplied by the caller
	Status BatchItemStatus
	Error  string // failure (or halt-skip) message, empty on success
}

// BatchResult summarizes a batch operation. A batch over N items is N
// independent units of work, never one transaction wrapping all N: a failure
// in one item does not undo the others.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Items     []BatchItem
}

// LinkService manages marketplace links.
// Implemented by the application layer; called by inbound adapters (handlers).
type LinkService interface {
	// GetLink returns a single link by ID, served cache-aside.
	// Returns domain.ErrNotFound if the link does not exist.
	GetLink(ctx context.Context, id uuid.UUID) (*domain.Link, error)

	// ListProductLinks returns all links for a product, served cache-aside.
	ListProductLinks(ctx context.Context, productID uuid.UUID) ([]domain.Link, error)

	// CreateLink validates and creates a link.
	CreateLink(ctx context.Context, link *domain.Link) (*domain.Link, error)

	// UpdateLink updates a link's mutable fields.
	UpdateLink(ctx context.Context, id uuid.UUID, link *domain.Link) (*domain.Link, error)

	// UpdatePrice changes a link's observed price, recording old and new
	// values in the audit trail.
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Link, error)

	// DeleteLink removes a link.
	DeleteLink(ctx context.Context, id uuid.UUID) error

	// BulkUpdatePositions reorders links. Each update is an independent unit
	// of work with per-item failure isolation.
	BulkUpdatePositions(ctx context.Context, updates []LinkPositionUpdate) (*BatchResult, error)
}

// LinkPositionUpdate pairs a link ID with its new position for bulk reorders.
type LinkPositionUpdate struct {
	LinkID   uuid.UUID
	Position int
}

// CategoryService manages the category tree.
type CategoryService interface {
	// GetTree returns all categories, served cache-aside.
	GetTree(ctx context.Context) ([]domain.Category, error)

	// CreateCategory validates and creates a category.
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)

	// UpdateCategory updates a category's mutable fields.
	UpdateCategory(ctx context.Context, id uuid.UUID, category *domain.Category) (*domain.Category, error)

	// DeleteCategory removes a category.
	// Returns domain.ErrConflict if products still reference it.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// ProductService manages catalog products.
type ProductService interface {
	// GetProduct returns a single product by ID, served cache-aside.
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// CreateProduct validates and creates a product.
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)

	// UpdateProduct updates a product's mutable fields.
	UpdateProduct(ctx context.Context, id uuid.UUID, product *domain.Product) (*domain.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// BulkUpdatePrices repricess many products. Each update is an independent
	// unit of work with per-item failure isolation.
	BulkUpdatePrices(ctx context.Context, updates []ProductPriceUpdate) (*BatchResult, error)
}

// ProductPriceUpdate pairs a product ID with its new price for bulk repricing.
type ProductPriceUpdate struct {
	ProductID uuid.UUID
	Price     decimal.Decimal
}

// AdminService manages admin accounts.
type AdminService interface {
	// GetAdmin returns a single admin by ID.
	GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error)

	// ListAdmins returns all admin accounts.
	ListAdmins(ctx context.Context) ([]domain.Admin, error)

	// CreateAdmin validates and creates an admin account.
	// Returns domain.ErrConflict if the email is already taken.
	CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)

	// UpdateAdmin updates an admin's mutable fields.
	UpdateAdmin(ctx context.Context, id uuid.UUID, admin *domain.Admin) (*domain.Admin, error)

	// BulkArchive archives the given admin accounts. Accounts whose archival
	// would leave zero active super-admins are skipped, not failed.
	BulkArchive(ctx context.Context, ids []uuid.UUID) (*BatchResult, error)
}

// MarketplaceService manages marketplaces.
type MarketplaceService interface {
	// ListMarketplaces returns all marketplaces, served cache-aside.
	ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error)

	// CreateMarketplace validates and creates a marketplace.
	CreateMarketplace(ctx context.Context, m *domain.Marketplace) (*domain.Marketplace, error)

	// UpdateMarketplace updates a marketplace's mutable fields.
	UpdateMarketplace(ctx context.Context, id uuid.UUID, m *domain.Marketplace) (*domain.Marketplace, error)
}
