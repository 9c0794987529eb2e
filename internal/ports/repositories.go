package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
)

// Repositories are implemented by the Postgres adapter. Inside a pipeline
// transaction their queries run on the transaction carried by the context;
// outside one they run directly on the pool.

// AdminRepository persists admin accounts.
type AdminRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Save(ctx context.Context, admin *domain.Admin) error
	// CountActiveSuperAdmins returns the number of active super-admin
	// accounts. Used to protect the last remaining super-admin from archival.
	CountActiveSuperAdmins(ctx context.Context) (int, error)
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Product, error)
	Save(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LinkRepository persists marketplace links.
type LinkRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Link, error)
	Save(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository persists the category tree.
type CategoryRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	Save(ctx context.Context, category *domain.Category) error
	// Delete removes a category. Returns domain.ErrConflict if products
	// still reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MarketplaceRepository persists marketplaces.
type MarketplaceRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Marketplace, error)
	ListAll(ctx context.Context) ([]domain.Marketplace, error)
	Save(ctx context.Context, marketplace *domain.Marketplace) error
}
