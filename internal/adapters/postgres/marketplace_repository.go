package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

var _ ports.MarketplaceRepository = (*MarketplaceRepository)(nil)

// MarketplaceRepository persists marketplaces.
type MarketplaceRepository struct {
	store *Store
}

// NewMarketplaceRepository creates the repository over the store.
func NewMarketplaceRepository(store *Store) *MarketplaceRepository {
	return &MarketplaceRepository{store: store}
}

func (r *MarketplaceRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Marketplace, error) {
	query := `
		SELECT id, name, slug, domain, status, created_at, updated_at
		FROM marketplaces WHERE id = $1`

	var m domain.Marketplace
	err := r.store.querier(ctx).QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Slug, &m.Domain, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr("find marketplace", err)
	}
	return &m, nil
}

func (r *MarketplaceRepository) ListAll(ctx context.Context) ([]domain.Marketplace, error) {
	query := `
		SELECT id, name, slug, domain, status, created_at, updated_at
		FROM marketplaces
		ORDER BY name`

	rows, err := r.store.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, translateErr("list marketplaces", err)
	}
	defer rows.Close()

	var marketplaces []domain.Marketplace
	for rows.Next() {
		var m domain.Marketplace
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Slug, &m.Domain, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, translateErr("scan marketplace", err)
		}
		marketplaces = append(marketplaces, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr("list marketplaces", err)
	}
	return marketplaces, nil
}

func (r *MarketplaceRepository) Save(ctx context.Context, marketplace *domain.Marketplace) error {
	query := `
		INSERT INTO marketplaces (id, name, slug, domain, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			domain = EXCLUDED.domain,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.store.querier(ctx).Exec(ctx, query,
		marketplace.ID, marketplace.Name, marketplace.Slug, marketplace.Domain,
		marketplace.Status, marketplace.CreatedAt, marketplace.UpdatedAt,
	)
	if err != nil {
		return translateErr("save marketplace", err)
	}
	return nil
}
