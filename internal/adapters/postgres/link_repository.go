package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

var _ ports.LinkRepository = (*LinkRepository)(nil)

// LinkRepository persists marketplace links.
type LinkRepository struct {
	store *Store
}

// NewLinkRepository creates the repository over the store.
func NewLinkRepository(store *Store) *LinkRepository {
	return &LinkRepository{store: store}
}

func (r *LinkRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	query := `
		SELECT id, product_id, marketplace_id, url, price, position, status, created_at, updated_at
		FROM links WHERE id = $1`

	var l domain.Link
	err := r.store.querier(ctx).QueryRow(ctx, query, id).Scan(
		&l.ID, &l.ProductID, &l.MarketplaceID, &l.URL, &l.Price, &l.Position,
		&l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr("find link", err)
	}
	return &l, nil
}

func (r *LinkRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Link, error) {
	query := `
		SELECT id, product_id, marketplace_id, url, price, position, status, created_at, updated_at
		FROM links WHERE product_id = $1
		ORDER BY position, created_at`

	rows, err := r.store.querier(ctx).Query(ctx, query, productID)
	if err != nil {
		return nil, translateErr("list links", err)
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.MarketplaceID, &l.URL, &l.Price, &l.Position,
			&l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, translateErr("scan link", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr("list links", err)
	}
	return links, nil
}

func (r *LinkRepository) Save(ctx context.Context, link *domain.Link) error {
	query := `
		INSERT INTO links (id, product_id, marketplace_id, url, price, position, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			marketplace_id = EXCLUDED.marketplace_id,
			url = EXCLUDED.url,
			price = EXCLUDED.price,
			position = EXCLUDED.position,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.store.querier(ctx).Exec(ctx, query,
		link.ID, link.ProductID, link.MarketplaceID, link.URL, link.Price,
		link.Position, link.Status, link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		return translateErr("save link", err)
	}
	return nil
}

func (r *LinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.store.querier(ctx).Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return translateErr("delete link", err)
	}
	if tag.RowsAffected() == 0 {
		return translateErr("delete link", errNoRowsAffected)
	}
	return nil
}
