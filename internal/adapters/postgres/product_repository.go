package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository persists catalog products.
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates the repository over the store.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, category_id, name, slug, price, status, created_at, updated_at
		FROM products WHERE id = $1`

	var p domain.Product
	err := r.store.querier(ctx).QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Price, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr("find product", err)
	}
	return &p, nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Product, error) {
	query := `
		SELECT id, category_id, name, slug, price, status, created_at, updated_at
		FROM products WHERE category_id = $1
		ORDER BY name`

	rows, err := r.store.querier(ctx).Query(ctx, query, categoryID)
	if err != nil {
		return nil, translateErr("list products", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Price, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, translateErr("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr("list products", err)
	}
	return products, nil
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, slug, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			category_id = EXCLUDED.category_id,
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			price = EXCLUDED.price,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.store.querier(ctx).Exec(ctx, query,
		product.ID, product.CategoryID, product.Name, product.Slug,
		product.Price, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return translateErr("save product", err)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.store.querier(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateErr("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return translateErr("delete product", errNoRowsAffected)
	}
	return nil
}
