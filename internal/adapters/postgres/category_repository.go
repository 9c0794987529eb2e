package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository persists the category tree.
type CategoryRepository struct {
	store *Store
}

// NewCategoryRepository creates the repository over the store.
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, parent_id, name, slug, position, created_at, updated_at
		FROM categories WHERE id = $1`

	var c domain.Category
	err := r.store.querier(ctx).QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Position, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr("find category", err)
	}
	return &c, nil
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, parent_id, name, slug, position, created_at, updated_at
		FROM categories
		ORDER BY position, name`

	rows, err := r.store.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, translateErr("list categories", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(
			&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Position, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, translateErr("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr("list categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, parent_id, name, slug, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			position = EXCLUDED.position,
			updated_at = EXCLUDED.updated_at`

	_, err := r.store.querier(ctx).Exec(ctx, query,
		category.ID, category.ParentID, category.Name, category.Slug,
		category.Position, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return translateErr("save category", err)
	}
	return nil
}

// Delete removes a category. Products still referencing the category make the
// foreign key fail, which surfaces as domain.ErrConflict.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var productCount int
	countQuery := `SELECT count(*) FROM products WHERE category_id = $1`
	if err := r.store.querier(ctx).QueryRow(ctx, countQuery, id).Scan(&productCount); err != nil {
		return translateErr("count category products", err)
	}
	if productCount > 0 {
		return fmt.Errorf("delete category: %d products still assigned: %w", productCount, domain.ErrConflict)
	}

	tag, err := r.store.querier(ctx).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translateErr("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return translateErr("delete category", errNoRowsAffected)
	}
	return nil
}
