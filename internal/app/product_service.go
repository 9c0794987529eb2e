package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/app/pipeline"
	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/ports"
)

// Compile-time check that ProductService implements ports.ProductService.
var _ ports.ProductService = (*ProductService)(nil)

// ProductService implements ports.ProductService. Product mutations also
// invalidate the product's link list: link payloads rendered to clients
// embed product fields.
type ProductService struct {
	service
	products ports.ProductRepository
	ttl      config.CacheTTLConfig
	batch    config.BatchConfig
}

// NewProductService creates a ProductService over the pipeline and repository.
func NewProductService(pipe *pipeline.Pipeline, products ports.ProductRepository, cfg *config.CacheConfig, batch *config.BatchConfig, logger *slog.Logger, opts ...Option) *ProductService {
	return &ProductService{
		service:  newService(pipe, logger, opts...),
		products: products,
		ttl:      cfg.TTL,
		batch:    *batch,
	}
}

// GetProduct returns a single product by ID, served cache-aside.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	key := pipeline.CacheKey("product", id.String())
	return pipeline.ReadThrough(ctx, s.pipe, key, s.ttl.Entity, func(ctx context.Context) (*domain.Product, error) {
		return s.products.Find(ctx, id)
	})
}

// CreateProduct validates and creates a product.
func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	s.logger.InfoContext(ctx, "creating product", slog.String("slug", product.Slug))

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := s.clock.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := product.Validate(); err != nil {
		return nil, err
	}

	err := s.pipe.Transaction(ctx, "product.create", func(ctx context.Context) error {
		if err := s.products.Save(ctx, product); err != nil {
			return err
		}
		s.invalidate(ctx, product.ID)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "product.create",
			EntityType: "product",
			EntityID:   product.ID.String(),
			NewValues:  productSnapshot(product),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create product",
			slog.String("operation", "CreateProduct"),
			slog.String("slug", product.Slug),
			slog.Any("error", err),
		)
		return nil, err
	}

	return product, nil
}

// UpdateProduct updates a product's mutable fields.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, in *domain.Product) (*domain.Product, error) {
	s.logger.InfoContext(ctx, "updating product", slog.String("id", id.String()))

	updated, err := pipeline.Transact(ctx, s.pipe, "product.update", func(ctx context.Context) (*domain.Product, error) {
		product, err := s.products.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		old := productSnapshot(product)

		product.CategoryID = in.CategoryID
		product.Name = in.Name
		product.Slug = in.Slug
		product.Price = in.Price
		product.Status = in.Status
		product.UpdatedAt = s.clock.Now()

		if err := product.Validate(); err != nil {
			return nil, err
		}
		if err := s.products.Save(ctx, product); err != nil {
			return nil, err
		}

		s.invalidate(ctx, product.ID)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "product.update",
			EntityType: "product",
			EntityID:   product.ID.String(),
			OldValues:  old,
			NewValues:  productSnapshot(product),
		})
		return product, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update product",
			slog.String("operation", "UpdateProduct"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// DeleteProduct removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.logger.InfoContext(ctx, "deleting product", slog.String("id", id.String()))

	err := s.pipe.Transaction(ctx, "product.delete", func(ctx context.Context) error {
		product, err := s.products.Find(ctx, id)
		if err != nil {
			return err
		}
		if err := s.products.Delete(ctx, id); err != nil {
			return err
		}

		s.invalidate(ctx, id)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "product.delete",
			EntityType: "product",
			EntityID:   id.String(),
			OldValues:  productSnapshot(product),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete product",
			slog.String("operation", "DeleteProduct"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// BulkUpdatePrices reprices many products. Each update is an independent
// unit of work: a product that fails to reprice never rolls back the others.
func (s *ProductService) BulkUpdatePrices(ctx context.Context, updates []ports.ProductPriceUpdate) (*ports.BatchResult, error) {
	s.logger.InfoContext(ctx, "bulk updating product prices", slog.Int("count", len(updates)))

	opts := pipeline.BatchOptions[ports.ProductPriceUpdate]{
		ChunkSize: s.batch.ChunkSize,
		Describe:  func(u ports.ProductPriceUpdate) string { return u.ProductID.String() },
	}

	result := pipeline.Batch(ctx, s.pipe, updates, opts, func(ctx context.Context, u ports.ProductPriceUpdate, _ int) error {
		return s.pipe.Transaction(ctx, "product.update_price", func(ctx context.Context) error {
			product, err := s.products.Find(ctx, u.ProductID)
			if err != nil {
				return err
			}
			oldPrice := product.Price

			product.Price = u.Price
			product.UpdatedAt = s.clock.Now()

			if err := product.Validate(); err != nil {
				return err
			}
			if err := s.products.Save(ctx, product); err != nil {
				return err
			}

			s.invalidate(ctx, product.ID)
			s.pipe.Audit(ctx, pipeline.Entry{
				Action:     "product.update_price",
				EntityType: "product",
				EntityID:   product.ID.String(),
				OldValues:  map[string]any{"price": oldPrice.String()},
				NewValues:  map[string]any{"price": u.Price.String()},
			})
			return nil
		})
	})

	return result, nil
}

// invalidate queues deletion of the product's cache entry and its link list.
func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	s.pipe.QueueInvalidation(ctx, pipeline.CacheKey("product", id.String()))
	s.pipe.QueueInvalidation(ctx, pipeline.CacheKey("product_links", id.String()))
}

// productSnapshot captures the audit-relevant fields of a product.
func productSnapshot(p *domain.Product) map[string]any {
	return map[string]any{
		"category_id": p.CategoryID.String(),
		"name":        p.Name,
		"slug":        p.Slug,
		"price":       p.Price.String(),
		"status":      string(p.Status),
	}
}
