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

// treeCacheKey caches the whole category tree as one entry; any category
// mutation invalidates every category key with one wildcard.
const (
	treeCacheKey         = "category:tree"
	categoryInvalidation = "category:*"
)

// Compile-time check that CategoryService implements ports.CategoryService.
var _ ports.CategoryService = (*CategoryService)(nil)

// CategoryService implements ports.CategoryService. The tree read is served
// cache-aside; mutations invalidate all category keys because moving or
// renaming one node changes the shape of the whole tree.
type CategoryService struct {
	service
	categories ports.CategoryRepository
	ttl        config.CacheTTLConfig
}

// NewCategoryService creates a CategoryService over the pipeline and repository.
func NewCategoryService(pipe *pipeline.Pipeline, categories ports.CategoryRepository, cfg *config.CacheConfig, logger *slog.Logger, opts ...Option) *CategoryService {
	return &CategoryService{
		service:    newService(pipe, logger, opts...),
		categories: categories,
		ttl:        cfg.TTL,
	}
}

// GetTree returns all categories, served cache-aside.
func (s *CategoryService) GetTree(ctx context.Context) ([]domain.Category, error) {
	return pipeline.ReadThrough(ctx, s.pipe, treeCacheKey, s.ttl.List, func(ctx context.Context) ([]domain.Category, error) {
		return s.categories.ListAll(ctx)
	})
}

// CreateCategory validates and creates a category.
func (s *CategoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	s.logger.InfoContext(ctx, "creating category", slog.String("slug", category.Slug))

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := s.clock.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := category.Validate(); err != nil {
		return nil, err
	}

	err := s.pipe.Transaction(ctx, "category.create", func(ctx context.Context) error {
		if category.ParentID != nil {
			if _, err := s.categories.Find(ctx, *category.ParentID); err != nil {
				return err
			}
		}
		if err := s.categories.Save(ctx, category); err != nil {
			return err
		}

		s.pipe.QueueInvalidation(ctx, categoryInvalidation)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "category.create",
			EntityType: "category",
			EntityID:   category.ID.String(),
			NewValues:  categorySnapshot(category),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create category",
			slog.String("operation", "CreateCategory"),
			slog.String("slug", category.Slug),
			slog.Any("error", err),
		)
		return nil, err
	}

	return category, nil
}

// UpdateCategory updates a category's mutable fields.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, in *domain.Category) (*domain.Category, error) {
	s.logger.InfoContext(ctx, "updating category", slog.String("id", id.String()))

	updated, err := pipeline.Transact(ctx, s.pipe, "category.update", func(ctx context.Context) (*domain.Category, error) {
		category, err := s.categories.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		old := categorySnapshot(category)

		category.ParentID = in.ParentID
		category.Name = in.Name
		category.Slug = in.Slug
		category.Position = in.Position
		category.UpdatedAt = s.clock.Now()

		if err := category.Validate(); err != nil {
			return nil, err
		}
		if category.ParentID != nil {
			if _, err := s.categories.Find(ctx, *category.ParentID); err != nil {
				return nil, err
			}
		}
		if err := s.categories.Save(ctx, category); err != nil {
			return nil, err
		}

		s.pipe.QueueInvalidation(ctx, categoryInvalidation)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "category.update",
			EntityType: "category",
			EntityID:   category.ID.String(),
			OldValues:  old,
			NewValues:  categorySnapshot(category),
		})
		return category, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update category",
			slog.String("operation", "UpdateCategory"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// DeleteCategory removes a category. Returns domain.ErrConflict if products
// still reference it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.logger.InfoContext(ctx, "deleting category", slog.String("id", id.String()))

	err := s.pipe.Transaction(ctx, "category.delete", func(ctx context.Context) error {
		category, err := s.categories.Find(ctx, id)
		if err != nil {
			return err
		}
		if err := s.categories.Delete(ctx, id); err != nil {
			return err
		}

		s.pipe.QueueInvalidation(ctx, categoryInvalidation)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "category.delete",
			EntityType: "category",
			EntityID:   id.String(),
			OldValues:  categorySnapshot(category),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete category",
			slog.String("operation", "DeleteCategory"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// categorySnapshot captures the audit-relevant fields of a category.
func categorySnapshot(c *domain.Category) map[string]any {
	snap := map[string]any{
		"name":     c.Name,
		"slug":     c.Slug,
		"position": c.Position,
	}
	if c.ParentID != nil {
		snap["parent_id"] = c.ParentID.String()
	}
	return snap
}
