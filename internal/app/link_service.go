package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/linkmart/admin-api/internal/app/pipeline"
	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/ports"
)

// Compile-time check that LinkService implements ports.LinkService.
var _ ports.LinkService = (*LinkService)(nil)

// LinkService implements ports.LinkService. Reads are served cache-aside;
// every mutation runs in a pipeline transaction that persists the link,
// queues invalidation of the link and its product's link list, and records
// an audit entry.
type LinkService struct {
	service
	links ports.LinkRepository
	ttl   config.CacheTTLConfig
	batch config.BatchConfig
}

// NewLinkService creates a LinkService over the pipeline and repository.
func NewLinkService(pipe *pipeline.Pipeline, links ports.LinkRepository, cfg *config.CacheConfig, batch *config.BatchConfig, logger *slog.Logger, opts ...Option) *LinkService {
	return &LinkService{
		service: newService(pipe, logger, opts...),
		links:   links,
		ttl:     cfg.TTL,
		batch:   *batch,
	}
}

// GetLink returns a single link by ID, served cache-aside.
func (s *LinkService) GetLink(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	key := pipeline.CacheKey("link", id.String())
	return pipeline.ReadThrough(ctx, s.pipe, key, s.ttl.Entity, func(ctx context.Context) (*domain.Link, error) {
		return s.links.Find(ctx, id)
	})
}

// ListProductLinks returns all links for a product, served cache-aside.
func (s *LinkService) ListProductLinks(ctx context.Context, productID uuid.UUID) ([]domain.Link, error) {
	key := pipeline.CacheKey("product_links", productID.String())
	return pipeline.ReadThrough(ctx, s.pipe, key, s.ttl.List, func(ctx context.Context) ([]domain.Link, error) {
		return s.links.ListByProduct(ctx, productID)
	})
}

// CreateLink validates and creates a link.
func (s *LinkService) CreateLink(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	s.logger.InfoContext(ctx, "creating link",
		slog.String("product_id", link.ProductID.String()),
	)

	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	now := s.clock.Now()
	link.CreatedAt = now
	link.UpdatedAt = now

	if err := link.Validate(); err != nil {
		return nil, err
	}

	err := s.pipe.Transaction(ctx, "link.create", func(ctx context.Context) error {
		if err := s.links.Save(ctx, link); err != nil {
			return err
		}
		s.invalidate(ctx, link)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "link.create",
			EntityType: "link",
			EntityID:   link.ID.String(),
			NewValues:  linkSnapshot(link),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create link",
			slog.String("operation", "CreateLink"),
			slog.String("id", link.ID.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return link, nil
}

// UpdateLink updates a link's mutable fields. The product a link belongs to
// is fixed at creation.
func (s *LinkService) UpdateLink(ctx context.Context, id uuid.UUID, in *domain.Link) (*domain.Link, error) {
	s.logger.InfoContext(ctx, "updating link", slog.String("id", id.String()))

	updated, err := pipeline.Transact(ctx, s.pipe, "link.update", func(ctx context.Context) (*domain.Link, error) {
		link, err := s.links.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		old := linkSnapshot(link)

		link.MarketplaceID = in.MarketplaceID
		link.URL = in.URL
		link.Price = in.Price
		link.Position = in.Position
		link.Status = in.Status
		link.UpdatedAt = s.clock.Now()

		if err := link.Validate(); err != nil {
			return nil, err
		}
		if err := s.links.Save(ctx, link); err != nil {
			return nil, err
		}

		s.invalidate(ctx, link)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "link.update",
			EntityType: "link",
			EntityID:   link.ID.String(),
			OldValues:  old,
			NewValues:  linkSnapshot(link),
		})
		return link, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update link",
			slog.String("operation", "UpdateLink"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// UpdatePrice changes a link's observed price, recording old and new values
// in the audit trail.
func (s *LinkService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Link, error) {
	s.logger.InfoContext(ctx, "updating link price",
		slog.String("id", id.String()),
		slog.String("price", price.String()),
	)

	updated, err := pipeline.Transact(ctx, s.pipe, "link.update_price", func(ctx context.Context) (*domain.Link, error) {
		link, err := s.links.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		oldPrice := link.Price

		link.Price = price
		link.UpdatedAt = s.clock.Now()

		if err := link.Validate(); err != nil {
			return nil, err
		}
		if err := s.links.Save(ctx, link); err != nil {
			return nil, err
		}

		s.invalidate(ctx, link)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "link.update_price",
			EntityType: "link",
			EntityID:   link.ID.String(),
			OldValues:  map[string]any{"price": oldPrice.String()},
			NewValues:  map[string]any{"price": price.String()},
		})
		return link, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update link price",
			slog.String("operation", "UpdatePrice"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// DeleteLink removes a link.
func (s *LinkService) DeleteLink(ctx context.Context, id uuid.UUID) error {
	s.logger.InfoContext(ctx, "deleting link", slog.String("id", id.String()))

	err := s.pipe.Transaction(ctx, "link.delete", func(ctx context.Context) error {
		link, err := s.links.Find(ctx, id)
		if err != nil {
			return err
		}
		if err := s.links.Delete(ctx, id); err != nil {
			return err
		}

		s.invalidate(ctx, link)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "link.delete",
			EntityType: "link",
			EntityID:   id.String(),
			OldValues:  linkSnapshot(link),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete link",
			slog.String("operation", "DeleteLink"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// BulkUpdatePositions reorders links. Each update is an independent unit of
// work: a link that fails to update never rolls back the others.
func (s *LinkService) BulkUpdatePositions(ctx context.Context, updates []ports.LinkPositionUpdate) (*ports.BatchResult, error) {
	s.logger.InfoContext(ctx, "bulk updating link positions", slog.Int("count", len(updates)))

	opts := pipeline.BatchOptions[ports.LinkPositionUpdate]{
		ChunkSize: s.batch.ChunkSize,
		Describe:  func(u ports.LinkPositionUpdate) string { return u.LinkID.String() },
	}

	result := pipeline.Batch(ctx, s.pipe, updates, opts, func(ctx context.Context, u ports.LinkPositionUpdate, _ int) error {
		return s.pipe.Transaction(ctx, "link.update_position", func(ctx context.Context) error {
			link, err := s.links.Find(ctx, u.LinkID)
			if err != nil {
				return err
			}
			oldPosition := link.Position

			link.Position = u.Position
			link.UpdatedAt = s.clock.Now()

			if err := link.Validate(); err != nil {
				return err
			}
			if err := s.links.Save(ctx, link); err != nil {
				return err
			}

			s.invalidate(ctx, link)
			s.pipe.Audit(ctx, pipeline.Entry{
				Action:     "link.update_position",
				EntityType: "link",
				EntityID:   link.ID.String(),
				OldValues:  map[string]any{"position": oldPosition},
				NewValues:  map[string]any{"position": u.Position},
			})
			return nil
		})
	})

	return result, nil
}

// invalidate queues deletion of the link's own cache entry and its product's
// link list.
func (s *LinkService) invalidate(ctx context.Context, link *domain.Link) {
	s.pipe.QueueInvalidation(ctx, pipeline.CacheKey("link", link.ID.String()))
	s.pipe.QueueInvalidation(ctx, pipeline.CacheKey("product_links", link.ProductID.String()))
}

// linkSnapshot captures the audit-relevant fields of a link.
func linkSnapshot(l *domain.Link) map[string]any {
	return map[string]any{
		"product_id":     l.ProductID.String(),
		"marketplace_id": l.MarketplaceID.String(),
		"url":            l.URL,
		"price":          l.Price.String(),
		"position":       l.Position,
		"status":         string(l.Status),
	}
}
