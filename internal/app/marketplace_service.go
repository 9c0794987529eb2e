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

// marketplaceListKey caches the full marketplace list; there are few enough
// marketplaces that per-entity caching is not worth the extra keys.
const marketplaceListKey = "marketplace:all"

// Compile-time check that MarketplaceService implements ports.MarketplaceService.
var _ ports.MarketplaceService = (*MarketplaceService)(nil)

// MarketplaceService implements ports.MarketplaceService.
type MarketplaceService struct {
	service
	marketplaces ports.MarketplaceRepository
	ttl          config.CacheTTLConfig
}

// NewMarketplaceService creates a MarketplaceService over the pipeline and
// repository.
func NewMarketplaceService(pipe *pipeline.Pipeline, marketplaces ports.MarketplaceRepository, cfg *config.CacheConfig, logger *slog.Logger, opts ...Option) *MarketplaceService {
	return &MarketplaceService{
		service:      newService(pipe, logger, opts...),
		marketplaces: marketplaces,
		ttl:          cfg.TTL,
	}
}

// ListMarketplaces returns all marketplaces, served cache-aside.
func (s *MarketplaceService) ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error) {
	return pipeline.ReadThrough(ctx, s.pipe, marketplaceListKey, s.ttl.List, func(ctx context.Context) ([]domain.Marketplace, error) {
		return s.marketplaces.ListAll(ctx)
	})
}

// CreateMarketplace validates and creates a marketplace.
func (s *MarketplaceService) CreateMarketplace(ctx context.Context, m *domain.Marketplace) (*domain.Marketplace, error) {
	s.logger.InfoContext(ctx, "creating marketplace", slog.String("slug", m.Slug))

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := s.clock.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := m.Validate(); err != nil {
		return nil, err
	}

	err := s.pipe.Transaction(ctx, "marketplace.create", func(ctx context.Context) error {
		if err := s.marketplaces.Save(ctx, m); err != nil {
			return err
		}

		s.pipe.QueueInvalidation(ctx, marketplaceListKey)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "marketplace.create",
			EntityType: "marketplace",
			EntityID:   m.ID.String(),
			NewValues:  marketplaceSnapshot(m),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create marketplace",
			slog.String("operation", "CreateMarketplace"),
			slog.String("slug", m.Slug),
			slog.Any("error", err),
		)
		return nil, err
	}

	return m, nil
}

// UpdateMarketplace updates a marketplace's mutable fields.
func (s *MarketplaceService) UpdateMarketplace(ctx context.Context, id uuid.UUID, in *domain.Marketplace) (*domain.Marketplace, error) {
	s.logger.InfoContext(ctx, "updating marketplace", slog.String("id", id.String()))

	updated, err := pipeline.Transact(ctx, s.pipe, "marketplace.update", func(ctx context.Context) (*domain.Marketplace, error) {
		m, err := s.marketplaces.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		old := marketplaceSnapshot(m)

		m.Name = in.Name
		m.Slug = in.Slug
		m.Domain = in.Domain
		m.Status = in.Status
		m.UpdatedAt = s.clock.Now()

		if err := m.Validate(); err != nil {
			return nil, err
		}
		if err := s.marketplaces.Save(ctx, m); err != nil {
			return nil, err
		}

		s.pipe.QueueInvalidation(ctx, marketplaceListKey)
		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "marketplace.update",
			EntityType: "marketplace",
			EntityID:   m.ID.String(),
			OldValues:  old,
			NewValues:  marketplaceSnapshot(m),
		})
		return m, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update marketplace",
			slog.String("operation", "UpdateMarketplace"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// marketplaceSnapshot captures the audit-relevant fields of a marketplace.
func marketplaceSnapshot(m *domain.Marketplace) map[string]any {
	return map[string]any{
		"name":   m.Name,
		"slug":   m.Slug,
		"domain": m.Domain,
		"status": string(m.Status),
	}
}
