package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/app/pipeline"
	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/ports"
)

// Compile-time check that AdminService implements ports.AdminService.
var _ ports.AdminService = (*AdminService)(nil)

// AdminService implements ports.AdminService. Admin accounts are not cached:
// the admin list is small, rarely read, and permission-sensitive enough that
// a stale entry is worse than a repository round trip.
type AdminService struct {
	service
	admins ports.AdminRepository
	batch  config.BatchConfig
}

// NewAdminService creates an AdminService over the pipeline and repository.
func NewAdminService(pipe *pipeline.Pipeline, admins ports.AdminRepository, batch *config.BatchConfig, logger *slog.Logger, opts ...Option) *AdminService {
	return &AdminService{
		service: newService(pipe, logger, opts...),
		admins:  admins,
		batch:   *batch,
	}
}

// GetAdmin returns a single admin by ID.
func (s *AdminService) GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return s.admins.Find(ctx, id)
}

// ListAdmins returns all admin accounts.
func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.List(ctx)
}

// CreateAdmin validates and creates an admin account.
// Returns domain.ErrConflict if the email is already taken.
func (s *AdminService) CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	s.logger.InfoContext(ctx, "creating admin", slog.String("email", admin.Email))

	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	now := s.clock.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if err := admin.Validate(); err != nil {
		return nil, err
	}

	err := s.pipe.Transaction(ctx, "admin.create", func(ctx context.Context) error {
		_, err := s.admins.FindByEmail(ctx, admin.Email)
		switch {
		case err == nil:
			return fmt.Errorf("email %q already registered: %w", admin.Email, domain.ErrConflict)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		if err := s.admins.Save(ctx, admin); err != nil {
			return err
		}

		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "admin.create",
			EntityType: "admin",
			EntityID:   admin.ID.String(),
			NewValues:  adminSnapshot(admin),
		})
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create admin",
			slog.String("operation", "CreateAdmin"),
			slog.String("email", admin.Email),
			slog.Any("error", err),
		)
		return nil, err
	}

	return admin, nil
}

// UpdateAdmin updates an admin's mutable fields. Email is fixed at creation.
// Returns domain.ErrForbidden if the update would leave zero active
// super-admins.
func (s *AdminService) UpdateAdmin(ctx context.Context, id uuid.UUID, in *domain.Admin) (*domain.Admin, error) {
	s.logger.InfoContext(ctx, "updating admin", slog.String("id", id.String()))

	updated, err := pipeline.Transact(ctx, s.pipe, "admin.update", func(ctx context.Context) (*domain.Admin, error) {
		admin, err := s.admins.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		old := adminSnapshot(admin)

		wasActiveSuper := admin.Role == domain.RoleSuperAdmin && admin.Status == domain.AdminActive

		admin.Name = in.Name
		admin.Role = in.Role
		admin.Status = in.Status
		admin.UpdatedAt = s.clock.Now()

		if err := admin.Validate(); err != nil {
			return nil, err
		}

		stillActiveSuper := admin.Role == domain.RoleSuperAdmin && admin.Status == domain.AdminActive
		if wasActiveSuper && !stillActiveSuper {
			n, err := s.admins.CountActiveSuperAdmins(ctx)
			if err != nil {
				return nil, err
			}
			if n <= 1 {
				return nil, fmt.Errorf("cannot demote or archive the last active super-admin: %w", domain.ErrForbidden)
			}
		}

		if err := s.admins.Save(ctx, admin); err != nil {
			return nil, err
		}

		s.pipe.Audit(ctx, pipeline.Entry{
			Action:     "admin.update",
			EntityType: "admin",
			EntityID:   admin.ID.String(),
			OldValues:  old,
			NewValues:  adminSnapshot(admin),
		})
		return admin, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update admin",
			slog.String("operation", "UpdateAdmin"),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// BulkArchive archives the given admin accounts. Accounts whose archival
// would leave zero active super-admins, and accounts already archived, are
// recorded as skipped rather than failed.
func (s *AdminService) BulkArchive(ctx context.Context, ids []uuid.UUID) (*ports.BatchResult, error) {
	s.logger.InfoContext(ctx, "bulk archiving admins", slog.Int("count", len(ids)))

	// The op marks ineligible accounts here; the progress callback turns
	// those marks into skips. The batch runs sequentially, so no locking.
	ineligible := make(map[uuid.UUID]struct{})

	opts := pipeline.BatchOptions[uuid.UUID]{
		ChunkSize: s.batch.ChunkSize,
		Describe:  func(id uuid.UUID) string { return id.String() },
		Progress: func(id uuid.UUID, _, _ int) pipeline.Decision {
			if _, ok := ineligible[id]; ok {
				return pipeline.Skip
			}
			return pipeline.Continue
		},
	}

	result := pipeline.Batch(ctx, s.pipe, ids, opts, func(ctx context.Context, id uuid.UUID, _ int) error {
		return s.pipe.Transaction(ctx, "admin.archive", func(ctx context.Context) error {
			admin, err := s.admins.Find(ctx, id)
			if err != nil {
				return err
			}
			if admin.Status == domain.AdminArchived {
				ineligible[id] = struct{}{}
				return nil
			}
			if admin.Role == domain.RoleSuperAdmin {
				n, err := s.admins.CountActiveSuperAdmins(ctx)
				if err != nil {
					return err
				}
				if n <= 1 {
					ineligible[id] = struct{}{}
					return nil
				}
			}

			old := adminSnapshot(admin)
			admin.Status = domain.AdminArchived
			admin.UpdatedAt = s.clock.Now()

			if err := s.admins.Save(ctx, admin); err != nil {
				return err
			}

			s.pipe.Audit(ctx, pipeline.Entry{
				Action:     "admin.archive",
				EntityType: "admin",
				EntityID:   admin.ID.String(),
				OldValues:  old,
				NewValues:  adminSnapshot(admin),
			})
			return nil
		})
	})

	return result, nil
}

// adminSnapshot captures the audit-relevant fields of an admin account.
func adminSnapshot(a *domain.Admin) map[string]any {
	return map[string]any{
		"email":  a.Email,
		"name":   a.Name,
		"role":   string(a.Role),
		"status": string(a.Status),
	}
}
