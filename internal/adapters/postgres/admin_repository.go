package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

var _ ports.AdminRepository = (*AdminRepository)(nil)

// AdminRepository persists admin accounts.
type AdminRepository struct {
	store *Store
}

// NewAdminRepository creates the repository over the store.
func NewAdminRepository(store *Store) *AdminRepository {
	return &AdminRepository{store: store}
}

const adminColumns = `id, email, name, role, status, created_at, updated_at`

func (r *AdminRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	var a domain.Admin
	err := r.store.querier(ctx).QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Email, &a.Name, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr("find admin", err)
	}
	return &a, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE lower(email) = lower($1)`

	var a domain.Admin
	err := r.store.querier(ctx).QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.Name, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr("find admin by email", err)
	}
	return &a, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY name`

	rows, err := r.store.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, translateErr("list admins", err)
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(
			&a.ID, &a.Email, &a.Name, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, translateErr("scan admin", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr("list admins", err)
	}
	return admins, nil
}

func (r *AdminRepository) Save(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, email, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.store.querier(ctx).Exec(ctx, query,
		admin.ID, admin.Email, admin.Name, admin.Role, admin.Status,
		admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		return translateErr("save admin", err)
	}
	return nil
}

// CountActiveSuperAdmins runs inside the caller's transaction when one is
// active, so the last-super-admin guard reads its own uncommitted archives.
func (r *AdminRepository) CountActiveSuperAdmins(ctx context.Context) (int, error) {
	query := `SELECT count(*) FROM admins WHERE role = $1 AND status = $2`

	var n int
	err := r.store.querier(ctx).QueryRow(ctx, query, domain.RoleSuperAdmin, domain.AdminActive).Scan(&n)
	if err != nil {
		return 0, translateErr("count super admins", err)
	}
	return n, nil
}
