package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// RoleRepository implements ports.RoleRepository on the roles table.
type RoleRepository struct {
	store *auditedStore[roleRow, *roleRow]
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{store: newAuditedStore[roleRow](db, "name", "permissions")}
}

func (r *RoleRepository) Add(ctx context.Context, role *domain.Role) error {
	return r.store.create(ctx, roleRowFromDomain(role), func(saved *roleRow) {
		role.ID = saved.ID
		role.Audit = saved.AuditColumns.toDomain()
	})
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	row, err := r.store.get(ctx, id)
	if err != nil {
		return nil, notFound(err, "role %d", id)
	}
	return row.toDomain(), nil
}

func (r *RoleRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Role, error) {
	rows, err := r.store.list(ctx, opts)
	if err != nil {
		return nil, err
	}
	roles := make([]*domain.Role, 0, len(rows))
	for i := range rows {
		roles = append(roles, rows[i].toDomain())
	}
	return roles, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	row := roleRowFromDomain(role)
	if err := r.store.update(ctx, row); err != nil {
		return notFound(err, "role %d", role.ID)
	}
	role.Audit = row.AuditColumns.toDomain()
	return nil
}

func (r *RoleRepository) SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error) {
	return r.store.softDelete(ctx, id, deletedBy)
}
