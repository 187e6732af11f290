package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type RoleRepository interface {
	Add(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error)
}
