package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type CreateRoleInput struct {
	Name        string
	Permissions []uuid.UUID
}

// UpdateRoleInput holds the fields to change. A nil Permissions slice is left
// untouched; an empty non-nil slice clears the list.
type UpdateRoleInput struct {
	Name        *string
	Permissions []uuid.UUID
}

type RoleService interface {
	Create(ctx context.Context, input CreateRoleInput, actorID int64) (*domain.Role, error)
	Get(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Role, error)
	Update(ctx context.Context, id int64, input UpdateRoleInput, actorID int64) (*domain.Role, error)
	Delete(ctx context.Context, id, actorID int64) error
}
