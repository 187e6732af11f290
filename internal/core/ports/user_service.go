package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// RegisterUserInput carries a self-registration request.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput holds the fields to change. Nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput, actorID int64) (*domain.User, error)
	Delete(ctx context.Context, id, actorID int64) error
}
