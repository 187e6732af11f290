package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// UserRepository persists users. Lookups only see live (not soft-deleted) rows
// and report domain.ErrNotFound when nothing matches.
type UserRepository interface {
	Add(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error)
}
