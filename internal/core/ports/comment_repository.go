package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type CommentRepository interface {
	Add(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByUser(ctx context.Context, userID int64, opts ListOptions) ([]*domain.Comment, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error)
}
