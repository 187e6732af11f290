package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type CreateCommentInput struct {
	Name        string
	Description string
	UserID      int64
}

// UpdateCommentInput holds the fields to change. Nil fields are left untouched.
type UpdateCommentInput struct {
	Name        *string
	Description *string
	UserID      *int64
}

type CommentService interface {
	Create(ctx context.Context, input CreateCommentInput, actorID int64) (*domain.Comment, error)
	Get(ctx context.Context, id int64) (*domain.Comment, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Comment, error)
	ListByUser(ctx context.Context, userID int64, opts ListOptions) ([]*domain.Comment, error)
	Update(ctx context.Context, id int64, input UpdateCommentInput, actorID int64) (*domain.Comment, error)
	Delete(ctx context.Context, id, actorID int64) error
}
