package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type CreateIngredientInput struct {
	Name              string
	Description       string
	ShelfLife         int
	UnitOfMeasurement string
}

// UpdateIngredientInput holds the fields to change. Nil fields are left untouched.
type UpdateIngredientInput struct {
	Name              *string
	Description       *string
	ShelfLife         *int
	UnitOfMeasurement *string
}

type IngredientService interface {
	Create(ctx context.Context, input CreateIngredientInput, actorID int64) (*domain.Ingredient, error)
	Get(ctx context.Context, id int64) (*domain.Ingredient, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Ingredient, error)
	Update(ctx context.Context, id int64, input UpdateIngredientInput, actorID int64) (*domain.Ingredient, error)
	Delete(ctx context.Context, id, actorID int64) error
}
