package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type IngredientRepository interface {
	Add(ctx context.Context, ingredient *domain.Ingredient) error
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	// GetByName matches the name exactly (case-sensitive).
	GetByName(ctx context.Context, name string) (*domain.Ingredient, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Ingredient, error)
	Update(ctx context.Context, ingredient *domain.Ingredient) error
	SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error)
}
