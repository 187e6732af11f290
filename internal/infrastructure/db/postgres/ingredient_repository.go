package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// IngredientRepository implements ports.IngredientRepository on the ingredients table.
type IngredientRepository struct {
	store *auditedStore[ingredientRow, *ingredientRow]
}

var _ ports.IngredientRepository = (*IngredientRepository)(nil)

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{
		store: newAuditedStore[ingredientRow](db, "name", "description", "shelf_life", "unit_of_measurement"),
	}
}

func (r *IngredientRepository) Add(ctx context.Context, ingredient *domain.Ingredient) error {
	return r.store.create(ctx, ingredientRowFromDomain(ingredient), func(saved *ingredientRow) {
		ingredient.ID = saved.ID
		ingredient.Audit = saved.AuditColumns.toDomain()
	})
}

func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	row, err := r.store.get(ctx, id)
	if err != nil {
		return nil, notFound(err, "ingredient %d", id)
	}
	return row.toDomain(), nil
}

func (r *IngredientRepository) GetByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	row, err := r.store.findBy(ctx, "name", name)
	if err != nil {
		return nil, notFound(err, "ingredient %q", name)
	}
	return row.toDomain(), nil
}

func (r *IngredientRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Ingredient, error) {
	rows, err := r.store.list(ctx, opts)
	if err != nil {
		return nil, err
	}
	ingredients := make([]*domain.Ingredient, 0, len(rows))
	for i := range rows {
		ingredients = append(ingredients, rows[i].toDomain())
	}
	return ingredients, nil
}

func (r *IngredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	row := ingredientRowFromDomain(ingredient)
	if err := r.store.update(ctx, row); err != nil {
		return notFound(err, "ingredient %d", ingredient.ID)
	}
	ingredient.Audit = row.AuditColumns.toDomain()
	return nil
}

func (r *IngredientRepository) SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error) {
	return r.store.softDelete(ctx, id, deletedBy)
}
