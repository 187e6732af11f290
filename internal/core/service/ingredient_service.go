package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

const entityIngredient = "ingredient"

// IngredientService manages the ingredient catalogue. Names are unique among live ingredients.
type IngredientService struct {
	repo   ports.IngredientRepository
	trail  ports.AuditTrail
	logger zerolog.Logger
}

// NewIngredientService builds an IngredientService. trail may be nil.
func NewIngredientService(repo ports.IngredientRepository, trail ports.AuditTrail, logger zerolog.Logger) *IngredientService {
	return &IngredientService{repo: repo, trail: trail, logger: logger}
}

// Create stores a new ingredient. The name must not be used by another live ingredient.
func (s *IngredientService) Create(ctx context.Context, input ports.CreateIngredientInput, actorID int64) (*domain.Ingredient, error) {
	if err := s.ensureNameFree(ctx, input.Name, 0); err != nil {
		return nil, err
	}

	ingredient := &domain.Ingredient{
		Name:              input.Name,
		Description:       input.Description,
		ShelfLife:         input.ShelfLife,
		UnitOfMeasurement: input.UnitOfMeasurement,
	}
	ingredient.CreatedBy = domain.ActorRef(actorID)

	if err := s.repo.Add(ctx, ingredient); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create ingredient")
		return nil, err
	}

	s.logger.Info().Int64("ingredient_id", ingredient.ID).Str("name", ingredient.Name).Msg("ingredient created")
	journal(ctx, s.trail, s.logger, entityIngredient, ingredient.ID, domain.ActionCreate, actorID)
	return ingredient, nil
}

// Get returns the live ingredient with id or domain.ErrNotFound.
func (s *IngredientService) Get(ctx context.Context, id int64) (*domain.Ingredient, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns live ingredients ordered by id within opts.
func (s *IngredientService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Ingredient, error) {
	return s.repo.List(ctx, opts)
}

// Update applies the non-nil fields of input. A rename is checked against the
// other live ingredients.
func (s *IngredientService) Update(ctx context.Context, id int64, input ports.UpdateIngredientInput, actorID int64) (*domain.Ingredient, error) {
	ingredient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != ingredient.Name {
		if err := s.ensureNameFree(ctx, *input.Name, id); err != nil {
			return nil, err
		}
		ingredient.Name = *input.Name
	}
	if input.Description != nil {
		ingredient.Description = *input.Description
	}
	if input.ShelfLife != nil {
		ingredient.ShelfLife = *input.ShelfLife
	}
	if input.UnitOfMeasurement != nil {
		ingredient.UnitOfMeasurement = *input.UnitOfMeasurement
	}
	ingredient.UpdatedBy = domain.ActorRef(actorID)

	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("ingredient_id", id).Msg("ingredient updated")
	journal(ctx, s.trail, s.logger, entityIngredient, id, domain.ActionUpdate, actorID)
	return ingredient, nil
}

// Delete soft-deletes the ingredient, freeing its name for reuse.
func (s *IngredientService) Delete(ctx context.Context, id, actorID int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.SoftDelete(ctx, id, actorID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("ingredient %d: %w", id, domain.ErrNotFound)
	}

	s.logger.Info().Int64("ingredient_id", id).Msg("ingredient deleted")
	journal(ctx, s.trail, s.logger, entityIngredient, id, domain.ActionDelete, actorID)
	return nil
}

// ensureNameFree fails with ErrConflict when a live ingredient other than selfID uses name.
func (s *IngredientService) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return fmt.Errorf("ingredient %q: %w", name, domain.ErrConflict)
	}
	return nil
}
