package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

const entityRole = "role"

// RoleService manages roles and their permission lists.
type RoleService struct {
	repo   ports.RoleRepository
	trail  ports.AuditTrail
	logger zerolog.Logger
}

// NewRoleService builds a RoleService. trail may be nil.
func NewRoleService(repo ports.RoleRepository, trail ports.AuditTrail, logger zerolog.Logger) *RoleService {
	return &RoleService{repo: repo, trail: trail, logger: logger}
}

// Create stores a role. Permissions are kept as given, duplicates included.
func (s *RoleService) Create(ctx context.Context, input ports.CreateRoleInput, actorID int64) (*domain.Role, error) {
	role := &domain.Role{
		Name:        input.Name,
		Permissions: clonePermissions(input.Permissions),
	}
	role.CreatedBy = domain.ActorRef(actorID)

	if err := s.repo.Add(ctx, role); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create role")
		return nil, err
	}

	s.logger.Info().Int64("role_id", role.ID).Str("name", role.Name).Int("permissions", len(role.Permissions)).Msg("role created")
	journal(ctx, s.trail, s.logger, entityRole, role.ID, domain.ActionCreate, actorID)
	return role, nil
}

// Get returns the live role with id or domain.ErrNotFound.
func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns live roles ordered by id within opts.
func (s *RoleService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Role, error) {
	return s.repo.List(ctx, opts)
}

// Update applies the non-nil fields of input. An empty non-nil permission list clears it.
func (s *RoleService) Update(ctx context.Context, id int64, input ports.UpdateRoleInput, actorID int64) (*domain.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		role.Name = *input.Name
	}
	if input.Permissions != nil {
		role.Permissions = clonePermissions(input.Permissions)
	}
	role.UpdatedBy = domain.ActorRef(actorID)

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("role_id", id).Msg("role updated")
	journal(ctx, s.trail, s.logger, entityRole, id, domain.ActionUpdate, actorID)
	return role, nil
}

// Delete soft-deletes the role.
func (s *RoleService) Delete(ctx context.Context, id, actorID int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.SoftDelete(ctx, id, actorID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("role %d: %w", id, domain.ErrNotFound)
	}

	s.logger.Info().Int64("role_id", id).Msg("role deleted")
	journal(ctx, s.trail, s.logger, entityRole, id, domain.ActionDelete, actorID)
	return nil
}

// clonePermissions copies the list as-is; duplicates are kept.
func clonePermissions(in []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(in))
	copy(out, in)
	return out
}
