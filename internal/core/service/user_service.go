package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

const entityUser = "user"

// UserService manages accounts: registration, lookup, profile edits and soft deletion.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	trail  ports.AuditTrail
	logger zerolog.Logger
}

// NewUserService builds a UserService. trail may be nil to disable the audit journal.
func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, trail ports.AuditTrail, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, trail: trail, logger: logger}
}

// Register creates an account. Username and email must both be unused; the
// password is stored only as a bcrypt digest.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	if err := s.ensureUsernameFree(ctx, input.Username, 0); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:       input.Username,
		Email:          input.Email,
		HashedPassword: digest,
	}
	if err := s.repo.Add(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to register user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	journal(ctx, s.trail, s.logger, entityUser, user.ID, domain.ActionCreate, 0)
	return user, nil
}

// Get returns the live user with id or domain.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns live users ordered by id within opts.
func (s *UserService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	return s.repo.List(ctx, opts)
}

// Update applies the non-nil fields of input. A new password is rehashed.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput, actorID int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *input.Username, id); err != nil {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *input.Email, id); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = digest
	}
	user.UpdatedBy = domain.ActorRef(actorID)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	journal(ctx, s.trail, s.logger, entityUser, id, domain.ActionUpdate, actorID)
	return user, nil
}

// Delete soft-deletes the user on behalf of actorID.
func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.SoftDelete(ctx, id, actorID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	journal(ctx, s.trail, s.logger, entityUser, id, domain.ActionDelete, actorID)
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, selfID int64) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	return conflictUnlessSelf(existing, err, selfID, fmt.Sprintf("username %q", username))
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	return conflictUnlessSelf(existing, err, selfID, fmt.Sprintf("email %q", email))
}

func conflictUnlessSelf(existing *domain.User, err error, selfID int64, what string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return fmt.Errorf("%s: %w", what, domain.ErrConflict)
	}
	return nil
}
