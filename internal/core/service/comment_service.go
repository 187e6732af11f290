package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

const entityComment = "comment"

// CommentService manages comments attached to users.
type CommentService struct {
	repo   ports.CommentRepository
	users  ports.UserRepository
	trail  ports.AuditTrail
	logger zerolog.Logger
}

// NewCommentService builds a CommentService. users resolves comment owners; trail may be nil.
func NewCommentService(repo ports.CommentRepository, users ports.UserRepository, trail ports.AuditTrail, logger zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, users: users, trail: trail, logger: logger}
}

// Create stores a comment owned by input.UserID, which must be a live user.
func (s *CommentService) Create(ctx context.Context, input ports.CreateCommentInput, actorID int64) (*domain.Comment, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Name:        input.Name,
		Description: input.Description,
		UserID:      input.UserID,
	}
	comment.CreatedBy = domain.ActorRef(actorID)

	if err := s.repo.Add(ctx, comment); err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("failed to create comment")
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("user_id", comment.UserID).Msg("comment created")
	journal(ctx, s.trail, s.logger, entityComment, comment.ID, domain.ActionCreate, actorID)
	return comment, nil
}

// Get returns the live comment with id or domain.ErrNotFound.
func (s *CommentService) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns live comments ordered by id within opts.
func (s *CommentService) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Comment, error) {
	return s.repo.List(ctx, opts)
}

// ListByUser returns the live comments owned by userID.
func (s *CommentService) ListByUser(ctx context.Context, userID int64, opts ports.ListOptions) ([]*domain.Comment, error) {
	return s.repo.ListByUser(ctx, userID, opts)
}

// Update applies the non-nil fields of input. updated_by records the actor,
// who is not necessarily the owner.
func (s *CommentService) Update(ctx context.Context, id int64, input ports.UpdateCommentInput, actorID int64) (*domain.Comment, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil && *input.UserID != comment.UserID {
		if _, err := s.users.GetByID(ctx, *input.UserID); err != nil {
			return nil, err
		}
		comment.UserID = *input.UserID
	}
	if input.Name != nil {
		comment.Name = *input.Name
	}
	if input.Description != nil {
		comment.Description = *input.Description
	}
	comment.UpdatedBy = domain.ActorRef(actorID)

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", id).Msg("comment updated")
	journal(ctx, s.trail, s.logger, entityComment, id, domain.ActionUpdate, actorID)
	return comment, nil
}

// Delete soft-deletes the comment like every other entity.
func (s *CommentService) Delete(ctx context.Context, id, actorID int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.SoftDelete(ctx, id, actorID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}

	s.logger.Info().Int64("comment_id", id).Msg("comment deleted")
	journal(ctx, s.trail, s.logger, entityComment, id, domain.ActionDelete, actorID)
	return nil
}
