package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// CommentRepository implements ports.CommentRepository on the comments table.
type CommentRepository struct {
	store *auditedStore[commentRow, *commentRow]
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{store: newAuditedStore[commentRow](db, "name", "description", "user_id")}
}

func (r *CommentRepository) Add(ctx context.Context, comment *domain.Comment) error {
	return r.store.create(ctx, commentRowFromDomain(comment), func(saved *commentRow) {
		comment.ID = saved.ID
		comment.Audit = saved.AuditColumns.toDomain()
	})
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	row, err := r.store.get(ctx, id)
	if err != nil {
		return nil, notFound(err, "comment %d", id)
	}
	return row.toDomain(), nil
}

func (r *CommentRepository) ListByUser(ctx context.Context, userID int64, opts ports.ListOptions) ([]*domain.Comment, error) {
	return r.list(ctx, opts, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

func (r *CommentRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Comment, error) {
	return r.list(ctx, opts)
}

func (r *CommentRepository) list(ctx context.Context, opts ports.ListOptions, scopes ...func(*gorm.DB) *gorm.DB) ([]*domain.Comment, error) {
	rows, err := r.store.list(ctx, opts, scopes...)
	if err != nil {
		return nil, err
	}
	comments := make([]*domain.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, rows[i].toDomain())
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	row := commentRowFromDomain(comment)
	if err := r.store.update(ctx, row); err != nil {
		return notFound(err, "comment %d", comment.ID)
	}
	comment.Audit = row.AuditColumns.toDomain()
	return nil
}

func (r *CommentRepository) SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error) {
	return r.store.softDelete(ctx, id, deletedBy)
}
