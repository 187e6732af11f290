package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository on the users table.
type UserRepository struct {
	store *auditedStore[userRow, *userRow]
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{store: newAuditedStore[userRow](db, "username", "email", "hashed_password")}
}

func (r *UserRepository) Add(ctx context.Context, user *domain.User) error {
	return r.store.create(ctx, userRowFromDomain(user), func(saved *userRow) {
		user.ID = saved.ID
		user.Audit = saved.AuditColumns.toDomain()
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := r.store.get(ctx, id)
	if err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.store.findBy(ctx, "email", email)
	if err != nil {
		return nil, notFound(err, "user with email %q", email)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row, err := r.store.findBy(ctx, "username", username)
	if err != nil {
		return nil, notFound(err, "user %q", username)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	rows, err := r.store.list(ctx, opts)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	row := userRowFromDomain(user)
	if err := r.store.update(ctx, row); err != nil {
		return notFound(err, "user %d", user.ID)
	}
	user.Audit = row.AuditColumns.toDomain()
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id, deletedBy int64) (bool, error) {
	return r.store.softDelete(ctx, id, deletedBy)
}
