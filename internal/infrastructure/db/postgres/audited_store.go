package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// auditedRow is implemented by every table model that carries AuditColumns.
type auditedRow interface {
	schema.Tabler
	primaryKey() int64
	audit() *AuditColumns
}

// auditedStore applies the create/update/soft-delete discipline shared by all
// entity tables. T is the row struct, R its pointer.
type auditedStore[T any, R interface {
	*T
	auditedRow
}] struct {
	db *gorm.DB
	// now stamps every audit timestamp. It defaults to the handle's NowFunc.
	now func() time.Time
	// mutable lists the entity columns an update may write, besides updated_at/updated_by.
	mutable []string
}

func newAuditedStore[T any, R interface {
	*T
	auditedRow
}](db *gorm.DB, mutable ...string) *auditedStore[T, R] {
	return &auditedStore[T, R]{db: db, mutable: mutable, now: db.NowFunc}
}

// create inserts row, reloads it so storage-assigned values are visible, hands
// the reloaded row to persisted and only then commits.
func (s *auditedStore[T, R]) create(ctx context.Context, row R, persisted func(R)) error {
	now := s.now().UTC()
	a := row.audit()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.UpdatedBy = a.CreatedBy
	a.IsDeleted = false
	a.DeletedAt = nil
	a.DeletedBy = nil

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		if err := tx.Take(row, row.primaryKey()).Error; err != nil {
			return err
		}
		persisted(row)
		return nil
	})
}

// update writes the mutable columns of a live row and reloads it. Creation and
// deletion columns are never written here. gorm.ErrRecordNotFound is returned
// when no live row has that id.
func (s *auditedStore[T, R]) update(ctx context.Context, row R) error {
	row.audit().UpdatedAt = s.now().UTC()
	columns := append([]string{"updated_at", "updated_by"}, s.mutable...)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(row).Where("is_deleted = ?", false).Select(columns).Updates(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Take(row, row.primaryKey()).Error
	})
}

// softDelete flags a live row as deleted in a single conditional statement and
// reports whether a row matched.
func (s *auditedStore[T, R]) softDelete(ctx context.Context, id, deletedBy int64) (bool, error) {
	now := s.now().UTC()
	values := map[string]any{
		"is_deleted": true,
		"deleted_at": now,
		"updated_at": now,
		"deleted_by": nil,
	}
	if deletedBy != 0 {
		values["deleted_by"] = deletedBy
	}

	res := s.db.WithContext(ctx).
		Model(R(new(T))).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *auditedStore[T, R]) get(ctx context.Context, id int64) (R, error) {
	row := R(new(T))
	if err := s.live(ctx).Take(row, id).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// findBy returns the first live row whose column equals value. column must be
// a trusted identifier.
func (s *auditedStore[T, R]) findBy(ctx context.Context, column string, value any) (R, error) {
	row := R(new(T))
	if err := s.live(ctx).Where(column+" = ?", value).Order("id").Take(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *auditedStore[T, R]) list(ctx context.Context, opts ports.ListOptions, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	q := s.live(ctx).Scopes(scopes...).Order("id")
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *auditedStore[T, R]) live(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("is_deleted = ?", false)
}
