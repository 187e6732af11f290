package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// AuditColumns maps the provenance columns present on every table. The store
// stamps the timestamps itself, so gorm's auto time tracking is off.
type AuditColumns struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	CreatedBy *int64
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
	UpdatedBy *int64
	IsDeleted bool `gorm:"not null"`
	DeletedAt *time.Time
	DeletedBy *int64
}

func (a *AuditColumns) audit() *AuditColumns { return a }

func (a AuditColumns) toDomain() domain.Audit {
	return domain.Audit{
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
		UpdatedAt: a.UpdatedAt,
		UpdatedBy: a.UpdatedBy,
		IsDeleted: a.IsDeleted,
		DeletedAt: a.DeletedAt,
		DeletedBy: a.DeletedBy,
	}
}

func auditFromDomain(a domain.Audit) AuditColumns {
	return AuditColumns{
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
		UpdatedAt: a.UpdatedAt,
		UpdatedBy: a.UpdatedBy,
		IsDeleted: a.IsDeleted,
		DeletedAt: a.DeletedAt,
		DeletedBy: a.DeletedBy,
	}
}

type userRow struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"not null;uniqueIndex:users_username_live_key,where:NOT is_deleted"`
	Email          string `gorm:"not null;uniqueIndex:users_email_live_key,where:NOT is_deleted"`
	HashedPassword string `gorm:"not null"`
	AuditColumns
}

func (userRow) TableName() string     { return "users" }
func (r *userRow) primaryKey() int64 { return r.ID }

func userRowFromDomain(u *domain.User) *userRow {
	return &userRow{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		AuditColumns:   auditFromDomain(u.Audit),
	}
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Username:       r.Username,
		Email:          r.Email,
		HashedPassword: r.HashedPassword,
		Audit:          r.AuditColumns.toDomain(),
	}
}

type commentRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	UserID      int64  `gorm:"not null;index"`
	AuditColumns
}

func (commentRow) TableName() string     { return "comments" }
func (r *commentRow) primaryKey() int64 { return r.ID }

func commentRowFromDomain(c *domain.Comment) *commentRow {
	return &commentRow{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		UserID:       c.UserID,
		AuditColumns: auditFromDomain(c.Audit),
	}
}

func (r *commentRow) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		UserID:      r.UserID,
		Audit:       r.AuditColumns.toDomain(),
	}
}

type ingredientRow struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	Name              string `gorm:"not null;uniqueIndex:ingredients_name_live_key,where:NOT is_deleted"`
	Description       string `gorm:"not null"`
	ShelfLife         int    `gorm:"not null;check:shelf_life > 0"`
	UnitOfMeasurement string `gorm:"not null"`
	AuditColumns
}

func (ingredientRow) TableName() string     { return "ingredients" }
func (r *ingredientRow) primaryKey() int64 { return r.ID }

func ingredientRowFromDomain(i *domain.Ingredient) *ingredientRow {
	return &ingredientRow{
		ID:                i.ID,
		Name:              i.Name,
		Description:       i.Description,
		ShelfLife:         i.ShelfLife,
		UnitOfMeasurement: i.UnitOfMeasurement,
		AuditColumns:      auditFromDomain(i.Audit),
	}
}

func (r *ingredientRow) toDomain() *domain.Ingredient {
	return &domain.Ingredient{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		ShelfLife:         r.ShelfLife,
		UnitOfMeasurement: r.UnitOfMeasurement,
		Audit:             r.AuditColumns.toDomain(),
	}
}

type roleRow struct {
	ID          int64       `gorm:"primaryKey;autoIncrement"`
	Name        string      `gorm:"not null"`
	Permissions []uuid.UUID `gorm:"type:jsonb;serializer:json;not null"`
	AuditColumns
}

func (roleRow) TableName() string     { return "roles" }
func (r *roleRow) primaryKey() int64 { return r.ID }

func roleRowFromDomain(r *domain.Role) *roleRow {
	perms := r.Permissions
	if perms == nil {
		perms = []uuid.UUID{}
	}
	return &roleRow{
		ID:           r.ID,
		Name:         r.Name,
		Permissions:  perms,
		AuditColumns: auditFromDomain(r.Audit),
	}
}

func (r *roleRow) toDomain() *domain.Role {
	perms := r.Permissions
	if perms == nil {
		perms = []uuid.UUID{}
	}
	return &domain.Role{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: perms,
		Audit:       r.AuditColumns.toDomain(),
	}
}
