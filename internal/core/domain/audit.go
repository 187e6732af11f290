package domain

import "time"

// Audit carries the provenance columns shared by every persisted entity.
// CreatedAt/CreatedBy are written once; the deletion fields only by a soft delete.
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy *int64     `json:"created_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
	UpdatedBy *int64     `json:"updated_by,omitempty"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *int64     `json:"deleted_by,omitempty"`
}

// ActorRef turns an acting user id into an audit reference; zero means anonymous.
func ActorRef(actorID int64) *int64 {
	if actorID == 0 {
		return nil
	}
	return &actorID
}
