package domain

import "time"

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
)

// AuditEvent is one journal entry describing a mutation of an entity.
type AuditEvent struct {
	Entity     string      `json:"entity" bson:"entity"`
	EntityID   int64       `json:"entity_id" bson:"entity_id"`
	Action     AuditAction `json:"action" bson:"action"`
	ActorID    *int64      `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at" bson:"occurred_at"`
}
