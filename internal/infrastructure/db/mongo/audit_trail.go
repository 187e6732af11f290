package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

const auditCollection = "audit_events"

// AuditTrail implements ports.AuditTrail by appending to the audit_events collection.
type AuditTrail struct {
	coll *mongo.Collection
}

var _ ports.AuditTrail = (*AuditTrail)(nil)

func NewAuditTrail(db *mongo.Database) *AuditTrail {
	return &AuditTrail{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup index on (entity, entity_id, occurred_at).
func (a *AuditTrail) EnsureIndexes(ctx context.Context) error {
	_, err := a.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "occurred_at", Value: -1},
		},
		Options: options.Index().SetName("entity_history"),
	})
	if err != nil {
		return fmt.Errorf("audit trail index: %w", err)
	}
	return nil
}

func (a *AuditTrail) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := bson.M{
		"entity":      event.Entity,
		"entity_id":   event.EntityID,
		"action":      string(event.Action),
		"occurred_at": event.OccurredAt.UTC(),
	}
	if event.ActorID != nil {
		doc["actor_id"] = *event.ActorID
	}

	if _, err := a.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
