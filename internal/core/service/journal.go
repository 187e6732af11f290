package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// journal appends an entry to the audit trail. The mutation has already been
// committed, so a failed write is logged and otherwise ignored.
func journal(ctx context.Context, trail ports.AuditTrail, log zerolog.Logger, entity string, id int64, action domain.AuditAction, actorID int64) {
	if trail == nil {
		return
	}
	err := trail.Record(ctx, domain.AuditEvent{
		Entity:     entity,
		EntityID:   id,
		Action:     action,
		ActorID:    domain.ActorRef(actorID),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("entity", entity).Int64("entity_id", id).Str("action", string(action)).Msg("audit trail write failed")
	}
}
