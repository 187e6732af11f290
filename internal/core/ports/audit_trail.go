package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// AuditTrail journals entity mutations outside the relational store.
// Failures are reported to the caller but never undo the mutation.
type AuditTrail interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}
