package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cafepc/internal/domain/audit"

	"github.com/google/uuid"
)

// AuditLog records events for the admin trail. Appends are best-effort:
// a failing trail never blocks the operation that produced the event.
type AuditLog interface {
	Append(ctx context.Context, e audit.Event) error
}

func recordAudit(ctx context.Context, log AuditLog, category audit.Category, action audit.Action, actorID, resourceID, detail string) {
	if log == nil {
		return
	}
	e := audit.Event{
		ID:         uuid.New().String(),
		Timestamp:  time.Now(),
		Category:   category,
		Action:     action,
		ActorID:    actorID,
		ResourceID: resourceID,
		Detail:     detail,
	}
	if err := log.Append(ctx, e); err != nil {
		slog.Warn("audit_append_failed", "error", err, "action", action, "actor_id", actorID)
	}
}
