package projections

import (
	"context"

	"cafepc/internal/domain/audit"
)

// AuditReader defines the trail read used by the admin screen.
type AuditReader interface {
	List(ctx context.Context, limit int) ([]audit.Event, error)
}

// DefaultAuditTrailLimit bounds the admin trail view.
const DefaultAuditTrailLimit = 100

// GetAuditTrailQuery carries query parameters.
type GetAuditTrailQuery struct {
	Limit int // 0 = DefaultAuditTrailLimit
}

// QueryGetAuditTrail returns recent events, newest first.
func QueryGetAuditTrail(ctx context.Context, query GetAuditTrailQuery, trail AuditReader) ([]audit.Event, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultAuditTrailLimit
	}
	return trail.List(ctx, limit)
}
