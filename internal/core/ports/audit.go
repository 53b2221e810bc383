package ports

import (
	"context"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

// AuditRecorder persists audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Submit must not
// block the request path beyond queueing and must never fail it.
type AuditSink interface {
	Submit(event domain.AuditEvent)
}
