package sqlite

import (
	"context"
	"time"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	username    TEXT    NOT NULL,
	action      TEXT    NOT NULL,
	result      TEXT    NOT NULL,
	occurred_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_log_username ON audit_log (username, occurred_at);
`

// AuditStore appends authentication audit events to the same SQLite file as
// the credential store.
type AuditStore struct {
	store *CredentialStore
}

// NewAuditStore wraps the credential store's database handle.
func NewAuditStore(store *CredentialStore) *AuditStore {
	return &AuditStore{store: store}
}

// EnsureSchema creates the audit table and index if missing.
func (a *AuditStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := a.store.opCtx(ctx)
	defer cancel()
	if _, err := a.store.db.ExecContext(ctx, auditSchema); err != nil {
		return storageErr("ensure audit schema", err)
	}
	return nil
}

// Record appends one audit event.
func (a *AuditStore) Record(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := a.store.opCtx(ctx)
	defer cancel()
	_, err := a.store.db.ExecContext(ctx,
		`INSERT INTO audit_log (username, action, result, occurred_at) VALUES (?, ?, ?, ?)`,
		event.Username, event.Action, event.Result, event.OccurredAt.UnixMilli(),
	)
	if err != nil {
		return storageErr("record audit event", err)
	}
	return nil
}

// RecentByUsername returns up to limit events for the username, newest first.
func (a *AuditStore) RecentByUsername(ctx context.Context, username string, limit int) ([]domain.AuditEvent, error) {
	ctx, cancel := a.store.opCtx(ctx)
	defer cancel()
	rows, err := a.store.db.QueryContext(ctx,
		`SELECT username, action, result, occurred_at
		   FROM audit_log
		  WHERE username = ?
		  ORDER BY occurred_at DESC, id DESC
		  LIMIT ?`,
		username, limit,
	)
	if err != nil {
		return nil, storageErr("list audit events", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var ev domain.AuditEvent
		var occurredAt int64
		if err := rows.Scan(&ev.Username, &ev.Action, &ev.Result, &occurredAt); err != nil {
			return nil, storageErr("scan audit event", err)
		}
		ev.OccurredAt = time.UnixMilli(occurredAt)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list audit events", err)
	}
	return events, nil
}
