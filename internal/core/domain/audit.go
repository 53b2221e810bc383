package domain

import "time"

// Audit actions.
const (
	AuditActionLogin    = "login"
	AuditActionRegister = "register"
	AuditActionLogout   = "logout"
)

// Audit results.
const (
	AuditResultSuccess = "success"
	AuditResultFailure = "failure"
	AuditResultDenied  = "denied"
)

// AuditEvent is one entry in the authentication audit trail. Username is the
// submitted name, recorded even when no such account exists.
type AuditEvent struct {
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	Result     string    `json:"result"`
	OccurredAt time.Time `json:"occurred_at"`
}
