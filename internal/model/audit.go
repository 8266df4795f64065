package model

import "time"

// Audit actions and outcomes. The audit trail is append-only: records are
// written once per attempt and never updated or deleted.
const (
	ActionLogin          = "LOGIN"
	ActionRegister       = "REGISTER"
	ActionPasswordChange = "PASSWORD_CHANGE"

	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Well-known detail keys. Details stays a free-form string map so callers can
// attach extra context, but these keys are the ones readers should expect.
const (
	DetailReason    = "reason"
	DetailClientIP  = "ip"
	DetailUserAgent = "user_agent"
)

type AuditRecord struct {
	ID        string            `json:"id"`
	UserID    *string           `json:"user_id"` // nil when the actor was never identified
	UserEmail string            `json:"user_email"`
	Action    string            `json:"action"`
	Status    string            `json:"status"`
	Details   map[string]string `json:"details"`
	CreatedAt time.Time         `json:"created_at"`
}

// RequestContext carries per-request client facts into audit details.
type RequestContext struct {
	ClientIP  string
	UserAgent string
}
