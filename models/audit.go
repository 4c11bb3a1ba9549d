package models

import "time"

// Audit action codes recorded by the order workflow.
const (
	AuditOrderCreated   = "TX_CREATED"
	AuditOrderValidated = "TX_VALIDATED"
)

// AuditEntry is a single append-only record of a user-visible action.
// Entries are written best-effort: an audit failure never fails the
// business operation that produced it.
type AuditEntry struct {
	// ID is the server-assigned identifier of the entry.
	ID int64 `json:"id"`

	// ActorID is the account that performed the action.
	ActorID int64 `json:"actor_id"`

	// Action is one of the Audit* action codes.
	Action string `json:"action"`

	// Entity names the table/aggregate the action touched (e.g. "orders").
	Entity string `json:"entity"`

	// EntityID is the identifier of the touched record.
	EntityID int64 `json:"entity_id"`

	// Message is the human-readable description of the action.
	Message string `json:"message"`

	// CreatedAt is the timestamp the entry was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the AuditEntry model.
func (a AuditEntry) TableName() string {
	return "audit_log"
}
