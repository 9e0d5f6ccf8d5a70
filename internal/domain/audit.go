package domain

import "time"

// AuditEntry is an append-only record of a state-changing action. Entries are
// never updated or deleted. ActorID is nil for anonymous actions.
type AuditEntry struct {
	ID        string
	ActorID   *string
	Action    string
	Module    string
	Details   string
	Timestamp time.Time
}
