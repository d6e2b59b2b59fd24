// internal/domain/assignment/entity.go
package assignment

import (
	"database/sql"
	"time"
)

// Action is one of the five ownership transition kinds.
type Action string

const (
	ActionClaim    Action = "claim"
	ActionAssign   Action = "assign"
	ActionReassign Action = "reassign"
	ActionTransfer Action = "transfer"
	ActionUnassign Action = "unassign"
)

// Audit action labels stored on events. They differ from the request verbs
// (past tense, plus the transfer-requested special case).
const (
	EventClaimed           = "claimed"
	EventAssigned          = "assigned"
	EventReassigned        = "reassigned"
	EventUnassigned        = "unassigned"
	EventTransferRequested = "transfer-requested"
)

// Status is derived from AssignedTo and never stored independently.
type Status string

const (
	StatusUnassigned Status = "unassigned"
	StatusAssigned   Status = "assigned"
)

// MaxReasonLength caps the optional free-text reason on a transition.
const MaxReasonLength = 500

// CustomerOwnership is the ownership subset of a customer record.
// AssignedTo is the single source of truth; Status() derives from it.
type CustomerOwnership struct {
	CustomerID int64         `json:"customer_id" db:"id"`
	AssignedTo sql.NullInt64 `json:"assigned_to,omitempty" db:"assigned_to"`
	AssignedBy sql.NullInt64 `json:"assigned_by,omitempty" db:"assigned_by"`
	AssignedAt sql.NullTime  `json:"assigned_at,omitempty" db:"assigned_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// Status derives the assignment status from AssignedTo.
func (o *CustomerOwnership) Status() Status {
	if o.AssignedTo.Valid {
		return StatusAssigned
	}
	return StatusUnassigned
}

// Snapshot freezes the ownership fields for audit purposes.
func (o *CustomerOwnership) Snapshot() OwnershipSnapshot {
	s := OwnershipSnapshot{Status: o.Status()}
	if o.AssignedTo.Valid {
		v := o.AssignedTo.Int64
		s.AssignedTo = &v
	}
	if o.AssignedAt.Valid {
		t := o.AssignedAt.Time
		s.AssignedAt = &t
	}
	return s
}

// OwnershipSnapshot is the before/after shape recorded on audit events.
type OwnershipSnapshot struct {
	AssignedTo *int64     `json:"assigned_to"`
	Status     Status     `json:"assignment_status"`
	AssignedAt *time.Time `json:"assigned_at"`
}

// RequestMetadata is captured at the transport boundary and stored verbatim.
type RequestMetadata struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}

// AssignmentEvent is one committed transition. Immutable once written.
type AssignmentEvent struct {
	ID                 string            `json:"id" db:"id"`
	CustomerID         int64             `json:"customer_id" db:"customer_id"`
	ActionBy           int64             `json:"action_by" db:"action_by"`
	Action             string            `json:"action" db:"action"`
	PreviousAssignment OwnershipSnapshot `json:"previous_assignment" db:"previous_assignment"`
	NewAssignment      OwnershipSnapshot `json:"new_assignment" db:"new_assignment"`
	Reason             sql.NullString    `json:"reason,omitempty" db:"reason"`
	RequestMetadata    RequestMetadata   `json:"request_metadata" db:"request_metadata"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
}

// EventAction maps a transition action to its audit label.
func EventAction(a Action) string {
	switch a {
	case ActionClaim:
		return EventClaimed
	case ActionAssign:
		return EventAssigned
	case ActionReassign:
		return EventReassigned
	case ActionTransfer:
		return EventTransferRequested
	case ActionUnassign:
		return EventUnassigned
	}
	return string(a)
}
