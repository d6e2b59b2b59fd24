// internal/domain/assignment/dto.go
package assignment

import "time"

// Actor is the authenticated caller as the engine sees it. Controllers build
// it from verified JWT claims; the engine never touches the transport.
type Actor struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

// TransitionRequest is the transport-agnostic input to the façade.
type TransitionRequest struct {
	CustomerID  int64           `json:"customer_id"`
	Actor       Actor           `json:"actor"`
	Action      Action          `json:"action"`
	RecipientID *int64          `json:"recipient_id,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Metadata    RequestMetadata `json:"request_metadata"`
}

// TransitionPayload is the JSON body accepted by the transition endpoints.
type TransitionPayload struct {
	RecipientID *int64 `json:"recipient_id" binding:"omitempty,min=1"`
	Reason      string `json:"reason" binding:"max=500"`
}

// TransitionResult is returned on a committed transition. AuditWarning is set
// when the ownership write succeeded but the audit append did not.
type TransitionResult struct {
	CustomerID   int64      `json:"customer_id"`
	AssignedTo   *int64     `json:"assigned_to"`
	Status       Status     `json:"assignment_status"`
	AssignedAt   *time.Time `json:"assigned_at"`
	AuditEventID string     `json:"audit_event_id,omitempty"`
	AuditWarning string     `json:"audit_warning,omitempty"`

	Previous OwnershipSnapshot `json:"previous_assignment"`
}

// OwnershipUpdate carries the fields written by a committed transition.
// All-nil means unassign.
type OwnershipUpdate struct {
	AssignedTo *int64
	AssignedBy *int64
	AssignedAt *time.Time
}

// HistoryFilters narrow audit trail queries.
type HistoryFilters struct {
	CustomerID *int64     `form:"customer_id"`
	ActionBy   *int64     `form:"action_by"`
	Action     string     `form:"action"`
	Since      *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until      *time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// HistoryResponse is a paginated audit trail slice, newest first.
type HistoryResponse struct {
	Events     []AssignmentEvent `json:"events"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// WorkloadInfo reports an assistant's live assignment load.
type WorkloadInfo struct {
	AssistantID int64 `json:"assistant_id"`
	Assigned    int64 `json:"assigned"`
	Limit       int   `json:"limit"`
	Remaining   int64 `json:"remaining"`
}
