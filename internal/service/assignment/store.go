// internal/service/assignment/store.go
package assignment

import (
	"context"

	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/domain/assistant"
)

// OwnershipStore is the persistent record store the engine mutates.
// ConditionalUpdate must be a single atomic compare-and-set on assigned_to:
// it applies the update only when the stored assigned_to still equals
// expectedAssignedTo (nil meaning unassigned) and reports whether it did.
type OwnershipStore interface {
	FindOwnership(ctx context.Context, customerID int64) (*assignment.CustomerOwnership, error)
	ConditionalUpdateOwnership(ctx context.Context, customerID int64, expectedAssignedTo *int64, update assignment.OwnershipUpdate) (bool, error)
}

// AssistantDirectory resolves assistants and their live workload.
type AssistantDirectory interface {
	FindAssistant(ctx context.Context, id int64) (*assistant.Assistant, error)
	CountAssigned(ctx context.Context, assistantID int64) (int64, error)
	ListAssignable(ctx context.Context) ([]assistant.AssignableAssistant, error)
}

// AuditStore is append-only. Events are never updated or deleted.
type AuditStore interface {
	AppendEvent(ctx context.Context, event *assignment.AssignmentEvent) error
	ListEvents(ctx context.Context, filters *assignment.HistoryFilters) ([]assignment.AssignmentEvent, int64, error)
}

// Notifier receives committed transitions for best-effort push delivery.
// Implementations must not block.
type Notifier interface {
	AssignmentCommitted(event *assignment.AssignmentEvent)
}
