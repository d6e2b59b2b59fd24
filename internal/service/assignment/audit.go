// internal/service/assignment/audit.go
package assignment

import (
	"context"
	"database/sql"
	"fmt"

	"backdesk-service/internal/domain/assignment"
	xerrors "backdesk-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// AuditLog appends one immutable AssignmentEvent per committed transition.
// It is only invoked after a successful commit; denied or failed transitions
// never reach it.
type AuditLog struct {
	store  AuditStore
	logger *zap.Logger
}

func NewAuditLog(store AuditStore, logger *zap.Logger) *AuditLog {
	return &AuditLog{
		store:  store,
		logger: logger,
	}
}

// Append writes the audit event for a committed transition. The ownership
// mutation has already committed, so a failure here is surfaced as
// ErrAuditWriteFailed for the caller to report as a warning; it is never
// rolled back.
func (l *AuditLog) Append(ctx context.Context, req *assignment.TransitionRequest, res *ApplyResult) (*assignment.AssignmentEvent, error) {
	event := &assignment.AssignmentEvent{
		ID:                 ulid.Make().String(),
		CustomerID:         req.CustomerID,
		ActionBy:           req.Actor.ID,
		Action:             assignment.EventAction(req.Action),
		PreviousAssignment: res.Prior,
		NewAssignment:      res.New,
		Reason:             sql.NullString{String: req.Reason, Valid: req.Reason != ""},
		RequestMetadata:    req.Metadata,
		CreatedAt:          res.Ownership.UpdatedAt,
	}

	if err := l.store.AppendEvent(ctx, event); err != nil {
		l.logger.Error("audit event write failed after committed transition",
			zap.String("event_id", event.ID),
			zap.Int64("customer_id", event.CustomerID),
			zap.String("action", event.Action),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", xerrors.ErrAuditWriteFailed, err)
	}

	return event, nil
}
