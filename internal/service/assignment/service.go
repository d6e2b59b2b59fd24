// internal/service/assignment/service.go
package assignment

import (
	"context"
	"fmt"

	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/domain/assistant"
	xerrors "backdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Service is the façade and the only entry point controllers use. It
// sequences policy → capacity → conditional commit → audit append for the
// five transition kinds, and maps every failure to the stable error
// taxonomy.
type Service struct {
	ownerships OwnershipStore
	directory  AssistantDirectory
	auditStore AuditStore
	policy     *Policy
	guard      *WorkloadGuard
	machine    *StateMachine
	audit      *AuditLog
	notifier   Notifier
	logger     *zap.Logger
}

func NewService(ownerships OwnershipStore, directory AssistantDirectory, auditStore AuditStore, policy *Policy, logger *zap.Logger) *Service {
	guard := NewWorkloadGuard(directory, logger)
	return &Service{
		ownerships: ownerships,
		directory:  directory,
		auditStore: auditStore,
		policy:     policy,
		guard:      guard,
		machine:    NewStateMachine(ownerships, directory, policy, guard, logger),
		audit:      NewAuditLog(auditStore, logger),
		logger:     logger,
	}
}

// SetNotifier attaches a best-effort push channel for committed transitions.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Transition executes one ownership transition end to end. On a committed
// transition whose audit append fails, the result carries AuditWarning and
// no error: the commit is never reversed.
func (s *Service) Transition(ctx context.Context, req *assignment.TransitionRequest) (*assignment.TransitionResult, error) {
	if !validAction(req.Action) {
		return nil, fmt.Errorf("%w: unknown action %q", xerrors.ErrValidation, req.Action)
	}

	res, err := s.machine.Apply(ctx, req)
	if err != nil {
		return nil, s.classify(err)
	}

	result := &assignment.TransitionResult{
		CustomerID: req.CustomerID,
		Status:     res.Ownership.Status(),
		Previous:   res.Prior,
	}
	if res.Ownership.AssignedTo.Valid {
		v := res.Ownership.AssignedTo.Int64
		result.AssignedTo = &v
	}
	if res.Ownership.AssignedAt.Valid {
		t := res.Ownership.AssignedAt.Time
		result.AssignedAt = &t
	}

	event, auditErr := s.audit.Append(ctx, req, res)
	if auditErr != nil {
		// Ownership already committed; report the warning instead of
		// rolling back and reopening the race window.
		result.AuditWarning = xerrors.KindAuditWriteFailed
	} else {
		result.AuditEventID = event.ID
		if s.notifier != nil {
			s.notifier.AssignmentCommitted(event)
		}
	}

	s.logger.Info("assignment transition committed",
		zap.Int64("customer_id", req.CustomerID),
		zap.String("action", string(req.Action)),
		zap.Int64("actor_id", req.Actor.ID),
		zap.String("status", string(result.Status)),
	)

	return result, nil
}

// GetOwnership returns the current ownership record, policy-checked: admins
// read anything, assistants only customers they own.
func (s *Service) GetOwnership(ctx context.Context, actor assignment.Actor, customerID int64) (*assignment.CustomerOwnership, error) {
	o, err := s.ownerships.FindOwnership(ctx, customerID)
	if err != nil {
		return nil, s.classify(err)
	}

	isOwner := o.AssignedTo.Valid && o.AssignedTo.Int64 == actor.ID
	if d := s.policy.CheckRead(actor.Role, isOwner); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", xerrors.ErrForbidden, d.Reason)
	}

	return o, nil
}

// CustomerHistory returns a customer's audit trail, newest first, under the
// same read policy as GetOwnership.
func (s *Service) CustomerHistory(ctx context.Context, actor assignment.Actor, customerID int64, page, pageSize int) (*assignment.HistoryResponse, error) {
	o, err := s.ownerships.FindOwnership(ctx, customerID)
	if err != nil {
		return nil, s.classify(err)
	}

	isOwner := o.AssignedTo.Valid && o.AssignedTo.Int64 == actor.ID
	if d := s.policy.CheckRead(actor.Role, isOwner); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", xerrors.ErrForbidden, d.Reason)
	}

	filters := &assignment.HistoryFilters{
		CustomerID: &customerID,
		Page:       page,
		PageSize:   pageSize,
	}
	return s.history(ctx, filters)
}

// History is the cross-customer audit query surface for supervisory roles.
func (s *Service) History(ctx context.Context, actor assignment.Actor, filters *assignment.HistoryFilters) (*assignment.HistoryResponse, error) {
	if d := s.policy.CheckHistory(actor.Role); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", xerrors.ErrForbidden, d.Reason)
	}
	return s.history(ctx, filters)
}

func (s *Service) history(ctx context.Context, filters *assignment.HistoryFilters) (*assignment.HistoryResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	events, total, err := s.auditStore.ListEvents(ctx, filters)
	if err != nil {
		return nil, s.classify(fmt.Errorf("failed to list assignment events: %w", err))
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &assignment.HistoryResponse{
		Events:     events,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Workload reports an assistant's current assignment load.
func (s *Service) Workload(ctx context.Context, assistantID int64) (*assignment.WorkloadInfo, error) {
	info, err := s.guard.Workload(ctx, assistantID)
	if err != nil {
		return nil, s.classify(err)
	}
	return info, nil
}

// AssignableAssistants lists active assistants with remaining capacity.
func (s *Service) AssignableAssistants(ctx context.Context, actor assignment.Actor) ([]assistant.AssignableAssistant, error) {
	if d := s.policy.CheckHistory(actor.Role); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", xerrors.ErrForbidden, d.Reason)
	}

	list, err := s.directory.ListAssignable(ctx)
	if err != nil {
		return nil, s.classify(fmt.Errorf("failed to list assignable assistants: %w", err))
	}
	return list, nil
}

// classify converts unexpected infrastructure failures into the retryable
// StoreUnavailable kind; taxonomy errors pass through untouched.
func (s *Service) classify(err error) error {
	if xerrors.KindOf(err) != xerrors.KindInternal {
		return err
	}
	s.logger.Error("store failure during assignment operation", zap.Error(err))
	return fmt.Errorf("%w: %v", xerrors.ErrStoreUnavailable, err)
}

func validAction(a assignment.Action) bool {
	switch a {
	case assignment.ActionClaim, assignment.ActionAssign, assignment.ActionReassign,
		assignment.ActionTransfer, assignment.ActionUnassign:
		return true
	}
	return false
}
