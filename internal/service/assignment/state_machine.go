// internal/service/assignment/state_machine.go
package assignment

import (
	"context"
	"fmt"
	"time"

	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/domain/assistant"
	xerrors "backdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// ApplyResult carries the before/after snapshots of one committed transition
// for the audit log, plus the updated ownership record for the caller.
type ApplyResult struct {
	Prior     assignment.OwnershipSnapshot
	New       assignment.OwnershipSnapshot
	Ownership assignment.CustomerOwnership
}

// StateMachine validates and executes a single ownership transition. No
// in-process lock is held between the reads and the commit; correctness
// relies entirely on the store's conditional write. Exactly one of any set
// of racing transitions on a customer commits; the rest observe zero rows
// affected and report Conflict.
type StateMachine struct {
	ownerships OwnershipStore
	directory  AssistantDirectory
	policy     *Policy
	guard      *WorkloadGuard
	logger     *zap.Logger
	now        func() time.Time
}

func NewStateMachine(ownerships OwnershipStore, directory AssistantDirectory, policy *Policy, guard *WorkloadGuard, logger *zap.Logger) *StateMachine {
	return &StateMachine{
		ownerships: ownerships,
		directory:  directory,
		policy:     policy,
		guard:      guard,
		logger:     logger,
		now:        time.Now,
	}
}

// Apply runs one transition to completion: read, authorize, validate the
// precondition, check capacity, then commit with a compare-and-set on
// assigned_to. No automatic retry on conflict.
func (m *StateMachine) Apply(ctx context.Context, req *assignment.TransitionRequest) (*ApplyResult, error) {
	prior, err := m.ownerships.FindOwnership(ctx, req.CustomerID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %d", xerrors.ErrNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to read ownership of customer %d: %w", req.CustomerID, err)
	}

	if d := m.policy.CheckTransition(req.Actor.Role, req.Action); !d.Allowed {
		return nil, fmt.Errorf("%w: %s may not %s (%s)", xerrors.ErrForbidden, req.Actor.Role, req.Action, d.Reason)
	}

	// Payload validation runs after authorization so a forbidden caller is
	// told Forbidden regardless of payload contents.
	if len(req.Reason) > assignment.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", xerrors.ErrValidation, assignment.MaxReasonLength)
	}

	recipient, err := m.resolveRecipient(ctx, req, prior)
	if err != nil {
		return nil, err
	}

	now := m.now()
	update, expected := buildUpdate(req, prior, recipient, now)

	committed, err := m.ownerships.ConditionalUpdateOwnership(ctx, req.CustomerID, expected, update)
	if err != nil {
		return nil, fmt.Errorf("conditional write for customer %d: %w", req.CustomerID, err)
	}
	if !committed {
		// Another transition won the race between our read and our write.
		m.logger.Info("transition lost conditional write race",
			zap.Int64("customer_id", req.CustomerID),
			zap.String("action", string(req.Action)),
			zap.Int64("actor_id", req.Actor.ID),
		)
		return nil, fmt.Errorf("%w: customer %d", xerrors.ErrConflict, req.CustomerID)
	}

	updated := applyUpdate(prior, req.Actor.ID, update, now)

	return &ApplyResult{
		Prior:     prior.Snapshot(),
		New:       updated.Snapshot(),
		Ownership: updated,
	}, nil
}

// resolveRecipient validates the action's precondition against the prior
// state and resolves the target assistant (nil for unassign). Capacity and
// active-account checks run here so a denied transition never reaches the
// store.
func (m *StateMachine) resolveRecipient(ctx context.Context, req *assignment.TransitionRequest, prior *assignment.CustomerOwnership) (*assistant.Assistant, error) {
	switch req.Action {
	case assignment.ActionClaim:
		if prior.AssignedTo.Valid {
			// A claimer cannot tell losing the race before its read from
			// losing after it, so both paths report the same Conflict.
			return nil, fmt.Errorf("%w: customer %d is already assigned", xerrors.ErrConflict, req.CustomerID)
		}
		// Self-claim: the actor is the recipient, and must be an active
		// assistant under their own capacity limit.
		recipient, err := m.guard.CheckCapacity(ctx, req.Actor.ID)
		if err != nil {
			if xerrors.Is(err, xerrors.ErrRecipientInactive) {
				return nil, fmt.Errorf("%w: claiming account is inactive", xerrors.ErrForbidden)
			}
			return nil, err
		}
		return recipient, nil

	case assignment.ActionAssign:
		// Direct administrative assignment ignores the prior state.
		if req.RecipientID == nil {
			return nil, fmt.Errorf("%w: recipient_id is required for assign", xerrors.ErrValidation)
		}
		return m.guard.CheckCapacity(ctx, *req.RecipientID)

	case assignment.ActionReassign, assignment.ActionTransfer:
		if !prior.AssignedTo.Valid {
			return nil, fmt.Errorf("%w: customer %d is not assigned", xerrors.ErrInvalidTransition, req.CustomerID)
		}
		if req.RecipientID == nil {
			return nil, fmt.Errorf("%w: recipient_id is required for %s", xerrors.ErrValidation, req.Action)
		}
		recipient, err := m.guard.CheckCapacity(ctx, *req.RecipientID)
		if err != nil {
			return nil, err
		}
		if req.Action == assignment.ActionTransfer && !recipient.HasPermission(PermReceiveTransfer) {
			return nil, fmt.Errorf("%w: recipient %d may not receive transfers", xerrors.ErrForbidden, recipient.ID)
		}
		return recipient, nil

	case assignment.ActionUnassign:
		if !prior.AssignedTo.Valid {
			return nil, fmt.Errorf("%w: customer %d is not assigned", xerrors.ErrInvalidTransition, req.CustomerID)
		}
		return nil, nil
	}

	return nil, fmt.Errorf("%w: unknown action %q", xerrors.ErrValidation, req.Action)
}

// buildUpdate computes the conditional write payload and the expected
// assigned_to guard value read in step one.
func buildUpdate(req *assignment.TransitionRequest, prior *assignment.CustomerOwnership, recipient *assistant.Assistant, now time.Time) (assignment.OwnershipUpdate, *int64) {
	var expected *int64
	if prior.AssignedTo.Valid {
		v := prior.AssignedTo.Int64
		expected = &v
	}

	if recipient == nil {
		return assignment.OwnershipUpdate{}, expected
	}

	recipientID := recipient.ID
	actorID := req.Actor.ID
	return assignment.OwnershipUpdate{
		AssignedTo: &recipientID,
		AssignedBy: &actorID,
		AssignedAt: &now,
	}, expected
}

// applyUpdate mirrors the committed write onto an in-memory copy so the
// caller gets the post-commit record without a second read.
func applyUpdate(prior *assignment.CustomerOwnership, actorID int64, update assignment.OwnershipUpdate, now time.Time) assignment.CustomerOwnership {
	updated := *prior
	updated.UpdatedAt = now
	if update.AssignedTo != nil {
		updated.AssignedTo.Int64 = *update.AssignedTo
		updated.AssignedTo.Valid = true
		updated.AssignedBy.Int64 = actorID
		updated.AssignedBy.Valid = true
		updated.AssignedAt.Time = *update.AssignedAt
		updated.AssignedAt.Valid = true
	} else {
		updated.AssignedTo.Valid = false
		updated.AssignedTo.Int64 = 0
		updated.AssignedBy.Valid = false
		updated.AssignedBy.Int64 = 0
		updated.AssignedAt.Valid = false
		updated.AssignedAt.Time = time.Time{}
	}
	return updated
}
