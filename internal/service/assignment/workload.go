// internal/service/assignment/workload.go
package assignment

import (
	"context"
	"fmt"

	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/domain/assistant"
	xerrors "backdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// WorkloadGuard checks a candidate recipient's live assignment count against
// their capacity limit. It is always evaluated immediately before the commit,
// never cached: the count participates in the claim race.
type WorkloadGuard struct {
	directory AssistantDirectory
	logger    *zap.Logger
}

func NewWorkloadGuard(directory AssistantDirectory, logger *zap.Logger) *WorkloadGuard {
	return &WorkloadGuard{
		directory: directory,
		logger:    logger,
	}
}

// CheckCapacity verifies the candidate exists, is active and has room for one
// more customer. It returns the resolved assistant so callers avoid a second
// lookup. A missing or deactivated candidate reports RecipientInactive.
func (g *WorkloadGuard) CheckCapacity(ctx context.Context, candidateID int64) (*assistant.Assistant, error) {
	a, err := g.directory.FindAssistant(ctx, candidateID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: assistant %d", xerrors.ErrRecipientInactive, candidateID)
		}
		return nil, fmt.Errorf("failed to resolve recipient %d: %w", candidateID, err)
	}
	if !a.IsActive {
		return nil, fmt.Errorf("%w: assistant %d", xerrors.ErrRecipientInactive, candidateID)
	}

	count, err := g.directory.CountAssigned(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments for %d: %w", candidateID, err)
	}

	limit := a.CapacityLimit()
	if count >= int64(limit) {
		g.logger.Info("capacity check denied",
			zap.Int64("assistant_id", candidateID),
			zap.Int64("assigned", count),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("%w: %d of %d assigned", xerrors.ErrCapacityExceeded, count, limit)
	}

	return a, nil
}

// Workload reports the candidate's current load without enforcing the limit.
func (g *WorkloadGuard) Workload(ctx context.Context, assistantID int64) (*assignment.WorkloadInfo, error) {
	a, err := g.directory.FindAssistant(ctx, assistantID)
	if err != nil {
		return nil, err
	}

	count, err := g.directory.CountAssigned(ctx, assistantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments for %d: %w", assistantID, err)
	}

	limit := a.CapacityLimit()
	remaining := int64(limit) - count
	if remaining < 0 {
		remaining = 0
	}

	return &assignment.WorkloadInfo{
		AssistantID: assistantID,
		Assigned:    count,
		Limit:       limit,
		Remaining:   remaining,
	}, nil
}
