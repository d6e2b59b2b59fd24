package assignment

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/domain/assistant"
	xerrors "backdesk-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---------- in-memory fakes ----------

type memOwnershipStore struct {
	mu        sync.Mutex
	rows      map[int64]assignment.CustomerOwnership
	updateErr error
}

func newMemOwnershipStore() *memOwnershipStore {
	return &memOwnershipStore{rows: make(map[int64]assignment.CustomerOwnership)}
}

func (s *memOwnershipStore) FindOwnership(_ context.Context, customerID int64) (*assignment.CustomerOwnership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[customerID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := row
	return &copied, nil
}

func (s *memOwnershipStore) ConditionalUpdateOwnership(_ context.Context, customerID int64, expectedAssignedTo *int64, update assignment.OwnershipUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return false, s.updateErr
	}

	row, ok := s.rows[customerID]
	if !ok {
		return false, nil
	}

	if row.AssignedTo.Valid != (expectedAssignedTo != nil) {
		return false, nil
	}
	if expectedAssignedTo != nil && row.AssignedTo.Int64 != *expectedAssignedTo {
		return false, nil
	}

	if update.AssignedTo != nil {
		row.AssignedTo = sql.NullInt64{Int64: *update.AssignedTo, Valid: true}
		row.AssignedBy = sql.NullInt64{Int64: *update.AssignedBy, Valid: true}
		row.AssignedAt = sql.NullTime{Time: *update.AssignedAt, Valid: true}
	} else {
		row.AssignedTo = sql.NullInt64{}
		row.AssignedBy = sql.NullInt64{}
		row.AssignedAt = sql.NullTime{}
	}
	row.UpdatedAt = time.Now()
	s.rows[customerID] = row
	return true, nil
}

func (s *memOwnershipStore) assignedCount(assistantID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, row := range s.rows {
		if row.AssignedTo.Valid && row.AssignedTo.Int64 == assistantID {
			n++
		}
	}
	return n
}

type memDirectory struct {
	mu         sync.Mutex
	store      *memOwnershipStore
	assistants map[int64]assistant.Assistant
}

func newMemDirectory(store *memOwnershipStore) *memDirectory {
	return &memDirectory{store: store, assistants: make(map[int64]assistant.Assistant)}
}

func (d *memDirectory) FindAssistant(_ context.Context, id int64) (*assistant.Assistant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.assistants[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := a
	return &copied, nil
}

func (d *memDirectory) CountAssigned(_ context.Context, assistantID int64) (int64, error) {
	return d.store.assignedCount(assistantID), nil
}

func (d *memDirectory) ListAssignable(_ context.Context) ([]assistant.AssignableAssistant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := []assistant.AssignableAssistant{}
	for _, a := range d.assistants {
		if !a.IsActive {
			continue
		}
		assigned := d.store.assignedCount(a.ID)
		limit := a.CapacityLimit()
		if assigned >= int64(limit) {
			continue
		}
		list = append(list, assistant.AssignableAssistant{
			ID:        a.ID,
			FullName:  a.FullName,
			Assigned:  assigned,
			Limit:     limit,
			Remaining: int64(limit) - assigned,
		})
	}
	return list, nil
}

type memAuditStore struct {
	mu        sync.Mutex
	events    []assignment.AssignmentEvent
	appendErr error
}

func (s *memAuditStore) AppendEvent(_ context.Context, event *assignment.AssignmentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appendErr != nil {
		return s.appendErr
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *memAuditStore) ListEvents(_ context.Context, filters *assignment.HistoryFilters) ([]assignment.AssignmentEvent, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []assignment.AssignmentEvent{}
	for _, e := range s.events {
		if filters.CustomerID != nil && e.CustomerID != *filters.CustomerID {
			continue
		}
		if filters.ActionBy != nil && e.ActionBy != *filters.ActionBy {
			continue
		}
		if filters.Action != "" && e.Action != filters.Action {
			continue
		}
		matched = append(matched, e)
	}

	// newest first
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}

	total := int64(len(matched))
	start := (filters.Page - 1) * filters.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filters.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memAuditStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type memNotifier struct {
	mu     sync.Mutex
	events []*assignment.AssignmentEvent
}

func (n *memNotifier) AssignmentCommitted(event *assignment.AssignmentEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *memNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// ---------- fixture ----------

type fixture struct {
	store    *memOwnershipStore
	dir      *memDirectory
	audit    *memAuditStore
	notifier *memNotifier
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemOwnershipStore()
	dir := newMemDirectory(store)
	audit := &memAuditStore{}
	notifier := &memNotifier{}

	svc := NewService(store, dir, audit, NewDefaultPolicy(), zap.NewNop())
	svc.SetNotifier(notifier)

	f := &fixture{store: store, dir: dir, audit: audit, notifier: notifier, svc: svc}

	f.addAssistant(1, assistant.RoleAssistant, true, 0, PermReceiveTransfer)
	f.addAssistant(2, assistant.RoleAssistant, true, 0, PermReceiveTransfer)
	f.addAssistant(3, assistant.RoleAssistant, false, 0, PermReceiveTransfer)
	f.addAssistant(4, assistant.RoleAssistant, true, 1, PermReceiveTransfer)
	f.addAssistant(5, assistant.RoleSupervisor, true, 0)
	f.addAssistant(6, assistant.RoleManager, true, 0)
	f.addAssistant(7, assistant.RoleAssistant, true, 0) // may not receive transfers
	f.addAssistant(9, assistant.RoleAdmin, true, 0)

	f.addCustomer(100, nil)
	two := int64(2)
	f.addCustomer(200, &two)

	return f
}

func (f *fixture) addAssistant(id int64, role string, active bool, limit int64, perms ...string) {
	f.dir.mu.Lock()
	defer f.dir.mu.Unlock()

	a := assistant.Assistant{
		ID:       id,
		Role:     role,
		IsActive: active,
	}
	if limit > 0 {
		a.MaxCustomersLimit = sql.NullInt64{Int64: limit, Valid: true}
	}
	a.Permissions = append(a.Permissions, perms...)
	f.dir.assistants[id] = a
}

func (f *fixture) addCustomer(id int64, assignedTo *int64) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	row := assignment.CustomerOwnership{CustomerID: id, UpdatedAt: time.Now()}
	if assignedTo != nil {
		row.AssignedTo = sql.NullInt64{Int64: *assignedTo, Valid: true}
		row.AssignedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	f.store.rows[id] = row
}

func (f *fixture) ownership(t *testing.T, id int64) *assignment.CustomerOwnership {
	t.Helper()
	o, err := f.store.FindOwnership(context.Background(), id)
	require.NoError(t, err)
	return o
}

func actor(id int64, role string) assignment.Actor {
	return assignment.Actor{ID: id, Role: role}
}

func transition(customerID int64, a assignment.Actor, action assignment.Action, recipientID *int64) *assignment.TransitionRequest {
	return &assignment.TransitionRequest{
		CustomerID:  customerID,
		Actor:       a,
		Action:      action,
		RecipientID: recipientID,
	}
}

func ptr(v int64) *int64 { return &v }

// ---------- transitions ----------

func TestClaimUnassignedCustomer(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Transition(context.Background(), transition(100, actor(1, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.NoError(t, err)

	assert.Equal(t, assignment.StatusAssigned, res.Status)
	require.NotNil(t, res.AssignedTo)
	assert.Equal(t, int64(1), *res.AssignedTo)
	assert.Equal(t, assignment.StatusUnassigned, res.Previous.Status)
	assert.Empty(t, res.AuditWarning)
	assert.NotEmpty(t, res.AuditEventID)

	o := f.ownership(t, 100)
	assert.Equal(t, int64(1), o.AssignedTo.Int64)
	assert.Equal(t, int64(1), o.AssignedBy.Int64)

	require.Equal(t, 1, f.audit.count())
	e := f.audit.events[0]
	assert.Equal(t, assignment.EventClaimed, e.Action)
	assert.Equal(t, res.AuditEventID, e.ID)
	assert.Nil(t, e.PreviousAssignment.AssignedTo)
	require.NotNil(t, e.NewAssignment.AssignedTo)
	assert.Equal(t, int64(1), *e.NewAssignment.AssignedTo)

	assert.Equal(t, 1, f.notifier.count())
}

func TestClaimAlreadyAssigned(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(200, actor(1, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrConflict))

	o := f.ownership(t, 200)
	assert.Equal(t, int64(2), o.AssignedTo.Int64)
	assert.Equal(t, 0, f.audit.count())
}

func TestClaimByInactiveAssistant(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(100, actor(3, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))
	assert.Equal(t, 0, f.audit.count())
}

func TestClaimAtCapacity(t *testing.T) {
	f := newFixture(t)
	four := int64(4)
	f.addCustomer(300, &four) // assistant 4 has limit 1 and is now full

	_, err := f.svc.Transition(context.Background(), transition(100, actor(4, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrCapacityExceeded))

	o := f.ownership(t, 100)
	assert.False(t, o.AssignedTo.Valid)
	assert.Equal(t, 0, f.audit.count())
}

func TestAdminDirectAssign(t *testing.T) {
	f := newFixture(t)

	// Recipient is mandatory.
	_, err := f.svc.Transition(context.Background(), transition(100, actor(9, assistant.RoleAdmin), assignment.ActionAssign, nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrValidation))

	res, err := f.svc.Transition(context.Background(), transition(100, actor(9, assistant.RoleAdmin), assignment.ActionAssign, ptr(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *res.AssignedTo)

	// Direct assign overrides an existing assignment.
	res, err = f.svc.Transition(context.Background(), transition(200, actor(9, assistant.RoleAdmin), assignment.ActionAssign, ptr(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *res.AssignedTo)
	require.NotNil(t, res.Previous.AssignedTo)
	assert.Equal(t, int64(2), *res.Previous.AssignedTo)

	assert.Equal(t, assignment.EventAssigned, f.audit.events[1].Action)
}

func TestAssignForbiddenForSupervisor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(100, actor(5, assistant.RoleSupervisor), assignment.ActionAssign, ptr(1)))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))
	assert.Contains(t, err.Error(), ReasonInsufficientPrivilege)
}

func TestReassign(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Transition(context.Background(), transition(200, actor(5, assistant.RoleSupervisor), assignment.ActionReassign, ptr(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *res.AssignedTo)
	assert.Equal(t, assignment.EventReassigned, f.audit.events[0].Action)

	// Reassigning an unassigned customer is a precondition failure.
	_, err = f.svc.Transition(context.Background(), transition(100, actor(5, assistant.RoleSupervisor), assignment.ActionReassign, ptr(1)))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrInvalidTransition))

	// Missing recipient.
	_, err = f.svc.Transition(context.Background(), transition(200, actor(5, assistant.RoleSupervisor), assignment.ActionReassign, nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrValidation))
}

func TestTransfer(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Transition(context.Background(), transition(200, actor(6, assistant.RoleManager), assignment.ActionTransfer, ptr(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *res.AssignedTo)
	assert.Equal(t, assignment.EventTransferRequested, f.audit.events[0].Action)
}

func TestTransferToRecipientWithoutGrant(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(200, actor(6, assistant.RoleManager), assignment.ActionTransfer, ptr(7)))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))

	o := f.ownership(t, 200)
	assert.Equal(t, int64(2), o.AssignedTo.Int64)
}

func TestTransferToInactiveRecipient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(200, actor(6, assistant.RoleManager), assignment.ActionTransfer, ptr(3)))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrRecipientInactive))
}

func TestTransferToUnknownRecipient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(200, actor(6, assistant.RoleManager), assignment.ActionTransfer, ptr(404)))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrRecipientInactive))
}

func TestUnassign(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Transition(context.Background(), transition(200, actor(6, assistant.RoleManager), assignment.ActionUnassign, nil))
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusUnassigned, res.Status)
	assert.Nil(t, res.AssignedTo)

	o := f.ownership(t, 200)
	assert.False(t, o.AssignedTo.Valid)
	assert.False(t, o.AssignedBy.Valid)
	assert.False(t, o.AssignedAt.Valid)
	assert.Equal(t, assignment.EventUnassigned, f.audit.events[0].Action)

	_, err = f.svc.Transition(context.Background(), transition(100, actor(6, assistant.RoleManager), assignment.ActionUnassign, nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrInvalidTransition))
}

func TestForbiddenWinsOverBadPayload(t *testing.T) {
	f := newFixture(t)

	req := transition(200, actor(55, assistant.RoleCustomer), assignment.ActionTransfer, nil)
	req.Reason = strings.Repeat("x", assignment.MaxReasonLength+1)

	_, err := f.svc.Transition(context.Background(), req)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))
	assert.False(t, xerrors.Is(err, xerrors.ErrValidation))
}

func TestReasonTooLong(t *testing.T) {
	f := newFixture(t)

	req := transition(100, actor(1, assistant.RoleAssistant), assignment.ActionClaim, nil)
	req.Reason = strings.Repeat("x", assignment.MaxReasonLength+1)

	_, err := f.svc.Transition(context.Background(), req)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrValidation))
}

func TestUnknownAction(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(100, actor(1, assistant.RoleAssistant), assignment.Action("merge"), nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrValidation))
}

func TestUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), transition(404, actor(1, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))
}

func TestStoreFailureIsRetryable(t *testing.T) {
	f := newFixture(t)
	f.store.updateErr = errors.New("connection reset")

	_, err := f.svc.Transition(context.Background(), transition(100, actor(1, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.Error(t, err)
	assert.Equal(t, xerrors.KindStoreUnavailable, xerrors.KindOf(err))
	assert.Equal(t, 0, f.audit.count())
}

func TestAuditFailureDoesNotRollBack(t *testing.T) {
	f := newFixture(t)
	f.audit.appendErr = errors.New("disk full")

	res, err := f.svc.Transition(context.Background(), transition(100, actor(1, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.NoError(t, err)
	assert.Equal(t, xerrors.KindAuditWriteFailed, res.AuditWarning)
	assert.Empty(t, res.AuditEventID)

	// The commit stands.
	o := f.ownership(t, 100)
	assert.Equal(t, int64(1), o.AssignedTo.Int64)

	// Nothing was pushed for the unaudited event.
	assert.Equal(t, 0, f.notifier.count())
}

// ---------- concurrency ----------

func TestConcurrentClaimsExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	const racers = 20
	for i := int64(0); i < racers; i++ {
		f.addAssistant(1000+i, assistant.RoleAssistant, true, 0)
	}

	var wg sync.WaitGroup
	errs := make(chan error, racers)

	for i := int64(0); i < racers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.svc.Transition(context.Background(), transition(100, actor(id, assistant.RoleAssistant), assignment.ActionClaim, nil))
			errs <- err
		}(1000 + i)
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case xerrors.Is(err, xerrors.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)
	assert.Equal(t, 1, f.audit.count())

	o := f.ownership(t, 100)
	assert.True(t, o.AssignedTo.Valid)
}

// ---------- reads ----------

func TestGetOwnershipPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.GetOwnership(ctx, actor(2, assistant.RoleAssistant), 200)
	require.NoError(t, err)
	assert.Equal(t, int64(2), o.AssignedTo.Int64)

	_, err = f.svc.GetOwnership(ctx, actor(1, assistant.RoleAssistant), 200)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))
	assert.Contains(t, err.Error(), ReasonNotResourceOwner)

	_, err = f.svc.GetOwnership(ctx, actor(9, assistant.RoleAdmin), 200)
	require.NoError(t, err)
}

func TestHistoryAccessAndPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.Transition(ctx, transition(200, actor(5, assistant.RoleSupervisor), assignment.ActionReassign, ptr(1)))
		require.NoError(t, err)
		_, err = f.svc.Transition(ctx, transition(200, actor(5, assistant.RoleSupervisor), assignment.ActionReassign, ptr(2)))
		require.NoError(t, err)
	}

	res, err := f.svc.History(ctx, actor(5, assistant.RoleSupervisor), &assignment.HistoryFilters{Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Total)
	assert.Len(t, res.Events, 4)
	assert.Equal(t, 3, res.TotalPages)

	_, err = f.svc.History(ctx, actor(1, assistant.RoleAssistant), &assignment.HistoryFilters{})
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))
}

func TestCustomerHistoryOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Transition(ctx, transition(100, actor(1, assistant.RoleAssistant), assignment.ActionClaim, nil))
	require.NoError(t, err)

	res, err := f.svc.CustomerHistory(ctx, actor(1, assistant.RoleAssistant), 100, 1, 20)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, assignment.EventClaimed, res.Events[0].Action)

	_, err = f.svc.CustomerHistory(ctx, actor(2, assistant.RoleAssistant), 100, 1, 20)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))
}

func TestWorkload(t *testing.T) {
	f := newFixture(t)

	info, err := f.svc.Workload(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Assigned)
	assert.Equal(t, assistant.DefaultMaxCustomers, info.Limit)
	assert.Equal(t, int64(assistant.DefaultMaxCustomers-1), info.Remaining)
}

func TestAssignableAssistants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.svc.AssignableAssistants(ctx, actor(5, assistant.RoleSupervisor))
	require.NoError(t, err)
	for _, a := range list {
		assert.NotEqual(t, int64(3), a.ID, "inactive assistants are not assignable")
		assert.Greater(t, a.Remaining, int64(0))
	}

	_, err = f.svc.AssignableAssistants(ctx, actor(1, assistant.RoleAssistant))
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrForbidden))
}

// ---------- helpers under test ----------

func TestEventActionLabels(t *testing.T) {
	assert.Equal(t, "claimed", assignment.EventAction(assignment.ActionClaim))
	assert.Equal(t, "transfer-requested", assignment.EventAction(assignment.ActionTransfer))
}

func TestSnapshotDerivesStatus(t *testing.T) {
	o := assignment.CustomerOwnership{CustomerID: 1}
	assert.Equal(t, assignment.StatusUnassigned, o.Status())

	o.AssignedTo = sql.NullInt64{Int64: 7, Valid: true}
	assert.Equal(t, assignment.StatusAssigned, o.Status())

	s := o.Snapshot()
	require.NotNil(t, s.AssignedTo)
	assert.Equal(t, int64(7), *s.AssignedTo)
	assert.Equal(t, assignment.StatusAssigned, s.Status)
}
