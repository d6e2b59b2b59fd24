// internal/repository/postgres/audit_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"backdesk-service/internal/domain/assignment"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository is append-only: no update or delete statements exist here.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// AppendEvent writes one assignment event
func (r *AuditRepository) AppendEvent(ctx context.Context, event *assignment.AssignmentEvent) error {
	query := `
		INSERT INTO assignment_events (
			id, customer_id, action_by, action,
			previous_assigned_to, previous_status, previous_assigned_at,
			new_assigned_to, new_status, new_assigned_at,
			reason, ip_address, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(
		ctx, query,
		event.ID, event.CustomerID, event.ActionBy, event.Action,
		event.PreviousAssignment.AssignedTo, event.PreviousAssignment.Status, event.PreviousAssignment.AssignedAt,
		event.NewAssignment.AssignedTo, event.NewAssignment.Status, event.NewAssignment.AssignedAt,
		event.Reason, event.RequestMetadata.IP, event.RequestMetadata.UserAgent, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append assignment event: %w", err)
	}

	return nil
}

// ListEvents retrieves events with filters, newest first
func (r *AuditRepository) ListEvents(ctx context.Context, filters *assignment.HistoryFilters) ([]assignment.AssignmentEvent, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *filters.CustomerID)
		argPos++
	}

	if filters.ActionBy != nil {
		conditions = append(conditions, fmt.Sprintf("action_by = $%d", argPos))
		args = append(args, *filters.ActionBy)
		argPos++
	}

	if filters.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argPos))
		args = append(args, filters.Action)
		argPos++
	}

	if filters.Since != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *filters.Since)
		argPos++
	}

	if filters.Until != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argPos))
		args = append(args, *filters.Until)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM assignment_events WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assignment events: %w", err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	offset := (filters.Page - 1) * filters.PageSize
	limit := filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, customer_id, action_by, action,
		       previous_assigned_to, previous_status, previous_assigned_at,
		       new_assigned_to, new_status, new_assigned_at,
		       reason, ip_address, user_agent, created_at
		FROM assignment_events
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignment events: %w", err)
	}
	defer rows.Close()

	events := []assignment.AssignmentEvent{}
	for rows.Next() {
		var e assignment.AssignmentEvent

		err := rows.Scan(
			&e.ID, &e.CustomerID, &e.ActionBy, &e.Action,
			&e.PreviousAssignment.AssignedTo, &e.PreviousAssignment.Status, &e.PreviousAssignment.AssignedAt,
			&e.NewAssignment.AssignedTo, &e.NewAssignment.Status, &e.NewAssignment.AssignedAt,
			&e.Reason, &e.RequestMetadata.IP, &e.RequestMetadata.UserAgent, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan assignment event: %w", err)
		}

		events = append(events, e)
	}

	return events, total, nil
}
