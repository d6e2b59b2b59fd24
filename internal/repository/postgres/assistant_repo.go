// internal/repository/postgres/assistant_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"backdesk-service/internal/domain/assistant"
	xerrors "backdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssistantRepository struct {
	db *pgxpool.Pool
}

func NewAssistantRepository(db *pgxpool.Pool) *AssistantRepository {
	return &AssistantRepository{db: db}
}

// FindAssistant retrieves a staff user by ID
func (r *AssistantRepository) FindAssistant(ctx context.Context, id int64) (*assistant.Assistant, error) {
	query := `
		SELECT id, full_name, email, role, is_active, max_customers_limit,
		       permissions, created_at, updated_at
		FROM assistants
		WHERE id = $1 AND deleted_at IS NULL
	`

	var a assistant.Assistant

	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.FullName, &a.Email, &a.Role, &a.IsActive, &a.MaxCustomersLimit,
		&a.Permissions, &a.CreatedAt, &a.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assistant: %w", err)
	}

	return &a, nil
}

// CountAssigned counts customers currently assigned to an assistant
func (r *AssistantRepository) CountAssigned(ctx context.Context, assistantID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM customers WHERE assigned_to = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, assistantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assigned customers: %w", err)
	}

	return count, nil
}

// ListAssignable retrieves active assistants that still have room, ordered by
// remaining capacity so the least loaded come first.
func (r *AssistantRepository) ListAssignable(ctx context.Context) ([]assistant.AssignableAssistant, error) {
	query := `
		SELECT a.id, a.full_name,
		       COUNT(c.id) AS assigned,
		       COALESCE(NULLIF(a.max_customers_limit, 0), $1) AS cap
		FROM assistants a
		LEFT JOIN customers c ON c.assigned_to = a.id AND c.deleted_at IS NULL
		WHERE a.is_active = TRUE AND a.deleted_at IS NULL
		GROUP BY a.id, a.full_name, a.max_customers_limit
		HAVING COUNT(c.id) < COALESCE(NULLIF(a.max_customers_limit, 0), $1)
		ORDER BY COALESCE(NULLIF(a.max_customers_limit, 0), $1) - COUNT(c.id) DESC, a.id
	`

	rows, err := r.db.Query(ctx, query, assistant.DefaultMaxCustomers)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignable assistants: %w", err)
	}
	defer rows.Close()

	list := []assistant.AssignableAssistant{}
	for rows.Next() {
		var a assistant.AssignableAssistant

		if err := rows.Scan(&a.ID, &a.FullName, &a.Assigned, &a.Limit); err != nil {
			return nil, fmt.Errorf("failed to scan assistant: %w", err)
		}

		a.Remaining = int64(a.Limit) - a.Assigned
		list = append(list, a)
	}

	return list, nil
}
