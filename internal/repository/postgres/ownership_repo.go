// internal/repository/postgres/ownership_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backdesk-service/internal/domain/assignment"
	xerrors "backdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OwnershipRepository struct {
	db *pgxpool.Pool
}

func NewOwnershipRepository(db *pgxpool.Pool) *OwnershipRepository {
	return &OwnershipRepository{db: db}
}

// FindOwnership retrieves the ownership fields of a customer
func (r *OwnershipRepository) FindOwnership(ctx context.Context, customerID int64) (*assignment.CustomerOwnership, error) {
	query := `
		SELECT id, assigned_to, assigned_by, assigned_at, updated_at
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
	`

	var o assignment.CustomerOwnership

	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&o.CustomerID, &o.AssignedTo, &o.AssignedBy, &o.AssignedAt, &o.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ownership: %w", err)
	}

	return &o, nil
}

// ConditionalUpdateOwnership performs the compare-and-set write. The update
// only lands if assigned_to still holds the value read before validation;
// IS NOT DISTINCT FROM makes NULL compare equal to NULL. Zero rows affected
// means another transition committed in between, not a missing customer.
func (r *OwnershipRepository) ConditionalUpdateOwnership(ctx context.Context, customerID int64, expectedAssignedTo *int64, update assignment.OwnershipUpdate) (bool, error) {
	query := `
		UPDATE customers
		SET assigned_to = $3, assigned_by = $4, assigned_at = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL AND assigned_to IS NOT DISTINCT FROM $2
	`

	result, err := r.db.Exec(
		ctx, query,
		customerID, expectedAssignedTo,
		update.AssignedTo, update.AssignedBy, update.AssignedAt, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update ownership: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
