// internal/domain/assistant/entity.go
package assistant

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Role names recognized by the authorization policy.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleManager    = "manager"
	RoleAssistant  = "assistant"
	RoleCustomer   = "customer"
)

// DefaultMaxCustomers applies when an assistant row carries no explicit limit.
const DefaultMaxCustomers = 50

// Assistant is the staff-user subset the assignment engine needs.
type Assistant struct {
	ID                int64          `json:"id" db:"id"`
	FullName          sql.NullString `json:"full_name,omitempty" db:"full_name"`
	Email             sql.NullString `json:"email,omitempty" db:"email"`
	Role              string         `json:"role" db:"role"`
	IsActive          bool           `json:"is_active" db:"is_active"`
	MaxCustomersLimit sql.NullInt64  `json:"max_customers_limit,omitempty" db:"max_customers_limit"`
	Permissions       pq.StringArray `json:"permissions,omitempty" db:"permissions"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

// CapacityLimit returns the effective workload cap for this assistant.
func (a *Assistant) CapacityLimit() int {
	if a.MaxCustomersLimit.Valid && a.MaxCustomersLimit.Int64 > 0 {
		return int(a.MaxCustomersLimit.Int64)
	}
	return DefaultMaxCustomers
}

// HasPermission checks a granted permission token.
func (a *Assistant) HasPermission(permission string) bool {
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// AssignableAssistant is the pick-list projection for reassignment UIs.
type AssignableAssistant struct {
	ID        int64          `json:"id"`
	FullName  sql.NullString `json:"full_name,omitempty"`
	Assigned  int64          `json:"assigned"`
	Limit     int            `json:"limit"`
	Remaining int64          `json:"remaining"`
}
