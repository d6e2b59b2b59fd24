// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"backdesk-service/internal/domain/assistant"
)

// Claims represents the JWT claims
type Claims struct {
	IdentityID     int64    `json:"identity_id"`
	Roles          []string `json:"roles,omitempty"`
	Permissions    []string `json:"permissions,omitempty"`
	Device         string   `json:"device,omitempty"`
	SessionPurpose string   `json:"session_purpose"` // access, refresh
	jwt.RegisteredClaims
}

// HasRole checks if the claims contain a specific role
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission checks if the claims contain a specific permission
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// PrimaryRole returns the role the authorization policy evaluates. Staff
// tokens carry exactly one staff role; the first one listed wins.
func (c *Claims) PrimaryRole() string {
	if len(c.Roles) == 0 {
		return ""
	}
	return c.Roles[0]
}

// IsAdmin checks if user is an admin
func (c *Claims) IsAdmin() bool {
	return c.HasRole(assistant.RoleAdmin)
}

// IsSupervisory checks for any of the roles allowed to manage other
// assistants' books.
func (c *Claims) IsSupervisory() bool {
	return c.HasRole(assistant.RoleAdmin) ||
		c.HasRole(assistant.RoleSupervisor) ||
		c.HasRole(assistant.RoleManager)
}

// VerifyAudience checks if the expected audience is listed in the claims.
func (c *Claims) VerifyAudience(audience string, required bool) bool {
	if len(c.Audience) == 0 {
		// If audience is required but missing
		return !required
	}

	for _, aud := range c.Audience {
		if aud == audience {
			return true
		}
	}

	return false
}
