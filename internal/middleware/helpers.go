// internal/middleware/helpers.go
package middleware

import (
	"backdesk-service/internal/domain/assistant"

	"github.com/gin-gonic/gin"
)

// MustGetIdentityID gets identity ID from context or panics
func MustGetIdentityID(c *gin.Context) int64 {
	identityID, exists := GetIdentityID(c)
	if !exists {
		panic("identity_id not found in context")
	}
	return identityID
}

// GetRoles gets user roles from context
func GetRoles(c *gin.Context) []string {
	roles, exists := c.Get("roles")
	if !exists {
		return []string{}
	}

	rolesList, ok := roles.([]string)
	if !ok {
		return []string{}
	}

	return rolesList
}

// GetPermissions gets user permissions from context
func GetPermissions(c *gin.Context) []string {
	permissions, exists := c.Get("permissions")
	if !exists {
		return []string{}
	}

	permissionsList, ok := permissions.([]string)
	if !ok {
		return []string{}
	}

	return permissionsList
}

// HasRole checks if user has role
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("identity_id")
	return exists
}

// IsAdmin checks if user is an admin
func IsAdmin(c *gin.Context) bool {
	return HasRole(c, assistant.RoleAdmin)
}

// IsSupervisory checks if user may manage other assistants' books
func IsSupervisory(c *gin.Context) bool {
	return HasRole(c, assistant.RoleAdmin) ||
		HasRole(c, assistant.RoleSupervisor) ||
		HasRole(c, assistant.RoleManager)
}
