// internal/middleware/auth_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/pkg/jwt"
	"backdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	verifier *jwt.Verifier
}

func NewAuthMiddleware(verifier *jwt.Verifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Auth is the base authentication middleware that validates JWT tokens
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.verifier.VerifyAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		// Set user context
		c.Set("identity_id", claims.IdentityID)
		c.Set("jti", claims.ID)
		c.Set("role", claims.PrimaryRole())
		c.Set("roles", claims.Roles)
		c.Set("permissions", claims.Permissions)
		c.Set("device", claims.Device)

		c.Next()
	}
}

// RequireRole middleware that requires user to have at least one of the specified roles
// MUST be used after Auth() middleware
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get("roles")
		if !exists {
			response.Error(c, http.StatusForbidden, "no roles found - authentication required", nil)
			return
		}

		userRolesList, ok := userRoles.([]string)
		if !ok {
			response.Error(c, http.StatusInternalServerError, "invalid roles format", nil)
			return
		}

		// Check if user has any of the required roles
		hasRole := false
		for _, userRole := range userRolesList {
			for _, requiredRole := range roles {
				if userRole == requiredRole {
					hasRole = true
					break
				}
			}
			if hasRole {
				break
			}
		}

		if !hasRole {
			err := errors.New("user does not have required role")
			response.Error(c, http.StatusForbidden, "insufficient permissions", err, map[string]interface{}{
				"required_roles": roles,
				"user_roles":     userRolesList,
			})
			return
		}

		c.Next()
	}
}

// RequirePermission middleware that requires user to have at least one of the specified permissions
// MUST be used after Auth() middleware
func (m *AuthMiddleware) RequirePermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userPermissions, exists := c.Get("permissions")
		if !exists {
			response.Error(c, http.StatusForbidden, "no permissions found - authentication required", nil)
			return
		}

		userPermissionsList, ok := userPermissions.([]string)
		if !ok {
			response.Error(c, http.StatusInternalServerError, "invalid permissions format", nil)
			return
		}

		// Check if user has any of the required permissions
		hasPermission := false
		for _, userPerm := range userPermissionsList {
			for _, requiredPerm := range permissions {
				if userPerm == requiredPerm {
					hasPermission = true
					break
				}
			}
			if hasPermission {
				break
			}
		}

		if !hasPermission {
			err := errors.New("user does not have required permission")
			response.Error(c, http.StatusForbidden, "insufficient permissions", err, map[string]interface{}{
				"required_permissions": permissions,
				"user_permissions":     userPermissionsList,
			})
			return
		}

		c.Next()
	}
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	// Try header first
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// Fallback to query param, needed by websocket clients that cannot set
	// headers
	token := c.Query("token")
	if token != "" {
		return token
	}

	return ""
}

// GetIdentityID gets identity ID from context
func GetIdentityID(c *gin.Context) (int64, bool) {
	identityID, exists := c.Get("identity_id")
	if !exists {
		return 0, false
	}

	id, ok := identityID.(int64)
	return id, ok
}

// GetJTI gets JTI from context
func GetJTI(c *gin.Context) (string, bool) {
	jti, exists := c.Get("jti")
	if !exists {
		return "", false
	}

	jtiStr, ok := jti.(string)
	return jtiStr, ok
}

// GetActor rebuilds the authenticated actor the engine expects from the
// values Auth() stored on the context.
func GetActor(c *gin.Context) (assignment.Actor, bool) {
	id, ok := GetIdentityID(c)
	if !ok {
		return assignment.Actor{}, false
	}

	role, exists := c.Get("role")
	if !exists {
		return assignment.Actor{}, false
	}

	roleStr, ok := role.(string)
	if !ok {
		return assignment.Actor{}, false
	}

	return assignment.Actor{ID: id, Role: roleStr}, true
}
