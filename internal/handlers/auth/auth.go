// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	xerrors "backdesk-service/internal/pkg/errors"
	"backdesk-service/internal/pkg/jwt"
	"backdesk-service/internal/pkg/response"
	service "backdesk-service/internal/service/assignment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exchanges refresh tokens for fresh access tokens. Identity
// provisioning lives elsewhere; this service only verifies and re-mints.
type AuthHandler struct {
	manager   *jwt.Manager
	directory service.AssistantDirectory
	logger    *zap.Logger
}

func NewAuthHandler(manager *jwt.Manager, directory service.AssistantDirectory, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		manager:   manager,
		directory: directory,
		logger:    logger,
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
	Device       string `json:"device"`
}

// Refresh verifies a refresh token and mints a new access token carrying the
// assistant's current role and permission set.
func (h *AuthHandler) Refresh(c *gin.Context) {
	if h.manager.Generator == nil {
		response.Error(c, http.StatusNotImplemented, "token refresh not enabled on this deployment", nil)
		return
	}

	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	claims, err := h.manager.Verifier.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "invalid refresh token")
		return
	}

	// Roles and permissions come from the live directory record, not the old
	// token, so revocations take effect at refresh time.
	a, err := h.directory.FindAssistant(c.Request.Context(), claims.IdentityID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.Unauthorized(c, "unknown identity")
			return
		}
		response.FromError(c, "failed to resolve identity", err)
		return
	}
	if !a.IsActive {
		response.Forbidden(c, "account is deactivated")
		return
	}

	access, jti, err := h.manager.Generator.GenerateAccessToken(a.ID, []string{a.Role}, a.Permissions, req.Device)
	if err != nil {
		h.logger.Error("failed to mint access token",
			zap.Int64("identity_id", a.ID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "failed to mint access token", err)
		return
	}

	response.Success(c, http.StatusOK, "token refreshed", gin.H{
		"access_token": access,
		"jti":          jti,
		"role":         a.Role,
	})
}
