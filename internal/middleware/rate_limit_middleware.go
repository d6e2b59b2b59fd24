// internal/middleware/rate_limit_middleware.go
package middleware

import (
	xerrors "backdesk-service/internal/pkg/errors"
	"backdesk-service/internal/pkg/limiter"
	"backdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware throttles transition endpoints per authenticated actor.
// MUST be used after Auth() middleware. Limiter outages fail open: a Redis
// hiccup must not block assignment work.
func RateLimitMiddleware(rl *limiter.RateLimiter, action string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := GetIdentityID(c)
		if !ok {
			c.Next()
			return
		}

		allowed, remaining, err := rl.AllowTransition(c.Request.Context(), actorID, action)
		if err != nil {
			logger.Warn("rate limiter unavailable",
				zap.Int64("actor_id", actorID),
				zap.String("action", action),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			response.FromError(c, "too many transition requests", xerrors.ErrRateLimited)
			return
		}

		c.Set("ratelimit_remaining", remaining)
		c.Next()
	}
}
