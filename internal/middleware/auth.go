package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/healthvault/health-api/internal/service/auth"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/httputil"
)

const ContextClaims = "claims"

type AuthMiddleware struct {
	auth *authService.Service
}

func NewAuthMiddleware(auth *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth validates the bearer token and stores its claims on the
// request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			httputil.RespondWithError(c, apperrors.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := m.auth.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}
