package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"travelwise/pkg/utils"
)

const (
	ContextAccountID = "account_id"
	ContextEmail     = "email"
)

// SessionChecker reports whether the account behind a valid token still has
// a live session. It returns utils.ErrSessionNotFound after logout.
type SessionChecker interface {
	RequireSession(ctx context.Context, accountID string) error
}

// JWTAuthMiddleware accepts a request only with a valid bearer token whose
// session has not been ended.
func JWTAuthMiddleware(tokens *utils.TokenManager, sessions SessionChecker) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if err := sessions.RequireSession(c.Request.Context(), claims.AccountID); err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
