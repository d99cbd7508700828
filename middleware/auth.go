package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

// Context keys under which the auth middleware publishes the caller identity.
const (
	ContextUserID = "authUserID"
	ContextRole   = "authRole"
	ContextClaims = "authClaims"
)

// Auth rejects requests without a valid bearer token and stores the caller's
// id and role in the context for the handlers downstream.
func Auth(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := utils.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			msg := "token is invalid"
			if errors.Is(err, utils.ErrTokenExpired) {
				msg = "token has expired"
			}
			utils.JSONError(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRoles gates an endpoint to the named roles. Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "insufficient role")
		c.Abort()
	}
}

// CallerID returns the authenticated user's id, if Auth ran.
func CallerID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}
