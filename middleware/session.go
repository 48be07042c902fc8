package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/streamnest/auth-service/internal/token"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "jwt"

// UserIDKey is the gin context key under which the verified session subject
// is stored for downstream handlers.
const UserIDKey = "userID"

// SessionAuth guards protected routes. A missing cookie is an explicit 401
// branch before any token parsing; a token that fails verification is 401 as
// well. On success the user ID is attached to the context and the chain
// continues.
func SessionAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required.",
			})
			return
		}

		userID, err := tokens.Verify(cookie)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Session verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired session.",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
