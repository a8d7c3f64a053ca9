package middleware

import (
	"github.com/gin-gonic/gin"

	"focustime/internal/adapter/http/helper"
	"focustime/pkg/auth"
)

// UserIDKey is the context key carrying the authenticated user's
// identificator.
const UserIDKey = "x-user-id"

// Auth reads the session cookie, verifies the token and stores the user
// identificator in the request context. Requests without a valid cookie are
// rejected before any handler runs.
func Auth(tokens *auth.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.CookieName)

		if err != nil || cookie == "" {
			helper.SendUnauthorizedError(c, "Authentication required")
			c.Abort()
			return
		}

		userID, err := tokens.VerifyToken(cookie)

		if err != nil {
			helper.SendUnauthorizedError(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the identificator set by Auth.
func CurrentUserID(c *gin.Context) string {
	userID, _ := c.Get(UserIDKey)

	id, _ := userID.(string)
	return id
}
