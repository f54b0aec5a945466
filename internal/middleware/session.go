// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Cart-Session"
	SessionCookie = "cart_session"

	sessionCookieMaxAge = 60 * 60 * 24 * 30 // 30 days
)

// CartSession resolves the cart session token for the request, minting a
// new one when the client has none yet. The token is echoed back in both
// the response header and a cookie so either transport works.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sessionID = cookie
			}
		}

		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}

		c.Set("cart_session", sessionID)
		c.Header(SessionHeader, sessionID)
		c.SetCookie(SessionCookie, sessionID, sessionCookieMaxAge, "/", "", false, true)
		c.Next()
	}
}

// RequireCartSession aborts requests that somehow reach a cart route
// without a resolved session.
func RequireCartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("cart_session") == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing cart session",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
