package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jantavoice/backend/internal/models"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "jv_session"

// ContextUsername is where the middleware stores the authenticated admin.
const ContextUsername = "session_username"

// SessionFetcher is the slice of the store the middleware needs.
type SessionFetcher interface {
	GetSession(ctx context.Context, id string) (models.Session, error)
}

// AdminSession guards admin endpoints. The client-side route gate is
// cosmetic; this check is the authoritative one and runs on every call.
func AdminSession(fetcher SessionFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			abortUnauthorized(c)
			return
		}
		sess, err := fetcher.GetSession(c.Request.Context(), cookie)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		if sess.ExpiresAt.Before(time.Now()) {
			abortUnauthorized(c)
			return
		}
		c.Set(ContextUsername, sess.Username)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Admin session required",
		},
	})
}
