package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/constructerp/erp-backend/internal/auth"
	"github.com/constructerp/erp-backend/internal/auth/service"
)

// RequireSession gates a route group behind the session cookie. A missing or
// invalid cookie aborts with 401 before any business handler runs.
func RequireSession(svc *service.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
			c.Abort()
			return
		}

		id, err := svc.Verify(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(auth.CtxUserID, id.UserID)
		c.Set(auth.CtxUserRole, id.Role)
		c.Set(auth.CtxSessionID, id.SessionID)
		c.Next()
	}
}
