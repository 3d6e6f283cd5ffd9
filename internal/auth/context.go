package auth

import "github.com/gin-gonic/gin"

const (
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
	CtxSessionID = "session_id"
)

// UserID extracts the authenticated caller's id from the Gin context.
// It is set by middleware.RequireSession.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

// Role extracts the authenticated caller's role from the Gin context.
func Role(c *gin.Context) string {
	return c.GetString(CtxUserRole)
}
