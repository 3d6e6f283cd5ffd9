package http

import "github.com/gin-gonic/gin"

// Register mounts the auth routes. Login and register are the only routes in
// the API that do not sit behind the session gate; loginLimiter throttles
// credential guessing.
func (h *Handler) Register(rg *gin.RouterGroup, sessionGate, loginLimiter gin.HandlerFunc) {
	rg.POST("/login", loginLimiter, h.Login)
	rg.POST("/register", loginLimiter, h.RegisterUser)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", sessionGate, h.Me)
}
