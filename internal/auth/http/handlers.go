package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/constructerp/erp-backend/internal/auth"
	"github.com/constructerp/erp-backend/internal/auth/domain"
	"github.com/constructerp/erp-backend/internal/auth/service"
)

type Handler struct {
	svc          *service.Service
	cookieName   string
	cookieSecure bool
}

func NewHandler(svc *service.Service, cookieName string, cookieSecure bool) *Handler {
	return &Handler{svc: svc, cookieName: cookieName, cookieSecure: cookieSecure}
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err == domain.ErrInvalidCredentials {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.svc.TTL().Seconds()), "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userResp{ID: u.ID, Username: u.Username, Role: u.Role},
	})
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid registration request"})
		return
	}

	_, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err == domain.ErrUsernameTaken {
		c.JSON(http.StatusConflict, gin.H{"message": "username already taken"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil && token != "" {
		_ = h.svc.Logout(c.Request.Context(), token)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me echoes the resolved identity back to the SPA for cookie auto-login.
// It sits behind RequireSession.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user": userResp{ID: auth.UserID(c), Role: auth.Role(c)},
	})
}
