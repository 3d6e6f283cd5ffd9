package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

func RegisterRoutes(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}
	rg.GET("", h.list)
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load audit logs"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
