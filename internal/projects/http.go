package projects

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/constructerp/erp-backend/internal/audit"
	"github.com/constructerp/erp-backend/internal/auth"
)

type Handler struct {
	repo    *Repo
	auditor audit.Recorder
}

func Register(rg *gin.RouterGroup, repo *Repo, auditor audit.Recorder) {
	h := &Handler{repo: repo, auditor: auditor}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type projectReq struct {
	Name     string  `json:"name"`
	Budget   float64 `json:"budget"`
	Spent    float64 `json:"spent"`
	Progress int     `json:"progress"`
}

func (h *Handler) create(c *gin.Context) {
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), strings.TrimSpace(req.Name), req.Budget, req.Spent, req.Progress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.auditor.Record(c.Request.Context(), audit.Entry{
		UserID:     auth.UserID(c),
		Action:     "create",
		EntityType: "project",
		EntityID:   strconv.FormatInt(p.ID, 10),
		NewValues:  p,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid project id"})
		return
	}

	p, err := h.repo.Get(c.Request.Context(), id)
	if err == ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid project id"})
		return
	}

	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	p, err := h.repo.Update(c.Request.Context(), id, req.Name, req.Budget, req.Spent, req.Progress)
	if err == ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.auditor.Record(c.Request.Context(), audit.Entry{
		UserID:     auth.UserID(c),
		Action:     "update",
		EntityType: "project",
		EntityID:   strconv.FormatInt(id, 10),
		NewValues:  p,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid project id"})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}

	h.auditor.Record(c.Request.Context(), audit.Entry{
		UserID:     auth.UserID(c),
		Action:     "delete",
		EntityType: "project",
		EntityID:   strconv.FormatInt(id, 10),
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
