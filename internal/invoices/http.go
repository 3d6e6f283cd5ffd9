package invoices

import (
	"net/http"
	"strconv"

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

	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type createReq struct {
	ProjectID int64   `json:"projectId" binding:"required"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

type updateReq struct {
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
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
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid invoice id"})
		return
	}

	inv, err := h.repo.Get(c.Request.Context(), id)
	if err == ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	inv, err := h.repo.Create(c.Request.Context(), req.ProjectID, req.Amount, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.auditor.Record(c.Request.Context(), audit.Entry{
		UserID:     auth.UserID(c),
		Action:     "create",
		EntityType: "invoice",
		EntityID:   strconv.FormatInt(inv.ID, 10),
		NewValues:  inv,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusCreated, gin.H{"id": inv.ID})
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid invoice id"})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	inv, err := h.repo.Update(c.Request.Context(), id, req.Amount, req.Status)
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
		EntityType: "invoice",
		EntityID:   strconv.FormatInt(id, 10),
		NewValues:  inv,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid invoice id"})
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
		EntityType: "invoice",
		EntityID:   strconv.FormatInt(id, 10),
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
