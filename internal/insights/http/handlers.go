package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/constructerp/erp-backend/internal/insights"
	"github.com/constructerp/erp-backend/internal/projects"
)

type Handler struct {
	svc *insights.Service
}

func NewHandler(svc *insights.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts /insights/* under rg and the single-project risk lookup
// under riskGroup. Both groups must already carry the session gate.
func (h *Handler) Register(rg, riskGroup *gin.RouterGroup) {
	rg.GET("/project-health", h.Health)
	rg.GET("/project-risks", h.Risks)
	rg.GET("/cashflow", h.Cashflow)
	riskGroup.GET("/:projectId", h.ProjectRisk)
}

func (h *Handler) Health(c *gin.Context) {
	health, err := h.svc.Health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, health)
}

func (h *Handler) Risks(c *gin.Context) {
	risks, err := h.svc.Risks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, risks)
}

func (h *Handler) Cashflow(c *gin.Context) {
	points, err := h.svc.Cashflow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *Handler) ProjectRisk(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid project id"})
		return
	}

	assessment, err := h.svc.ProjectRisk(c.Request.Context(), id)
	if err == projects.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assessment)
}
