package exchange

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

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
	rg.POST("", h.create)
}

type createReq struct {
	FromCurrency  string          `json:"fromCurrency" binding:"required"`
	ToCurrency    string          `json:"toCurrency" binding:"required"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effectiveDate" binding:"required"`
}

func (h *Handler) list(c *gin.Context) {
	rates, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load exchange rates"})
		return
	}
	c.JSON(http.StatusOK, rates)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "effectiveDate must be YYYY-MM-DD"})
		return
	}

	rt, err := h.repo.Create(c.Request.Context(), req.FromCurrency, req.ToCurrency, req.Rate, effective)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add rate"})
		return
	}

	h.auditor.Record(c.Request.Context(), audit.Entry{
		UserID:     auth.UserID(c),
		Action:     "create",
		EntityType: "exchange_rate",
		EntityID:   strconv.FormatInt(rt.ID, 10),
		NewValues:  rt,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusCreated, rt)
}
