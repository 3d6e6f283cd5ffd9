package ledger

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/constructerp/erp-backend/internal/audit"
	"github.com/constructerp/erp-backend/internal/auth"
)

type Handler struct {
	accounts *AccountRepo
	journal  *JournalRepo
	auditor  audit.Recorder
}

// Register mounts /accounts and /journal on their groups.
func Register(accountsGroup, journalGroup *gin.RouterGroup, accounts *AccountRepo, journal *JournalRepo, auditor audit.Recorder) {
	h := &Handler{accounts: accounts, journal: journal, auditor: auditor}

	accountsGroup.GET("", h.listAccounts)
	accountsGroup.POST("", h.createAccount)
	journalGroup.GET("", h.listJournal)
}

type accountReq struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

func (h *Handler) listAccounts(c *gin.Context) {
	items, err := h.accounts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createAccount(c *gin.Context) {
	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	a, err := h.accounts.Create(c.Request.Context(), req.Code, req.Name, req.Type, req.Currency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.auditor.Record(c.Request.Context(), audit.Entry{
		UserID:     auth.UserID(c),
		Action:     "create",
		EntityType: "account",
		EntityID:   strconv.FormatInt(a.ID, 10),
		NewValues:  a,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusCreated, a)
}

func (h *Handler) listJournal(c *gin.Context) {
	items, err := h.journal.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
