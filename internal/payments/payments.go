package payments

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/constructerp/erp-backend/internal/insights"
)

type Payment struct {
	ID        int64     `json:"id"`
	InvoiceID int64     `json:"invoiceId"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paidAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context) ([]Payment, error) {
	const q = `select id, invoice_id, amount, method, paid_at from payments order by paid_at desc;`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payment, 0, 16)
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.PaidAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MonthlyTotals sums payments per calendar month over the trailing window.
// It feeds the trailing-average cashflow forecaster.
func (r *Repo) MonthlyTotals(ctx context.Context, months int) ([]insights.MonthTotal, error) {
	const q = `
select date_trunc('month', paid_at) as month, coalesce(sum(amount), 0) as total
from payments
where paid_at >= date_trunc('month', now()) - make_interval(months => $1)
group by 1
order by 1;
`
	rows, err := r.db.Query(ctx, q, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]insights.MonthTotal, 0, months)
	for rows.Next() {
		var t insights.MonthTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("", func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	})
}
