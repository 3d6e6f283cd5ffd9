package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats backs the landing dashboard cards.
type Stats struct {
	Projects        int64   `json:"projects"`
	Spent           float64 `json:"spent"`
	PendingInvoices int64   `json:"pendingInvoices"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Stats(ctx context.Context) (*Stats, error) {
	var s Stats

	if err := r.db.QueryRow(ctx, `select count(*) from projects;`).Scan(&s.Projects); err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, `select coalesce(sum(spent), 0) from projects;`).Scan(&s.Spent); err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, `select count(*) from invoices where status = 'Pending';`).Scan(&s.PendingInvoices); err != nil {
		return nil, err
	}

	return &s, nil
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("/stats", func(c *gin.Context) {
		stats, err := repo.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})
}
