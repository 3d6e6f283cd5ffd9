package exchange

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Rate is one currency conversion rate effective from a given date. Decimal
// keeps the rate exact; float drift on money-adjacent values is not
// acceptable in the ledger views that consume these.
type Rate struct {
	ID            int64           `json:"id"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
}

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context) ([]Rate, error) {
	const q = `
		SELECT id, from_currency, to_currency, rate, effective_date
		FROM exchange_rates
		ORDER BY effective_date DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Rate, 0, 16)
	for rows.Next() {
		var rt Rate
		if err := rows.Scan(&rt.ID, &rt.FromCurrency, &rt.ToCurrency, &rt.Rate, &rt.EffectiveDate); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, from, to string, rate decimal.Decimal, effective time.Time) (*Rate, error) {
	const q = `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, effective_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	rt := Rate{FromCurrency: from, ToCurrency: to, Rate: rate, EffectiveDate: effective}
	if err := r.db.QueryRowContext(ctx, q, from, to, rate, effective).Scan(&rt.ID); err != nil {
		return nil, err
	}
	return &rt, nil
}
