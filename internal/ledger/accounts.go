package ledger

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is one row of the chart of accounts. Balance is decimal because it
// is real ledger money, not a derived display value.
type Account struct {
	ID       int64           `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	IsActive bool            `json:"isActive"`
}

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) List(ctx context.Context) ([]Account, error) {
	const q = `
		SELECT id, code, name, type, currency, balance, is_active
		FROM accounts
		ORDER BY code ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Account, 0, 16)
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.Currency, &a.Balance, &a.IsActive); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create opens an account with a zero balance, active.
func (r *AccountRepo) Create(ctx context.Context, code, name, accType, currency string) (*Account, error) {
	const q = `
		INSERT INTO accounts (code, name, type, currency, balance, is_active)
		VALUES ($1, $2, $3, $4, 0, true)
		RETURNING id
	`
	a := Account{
		Code:     code,
		Name:     name,
		Type:     accType,
		Currency: currency,
		Balance:  decimal.Zero,
		IsActive: true,
	}
	if err := r.db.QueryRowContext(ctx, q, code, name, accType, currency).Scan(&a.ID); err != nil {
		return nil, err
	}
	return &a, nil
}
