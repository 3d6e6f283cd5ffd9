package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a double-entry line pair: one debit account, one credit
// account, one amount.
type JournalEntry struct {
	ID              int64           `json:"id"`
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	DebitAccountID  int64           `json:"debitAccountId"`
	CreditAccountID int64           `json:"creditAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) List(ctx context.Context) ([]JournalEntry, error) {
	const q = `
		SELECT id, entry_date, description, debit_account_id, credit_account_id, amount, created_at
		FROM journal_entries
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JournalEntry, 0, 32)
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.Description, &e.DebitAccountID, &e.CreditAccountID, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
