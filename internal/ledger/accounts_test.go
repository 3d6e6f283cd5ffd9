package ledger

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	mock.ExpectQuery(`SELECT id, code, name, type, currency, balance, is_active`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "type", "currency", "balance", "is_active"}).
			AddRow(int64(1), "1000", "Cash", "asset", "USD", "12500.50", true).
			AddRow(int64(2), "2000", "Accounts Payable", "liability", "USD", "-3000", true))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "1000", accounts[0].Code)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("12500.50")))
	assert.True(t, accounts[1].Balance.IsNegative())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("3000", "Retained Earnings", "equity", "USD").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	a, err := repo.Create(context.Background(), "3000", "Retained Earnings", "equity", "USD")
	require.NoError(t, err)

	assert.Equal(t, int64(7), a.ID)
	assert.True(t, a.Balance.IsZero())
	assert.True(t, a.IsActive)

	require.NoError(t, mock.ExpectationsWereMet())
}
