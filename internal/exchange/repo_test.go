package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	newer := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, from_currency, to_currency, rate, effective_date`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "from_currency", "to_currency", "rate", "effective_date"}).
			AddRow(int64(2), "USD", "EUR", "0.91", newer).
			AddRow(int64(1), "USD", "GBP", "0.78", older))

	rates, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)

	assert.Equal(t, "USD", rates[0].FromCurrency)
	assert.True(t, rates[0].Rate.Equal(decimal.RequireFromString("0.91")))
	assert.Equal(t, newer, rates[0].EffectiveDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	rate := decimal.RequireFromString("0.915")
	effective := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO exchange_rates`).
		WithArgs("USD", "EUR", rate, effective).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	rt, err := repo.Create(context.Background(), "USD", "EUR", rate, effective)
	require.NoError(t, err)

	assert.Equal(t, int64(5), rt.ID)
	assert.True(t, rt.Rate.Equal(rate))
	require.NoError(t, mock.ExpectationsWereMet())
}
