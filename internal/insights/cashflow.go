package insights

import (
	"context"
	"time"
)

// CashflowPoint is one period of projected cash inflow.
type CashflowPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// ForecastProvider is the seam for the cashflow projection model. Providers
// must return a fresh slice on every call so callers can mutate the result.
type ForecastProvider interface {
	Forecast(ctx context.Context) ([]CashflowPoint, error)
}

// StaticForecast returns the fixed four-period demo series the SPA ships
// with. It is the default provider.
type StaticForecast struct{}

func (StaticForecast) Forecast(ctx context.Context) ([]CashflowPoint, error) {
	return []CashflowPoint{
		{Period: "Jan", Value: 54000},
		{Period: "Feb", Value: 62000},
		{Period: "Mar", Value: 58000},
		{Period: "Apr", Value: 70000},
	}, nil
}

// MonthTotal is one month of historical payment volume.
type MonthTotal struct {
	Month time.Time
	Total float64
}

// PaymentHistory supplies historical payment totals for forecasting.
type PaymentHistory interface {
	MonthlyTotals(ctx context.Context, months int) ([]MonthTotal, error)
}

// TrailingAverageForecast projects the next Horizon months at the trailing
// mean of the last Window months of payments. With no history it falls back
// to the static demo series so a fresh install still renders a chart.
type TrailingAverageForecast struct {
	History PaymentHistory
	Window  int
	Horizon int
	// now is overridable in tests.
	now func() time.Time
}

func NewTrailingAverageForecast(history PaymentHistory) *TrailingAverageForecast {
	return &TrailingAverageForecast{
		History: history,
		Window:  6,
		Horizon: 4,
		now:     time.Now,
	}
}

func (f *TrailingAverageForecast) Forecast(ctx context.Context) ([]CashflowPoint, error) {
	totals, err := f.History.MonthlyTotals(ctx, f.Window)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return StaticForecast{}.Forecast(ctx)
	}

	var sum float64
	for _, t := range totals {
		sum += t.Total
	}
	mean := Round2(sum / float64(len(totals)))

	now := time.Now
	if f.now != nil {
		now = f.now
	}
	// Step from the first of the current month: AddDate normalizes
	// overflowed days, so stepping from e.g. Jan 31 would skip February.
	t := now()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())

	out := make([]CashflowPoint, 0, f.Horizon)
	for i := 1; i <= f.Horizon; i++ {
		out = append(out, CashflowPoint{
			Period: start.AddDate(0, i, 0).Format("Jan"),
			Value:  mean,
		})
	}
	return out, nil
}
