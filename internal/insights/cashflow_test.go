package insights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticForecastReturnsIndependentSlices(t *testing.T) {
	p := StaticForecast{}

	first, err := p.Forecast(context.Background())
	require.NoError(t, err)
	second, err := p.Forecast(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 4)
	assert.Equal(t, first, second)

	// Mutating one result must not bleed into the next call.
	first[0].Value = -1
	third, err := p.Forecast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 54000.0, third[0].Value)
}

type fakeHistory struct {
	totals []MonthTotal
	err    error
}

func (f *fakeHistory) MonthlyTotals(ctx context.Context, months int) ([]MonthTotal, error) {
	return f.totals, f.err
}

func TestTrailingAverageForecast(t *testing.T) {
	f := NewTrailingAverageForecast(&fakeHistory{totals: []MonthTotal{
		{Total: 40000},
		{Total: 50000},
		{Total: 60000},
	}})
	f.now = func() time.Time { return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC) }

	points, err := f.Forecast(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, "Feb", points[0].Period)
	assert.Equal(t, "May", points[3].Period)
	for _, p := range points {
		assert.Equal(t, 50000.0, p.Value)
	}
}

func TestTrailingAverageForecastMonthEnd(t *testing.T) {
	f := NewTrailingAverageForecast(&fakeHistory{totals: []MonthTotal{{Total: 30000}}})
	// Jan 31: naive AddDate stepping would normalize Feb 31 to Mar 3 and
	// emit Mar twice while skipping Feb and Apr.
	f.now = func() time.Time { return time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC) }

	points, err := f.Forecast(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 4)

	periods := make([]string, 0, len(points))
	for _, p := range points {
		periods = append(periods, p.Period)
	}
	assert.Equal(t, []string{"Feb", "Mar", "Apr", "May"}, periods)
}

func TestTrailingAverageForecastNoHistoryFallsBack(t *testing.T) {
	f := NewTrailingAverageForecast(&fakeHistory{})

	points, err := f.Forecast(context.Background())
	require.NoError(t, err)

	static, _ := StaticForecast{}.Forecast(context.Background())
	assert.Equal(t, static, points)
}

func TestTrailingAverageForecastPropagatesError(t *testing.T) {
	f := NewTrailingAverageForecast(&fakeHistory{err: assert.AnError})

	_, err := f.Forecast(context.Background())
	assert.Error(t, err)
}
