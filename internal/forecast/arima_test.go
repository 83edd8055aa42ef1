package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/spacesedan/skypulse/internal/engagement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_NotEnoughData(t *testing.T) {
	_, err := Fit(make([]float64, MinObservations()-1))
	assert.ErrorIs(t, err, ErrNotEnoughData)

	_, err = Daily(nil, 3)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestForecast_LinearTrend(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = 10 + 4*float64(i)
	}

	model, err := Fit(series)
	require.NoError(t, err)

	got := model.Forecast(7)
	require.Len(t, got, 7)
	for i, v := range got {
		want := 10 + 4*float64(30+i)
		assert.InDelta(t, want, v, 1e-3, "step %d", i+1)
	}
}

func TestForecast_Constant(t *testing.T) {
	series := make([]float64, 15)
	for i := range series {
		series[i] = 42
	}

	model, err := Fit(series)
	require.NoError(t, err)
	for _, v := range model.Forecast(3) {
		assert.InDelta(t, 42, v, 1e-9)
	}
}

func TestFit_RecoversAR1(t *testing.T) {
	// differences follow d[t] = 0.5 d[t-1] with a periodic kick
	diff := []float64{8}
	for i := 1; i < 60; i++ {
		next := 0.5 * diff[i-1]
		if i%10 == 0 {
			next += 8
		}
		diff = append(diff, next)
	}
	series := []float64{100}
	for _, d := range diff {
		series = append(series, series[len(series)-1]+d)
	}

	model, err := Fit(series)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(model.Sigma2))
	require.Len(t, model.Coefficients, AR_ORDER)
}

func TestDaily(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	var history []engagement.DailyTotal
	for i := 0; i < 12; i++ {
		history = append(history, engagement.DailyTotal{Day: start.AddDate(0, 0, i), Total: 2 * i})
	}

	res, err := Daily(history, 3)
	require.NoError(t, err)
	require.Len(t, res.Forecast, 3)
	assert.Equal(t, time.Date(2025, 2, 13, 0, 0, 0, 0, time.UTC), res.Forecast[0].Day)
	assert.InDelta(t, 24, res.Forecast[0].Value, 1e-3)

	_, err = Daily(history, 0)
	assert.Error(t, err)
}

func TestValidHorizon(t *testing.T) {
	for _, h := range []int{3, 7, 30} {
		assert.True(t, ValidHorizon(h))
	}
	assert.False(t, ValidHorizon(5))
}
