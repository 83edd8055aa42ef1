// Package forecast projects daily engagement with an ARIMA(p,1,0) model.
package forecast

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spacesedan/skypulse/internal/engagement"
	"gonum.org/v1/gonum/mat"
)

const (
	AR_ORDER   = 5
	DIFF_ORDER = 1

	// ridge keeps the normal equations solvable when lagged columns are
	// collinear, e.g. for a perfectly linear series.
	ridge = 1e-9
)

// Horizons are the forecast lengths offered to users, in days.
var Horizons = []int{3, 7, 30}

var ErrNotEnoughData = errors.New("[Forecast] not enough data")

func ValidHorizon(days int) bool {
	return slices.Contains(Horizons, days)
}

// MinObservations is the shortest series Fit accepts: after differencing
// there must be at least as many regression rows as coefficients.
func MinObservations() int {
	return 2*AR_ORDER + DIFF_ORDER
}

// Model is an ARIMA(AR_ORDER, 1, 0) without constant, fitted by
// conditional least squares on the differenced series.
type Model struct {
	Coefficients []float64
	// Sigma2 is the residual variance of the fit.
	Sigma2 float64

	series []float64
	diff   []float64
}

func Fit(series []float64) (*Model, error) {
	if len(series) < MinObservations() {
		return nil, fmt.Errorf("%w: have %d days, need %d", ErrNotEnoughData, len(series), MinObservations())
	}

	diff := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		diff[i-1] = series[i] - series[i-1]
	}

	rows := len(diff) - AR_ORDER
	x := mat.NewDense(rows, AR_ORDER, nil)
	y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		t := r + AR_ORDER
		for lag := 1; lag <= AR_ORDER; lag++ {
			x.Set(r, lag-1, diff[t-lag])
		}
		y.SetVec(r, diff[t])
	}

	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())
	scale := mat.Trace(&xtx) / AR_ORDER
	if scale < 1 {
		scale = 1
	}
	for i := 0; i < AR_ORDER; i++ {
		xtx.SetSym(i, i, xtx.At(i, i)+ridge*scale)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil, errors.New("[Forecast] normal equations are not positive definite")
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fmt.Errorf("[Forecast] solve AR coefficients: %w", err)
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(x, &beta)
	resid.SubVec(y, &fitted)
	sigma2 := mat.Dot(&resid, &resid) / float64(rows)

	return &Model{
		Coefficients: mat.Col(nil, 0, &beta),
		Sigma2:       sigma2,
		series:       slices.Clone(series),
		diff:         diff,
	}, nil
}

// Forecast returns the next steps values of the original series.
func (m *Model) Forecast(steps int) []float64 {
	diff := slices.Clone(m.diff)
	level := m.series[len(m.series)-1]

	out := make([]float64, 0, steps)
	for s := 0; s < steps; s++ {
		var next float64
		for lag := 1; lag <= AR_ORDER; lag++ {
			next += m.Coefficients[lag-1] * diff[len(diff)-lag]
		}
		diff = append(diff, next)
		level += next
		out = append(out, level)
	}
	return out
}

type Point struct {
	Day   time.Time
	Value float64
}

type Result struct {
	History  []engagement.DailyTotal
	Forecast []Point
	Model    *Model
}

// Daily fits the daily engagement totals and forecasts the following days.
func Daily(history []engagement.DailyTotal, days int) (*Result, error) {
	if days < 1 {
		return nil, fmt.Errorf("[Forecast] invalid horizon %d", days)
	}

	series := make([]float64, len(history))
	for i, d := range history {
		series[i] = float64(d.Total)
	}

	model, err := Fit(series)
	if err != nil {
		return nil, err
	}

	last := history[len(history)-1].Day
	values := model.Forecast(days)
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Day: last.AddDate(0, 0, i+1), Value: v}
	}

	slog.Info("[Forecast] Engagement forecast ready",
		slog.Int("history_days", len(history)),
		slog.Int("forecast_days", days),
		slog.Float64("sigma2", model.Sigma2))
	return &Result{History: history, Forecast: points, Model: model}, nil
}
