// Package engagement computes engagement statistics over collected posts.
package engagement

import (
	"math"
	"slices"

	"github.com/spacesedan/skypulse/internal/models"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const DEFAULT_BINS = 20

type Metric string

const (
	Replies Metric = "replies"
	Likes   Metric = "likes"
	Reposts Metric = "reposts"
	Quotes  Metric = "quotes"
	Total   Metric = "total"
)

// CountMetrics are the four raw engagement counters, in report order.
var CountMetrics = []Metric{Replies, Likes, Reposts, Quotes}

// CorrelationMetrics are the columns of the correlation matrix.
var CorrelationMetrics = []Metric{Replies, Likes, Reposts, Quotes, Total}

func (m Metric) Value(p models.Post) float64 {
	switch m {
	case Replies:
		return float64(p.Replies)
	case Likes:
		return float64(p.Likes)
	case Reposts:
		return float64(p.Reposts)
	case Quotes:
		return float64(p.Quotes)
	default:
		return float64(p.Total())
	}
}

func Values(posts []models.Post, m Metric) []float64 {
	out := make([]float64, len(posts))
	for i, p := range posts {
		out[i] = m.Value(p)
	}
	return out
}

// Bin is a half-open histogram bucket [Low, High); the last bucket of a
// histogram also includes High.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram buckets values into n equal-width bins spanning their min and
// max. A constant series is centred in a unit-wide range.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 {
		return nil
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return HistogramRange(values, n, lo, hi)
}

// HistogramRange buckets values into n equal-width bins over [lo, hi].
// Values outside the range are ignored.
func HistogramRange(values []float64, n int, lo, hi float64) []Bin {
	if n < 1 {
		n = DEFAULT_BINS
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[n-1].High = hi

	for _, v := range values {
		if v < lo || v > hi || math.IsNaN(v) {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Count++
	}
	return bins
}

// Summary is the five-number summary behind a box plot.
type Summary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Mean   float64
}

type MetricDistribution struct {
	Metric  Metric
	Bins    []Bin
	Summary Summary
}

// Distribution returns the histogram and box-plot summary of one metric.
func Distribution(posts []models.Post, m Metric, bins int) MetricDistribution {
	values := Values(posts, m)
	return MetricDistribution{
		Metric:  m,
		Bins:    Histogram(values, bins),
		Summary: Summarize(values),
	}
}

func Summarize(values []float64) Summary {
	if len(values) == 0 {
		nan := math.NaN()
		return Summary{Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan, Mean: nan}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return Summary{
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(sorted, nil),
	}
}

// Correlation is a Pearson correlation matrix labelled by metric.
type Correlation struct {
	Labels []Metric
	Matrix *mat.SymDense
}

func (c Correlation) At(i, j int) float64 {
	return c.Matrix.At(i, j)
}

// CorrelationMatrix correlates every pair of CorrelationMetrics. Columns
// with zero variance, or fewer than two posts, yield NaN.
func CorrelationMatrix(posts []models.Post) Correlation {
	cols := len(CorrelationMetrics)
	corr := mat.NewSymDense(cols, nil)

	if len(posts) < 2 {
		for i := 0; i < cols; i++ {
			for j := i; j < cols; j++ {
				corr.SetSym(i, j, math.NaN())
			}
		}
		return Correlation{Labels: CorrelationMetrics, Matrix: corr}
	}

	data := mat.NewDense(len(posts), cols, nil)
	constant := make([]bool, cols)
	for j, m := range CorrelationMetrics {
		values := Values(posts, m)
		data.SetCol(j, values)
		constant[j] = stat.Variance(values, nil) == 0
	}
	stat.CorrelationMatrix(corr, data, nil)

	// gonum pins the diagonal to 1 and leaves Inf or NaN elsewhere for a
	// constant column; report the whole row as undefined instead.
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			if v := corr.At(i, j); constant[i] || constant[j] || math.IsInf(v, 0) || math.IsNaN(v) {
				corr.SetSym(i, j, math.NaN())
			}
		}
	}
	return Correlation{Labels: CorrelationMetrics, Matrix: corr}
}

// Pearson correlates two equal-length series, NaN when undefined.
func Pearson(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
