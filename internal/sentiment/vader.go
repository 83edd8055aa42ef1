// Package sentiment scores post text with VADER.
package sentiment

import (
	"cmp"
	"slices"

	"github.com/jonreiter/govader"
	"github.com/spacesedan/skypulse/internal/engagement"
	"github.com/spacesedan/skypulse/internal/models"
)

const (
	POSITIVE_THRESHOLD = 0.20
	NEGATIVE_THRESHOLD = -0.20

	EXTREMES = 3
)

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

type Scores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

func (s Scores) Label() string {
	switch {
	case s.Compound >= POSITIVE_THRESHOLD:
		return LabelPositive
	case s.Compound <= NEGATIVE_THRESHOLD:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

type ScoredPost struct {
	Post   models.Post
	Scores Scores
}

type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

func (a *Analyzer) Score(text string) Scores {
	s := a.vader.PolarityScores(text)
	return Scores{
		Neg:      s.Negative,
		Neu:      s.Neutral,
		Pos:      s.Positive,
		Compound: s.Compound,
	}
}

// ScorePosts scores the cleaned text of every post.
func (a *Analyzer) ScorePosts(posts []models.Post) []ScoredPost {
	scored := make([]ScoredPost, len(posts))
	for i, p := range posts {
		scored[i] = ScoredPost{Post: p, Scores: a.Score(p.CleanedText)}
	}
	return scored
}

// Histogram buckets compound scores over [-1, 1].
func Histogram(scored []ScoredPost, bins int) []engagement.Bin {
	values := make([]float64, len(scored))
	for i, s := range scored {
		values[i] = s.Scores.Compound
	}
	return engagement.HistogramRange(values, bins, -1, 1)
}

// Extremes returns the n most positive and n most negative posts by
// compound score. Equal scores keep collection order.
func Extremes(scored []ScoredPost, n int) (positive, negative []ScoredPost) {
	positive = slices.Clone(scored)
	slices.SortStableFunc(positive, func(a, b ScoredPost) int {
		return cmp.Compare(b.Scores.Compound, a.Scores.Compound)
	})
	negative = slices.Clone(scored)
	slices.SortStableFunc(negative, func(a, b ScoredPost) int {
		return cmp.Compare(a.Scores.Compound, b.Scores.Compound)
	})

	n = max(n, 0)
	if n < len(scored) {
		positive, negative = positive[:n], negative[:n]
	}
	return positive, negative
}

// MeanScores averages every score component; zero for no posts.
func MeanScores(scored []ScoredPost) Scores {
	var mean Scores
	if len(scored) == 0 {
		return mean
	}
	for _, s := range scored {
		mean.Neg += s.Scores.Neg
		mean.Neu += s.Scores.Neu
		mean.Pos += s.Scores.Pos
		mean.Compound += s.Scores.Compound
	}
	n := float64(len(scored))
	mean.Neg /= n
	mean.Neu /= n
	mean.Pos /= n
	mean.Compound /= n
	return mean
}

// LabelCounts counts posts per sentiment label.
func LabelCounts(scored []ScoredPost) map[string]int {
	counts := map[string]int{LabelPositive: 0, LabelNeutral: 0, LabelNegative: 0}
	for _, s := range scored {
		counts[s.Scores.Label()]++
	}
	return counts
}
