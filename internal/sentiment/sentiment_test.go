package sentiment

import (
	"testing"

	"github.com/spacesedan/skypulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		compound float64
		want     string
	}{
		{0.20, LabelPositive},
		{0.95, LabelPositive},
		{0.19, LabelNeutral},
		{0, LabelNeutral},
		{-0.19, LabelNeutral},
		{-0.20, LabelNegative},
		{-1, LabelNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Scores{Compound: tt.compound}.Label(), "compound %v", tt.compound)
	}
}

func TestScore(t *testing.T) {
	a := NewAnalyzer()

	pos := a.Score("great wonderful happy day")
	assert.Greater(t, pos.Compound, POSITIVE_THRESHOLD)
	assert.Equal(t, LabelPositive, pos.Label())

	neg := a.Score("terrible awful horrible tragedy")
	assert.Less(t, neg.Compound, NEGATIVE_THRESHOLD)

	empty := a.Score("")
	assert.Equal(t, 0.0, empty.Compound)
}

func scored(compounds ...float64) []ScoredPost {
	out := make([]ScoredPost, len(compounds))
	for i, c := range compounds {
		out[i] = ScoredPost{
			Post:   models.Post{OriginalText: string(rune('a' + i))},
			Scores: Scores{Compound: c, Pos: c, Neu: 1 - c},
		}
	}
	return out
}

func TestExtremes(t *testing.T) {
	pos, neg := Extremes(scored(0.1, 0.9, -0.5, 0.9, -0.8), 2)
	require.Len(t, pos, 2)
	require.Len(t, neg, 2)
	assert.Equal(t, "b", pos[0].Post.OriginalText)
	assert.Equal(t, "d", pos[1].Post.OriginalText)
	assert.Equal(t, "e", neg[0].Post.OriginalText)
	assert.Equal(t, "c", neg[1].Post.OriginalText)

	pos, neg = Extremes(scored(0.3), EXTREMES)
	assert.Len(t, pos, 1)
	assert.Len(t, neg, 1)
}

func TestHistogram(t *testing.T) {
	bins := Histogram(scored(-1, 0, 1, 0.99), 20)
	require.Len(t, bins, 20)
	assert.Equal(t, -1.0, bins[0].Low)
	assert.Equal(t, 1.0, bins[19].High)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[10].Count)
	assert.Equal(t, 2, bins[19].Count)
}

func TestMeanScoresAndLabels(t *testing.T) {
	s := scored(0.5, -0.5, 0)
	mean := MeanScores(s)
	assert.InDelta(t, 0.0, mean.Compound, 1e-12)
	assert.InDelta(t, 1.0, mean.Neu, 1e-12)

	assert.Equal(t, map[string]int{LabelPositive: 1, LabelNeutral: 1, LabelNegative: 1}, LabelCounts(s))
	assert.Equal(t, Scores{}, MeanScores(nil))
}

func TestByState(t *testing.T) {
	a := NewAnalyzer()
	posts := []models.Post{
		{OriginalText: "Wonderful amazing news from Texas"},
		{OriginalText: "Terrible deadly floods in Ohio"},
		{OriginalText: "nothing about states here, texas lowercase"},
		{OriginalText: "West Virginia mine reopens"},
	}

	report := a.ByState(posts)
	require.True(t, report.Found())

	names := make([]string, 0, len(report.States))
	for _, s := range report.States {
		names = append(names, s.State)
	}
	assert.Equal(t, []string{"Texas", "Ohio", "Virginia", "West Virginia"}, names)
	assert.Equal(t, "Texas", report.MostPositive.State)
	assert.Equal(t, "Ohio", report.MostNegative.State)
}

func TestByState_NoneFound(t *testing.T) {
	report := NewAnalyzer().ByState([]models.Post{{OriginalText: "just a post"}})
	assert.False(t, report.Found())
	assert.Nil(t, report.MostPositive)
	assert.Nil(t, report.MostNegative)
}
