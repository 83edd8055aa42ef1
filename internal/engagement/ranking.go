package engagement

import (
	"cmp"
	"slices"

	"github.com/spacesedan/skypulse/internal/models"
)

const (
	TOP_POSTS  = 5
	TOP_TOKENS = 10
)

// TopPosts returns the n posts with the highest total engagement. Posts
// with equal totals keep their collection order.
func TopPosts(posts []models.Post, n int) []models.Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b models.Post) int {
		return cmp.Compare(b.Total(), a.Total())
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

type TokenScore struct {
	Token string
	Score int
}

// TopTokens sums, for every token, the total engagement of the posts it
// appears in. A token repeated inside one post counts once per occurrence.
func TopTokens(posts []models.Post, n int) []TokenScore {
	scores := make(map[string]int)
	for _, p := range posts {
		total := p.Total()
		for _, tok := range p.Tokens {
			scores[tok] += total
		}
	}
	return rank(scores, n)
}

// WordFrequencies counts token occurrences across all posts. n <= 0 returns
// every token.
func WordFrequencies(posts []models.Post, n int) []TokenScore {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, tok := range p.Tokens {
			counts[tok]++
		}
	}
	return rank(counts, n)
}

func rank(scores map[string]int, n int) []TokenScore {
	out := make([]TokenScore, 0, len(scores))
	for tok, score := range scores {
		out = append(out, TokenScore{Token: tok, Score: score})
	}
	slices.SortFunc(out, func(a, b TokenScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Token, b.Token)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
