// Package topics fits LDA topic models over post tokens.
package topics

import (
	"cmp"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"
)

const (
	USER_TOPICS  = 5
	QUERY_TOPICS = 3

	DEFAULT_PASSES    = 10
	DEFAULT_TOP_WORDS = 10
	DEFAULT_BETA      = 0.01
	DEFAULT_SEED      = 42
)

var ErrEmptyCorpus = errors.New("[Topics] no tokens to model")

type Options struct {
	Topics   int
	Passes   int
	TopWords int
	// Alpha is the document-topic prior; zero means 1/Topics.
	Alpha float64
	Beta  float64
	Seed  uint64
}

func DefaultOptions(topics int) Options {
	return Options{
		Topics:   topics,
		Passes:   DEFAULT_PASSES,
		TopWords: DEFAULT_TOP_WORDS,
		Beta:     DEFAULT_BETA,
		Seed:     DEFAULT_SEED,
	}
}

type TopicWord struct {
	Word   string
	Weight float64
}

type Topic struct {
	ID    int
	Words []TopicWord
	// Label is a short human name, empty unless a Labeler filled it in.
	Label string
}

type Model struct {
	Topics     []Topic
	Vocabulary []string
	// DocTopics[d][k] is the share of topic k in document d.
	DocTopics [][]float64
	Coherence float64
}

// DocumentCounts returns, per topic, how many documents it dominates.
// Documents with a flat mixture, such as empty ones, count for no topic;
// ties go to the lower topic.
func (m *Model) DocumentCounts() []int {
	counts := make([]int, len(m.Topics))
	for _, theta := range m.DocTopics {
		best, flat := 0, true
		for t, p := range theta {
			if p != theta[0] {
				flat = false
			}
			if p > theta[best] {
				best = t
			}
		}
		if !flat && best < len(counts) {
			counts[best]++
		}
	}
	return counts
}

// Fit runs collapsed Gibbs sampling over docs. The same docs and options
// always produce the same model.
func Fit(docs [][]string, opts Options) (*Model, error) {
	opts = withDefaults(opts)
	start := time.Now()

	vocab, index := buildVocabulary(docs)
	if len(vocab) == 0 {
		return nil, ErrEmptyCorpus
	}

	k, v := opts.Topics, len(vocab)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	words := make([][]int, len(docs))
	assign := make([][]int, len(docs))
	docTopic := make([][]int, len(docs))
	topicWord := make([][]int, k)
	topicTotal := make([]int, k)
	for t := range topicWord {
		topicWord[t] = make([]int, v)
	}

	for d, doc := range docs {
		words[d] = make([]int, len(doc))
		assign[d] = make([]int, len(doc))
		docTopic[d] = make([]int, k)
		for i, tok := range doc {
			w := index[tok]
			t := rng.IntN(k)
			words[d][i], assign[d][i] = w, t
			docTopic[d][t]++
			topicWord[t][w]++
			topicTotal[t]++
		}
	}

	vBeta := float64(v) * opts.Beta
	weights := make([]float64, k)
	for pass := 0; pass < opts.Passes; pass++ {
		for d := range words {
			for i, w := range words[d] {
				t := assign[d][i]
				docTopic[d][t]--
				topicWord[t][w]--
				topicTotal[t]--

				var sum float64
				for j := 0; j < k; j++ {
					weights[j] = (float64(docTopic[d][j]) + opts.Alpha) *
						(float64(topicWord[j][w]) + opts.Beta) /
						(float64(topicTotal[j]) + vBeta)
					sum += weights[j]
				}
				t = sample(rng, weights, sum)

				assign[d][i] = t
				docTopic[d][t]++
				topicWord[t][w]++
				topicTotal[t]++
			}
		}
	}

	model := &Model{Vocabulary: vocab}
	for t := 0; t < k; t++ {
		topic := Topic{ID: t}
		for _, w := range topWords(topicWord[t], opts.TopWords) {
			topic.Words = append(topic.Words, TopicWord{
				Word:   vocab[w],
				Weight: (float64(topicWord[t][w]) + opts.Beta) / (float64(topicTotal[t]) + vBeta),
			})
		}
		model.Topics = append(model.Topics, topic)
	}

	kAlpha := float64(k) * opts.Alpha
	for d := range docTopic {
		theta := make([]float64, k)
		for t := range theta {
			theta[t] = (float64(docTopic[d][t]) + opts.Alpha) / (float64(len(words[d])) + kAlpha)
		}
		model.DocTopics = append(model.DocTopics, theta)
	}

	model.Coherence = UMassCoherence(model.Topics, docs)

	slog.Info("[Topics] LDA model fitted",
		slog.Int("topics", k),
		slog.Int("documents", len(docs)),
		slog.Int("vocabulary", v),
		slog.Float64("coherence", model.Coherence),
		slog.Duration("duration", time.Since(start)))
	return model, nil
}

func withDefaults(opts Options) Options {
	if opts.Topics < 1 {
		opts.Topics = 1
	}
	if opts.Passes < 1 {
		opts.Passes = DEFAULT_PASSES
	}
	if opts.TopWords < 1 {
		opts.TopWords = DEFAULT_TOP_WORDS
	}
	if opts.Alpha <= 0 {
		opts.Alpha = 1 / float64(opts.Topics)
	}
	if opts.Beta <= 0 {
		opts.Beta = DEFAULT_BETA
	}
	return opts
}

// buildVocabulary numbers distinct tokens in first-seen order.
func buildVocabulary(docs [][]string) ([]string, map[string]int) {
	var vocab []string
	index := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			if _, ok := index[tok]; !ok {
				index[tok] = len(vocab)
				vocab = append(vocab, tok)
			}
		}
	}
	return vocab, index
}

func sample(rng *rand.Rand, weights []float64, sum float64) int {
	u := rng.Float64() * sum
	for j, w := range weights {
		u -= w
		if u < 0 {
			return j
		}
	}
	return len(weights) - 1
}

// topWords returns the ids of the n most frequent words of a topic, ties by
// id so the order is stable.
func topWords(counts []int, n int) []int {
	ids := make([]int, len(counts))
	for i := range ids {
		ids[i] = i
	}
	slices.SortFunc(ids, func(a, b int) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if n < len(ids) {
		ids = ids[:n]
	}
	return ids
}
