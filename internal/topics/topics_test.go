package topics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus() [][]string {
	sport := []string{"cruzeiro", "gol", "jogo", "time", "campeonato"}
	politics := []string{"senado", "votação", "lei", "governo", "ministro"}

	var docs [][]string
	for i := 0; i < 20; i++ {
		docs = append(docs, sport, politics)
	}
	return docs
}

func TestFit_Shape(t *testing.T) {
	model, err := Fit(corpus(), DefaultOptions(QUERY_TOPICS))
	require.NoError(t, err)

	require.Len(t, model.Topics, QUERY_TOPICS)
	assert.Len(t, model.Vocabulary, 10)
	require.Len(t, model.DocTopics, 40)

	for i, topic := range model.Topics {
		assert.Equal(t, i, topic.ID)
		assert.LessOrEqual(t, len(topic.Words), DEFAULT_TOP_WORDS)
		for j := 1; j < len(topic.Words); j++ {
			assert.GreaterOrEqual(t, topic.Words[j-1].Weight, topic.Words[j].Weight)
		}
	}
	for _, theta := range model.DocTopics {
		var sum float64
		for _, p := range theta {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
	assert.False(t, math.IsNaN(model.Coherence))
}

func TestFit_Deterministic(t *testing.T) {
	a, err := Fit(corpus(), DefaultOptions(USER_TOPICS))
	require.NoError(t, err)
	b, err := Fit(corpus(), DefaultOptions(USER_TOPICS))
	require.NoError(t, err)

	assert.Equal(t, a.Topics, b.Topics)
	assert.Equal(t, a.DocTopics, b.DocTopics)
}

func TestFit_SeparatesDisjointThemes(t *testing.T) {
	opts := DefaultOptions(2)
	opts.Passes = 50
	model, err := Fit(corpus(), opts)
	require.NoError(t, err)

	// every document should lean heavily on one topic
	for d, theta := range model.DocTopics {
		assert.Greater(t, max(theta[0], theta[1]), 0.7, "document %d", d)
	}
	// and the two themes should land on different topics
	assert.NotEqual(t, dominant(model.DocTopics[0]), dominant(model.DocTopics[1]))
}

func TestModel_DocumentCounts(t *testing.T) {
	m := &Model{
		Topics: []Topic{{ID: 0}, {ID: 1}},
		DocTopics: [][]float64{
			{0.9, 0.1},
			{0.2, 0.8},
			{0.6, 0.4},
			{0.5, 0.5},
		},
	}
	assert.Equal(t, []int{2, 1}, m.DocumentCounts())
}

func TestModel_DocumentCountsSkipsEmptyDocs(t *testing.T) {
	docs := append(corpus(), nil, []string{})
	model, err := Fit(docs, DefaultOptions(2))
	require.NoError(t, err)

	counts := model.DocumentCounts()
	require.Len(t, counts, 2)
	assert.Equal(t, 40, counts[0]+counts[1])
}

func dominant(theta []float64) int {
	best := 0
	for i, p := range theta {
		if p > theta[best] {
			best = i
		}
	}
	return best
}

func TestFit_EmptyCorpus(t *testing.T) {
	_, err := Fit([][]string{{}, nil}, DefaultOptions(3))
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestUMassCoherence(t *testing.T) {
	docs := [][]string{{"a", "b"}, {"a", "b"}, {"c"}, {"d"}}

	together := []Topic{{Words: []TopicWord{{Word: "a"}, {Word: "b"}}}}
	apart := []Topic{{Words: []TopicWord{{Word: "c"}, {Word: "d"}}}}

	assert.Greater(t, UMassCoherence(together, docs), UMassCoherence(apart, docs))
	assert.Equal(t, 0.0, UMassCoherence([]Topic{{Words: []TopicWord{{Word: "a"}}}}, docs))
}

type fakeCompleter struct {
	reply  string
	err    error
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

func TestLabeler(t *testing.T) {
	topics := []Topic{
		{ID: 0, Words: []TopicWord{{Word: "cruzeiro"}, {Word: "gol"}}},
		{ID: 1, Words: []TopicWord{{Word: "senado"}}},
	}

	client := &fakeCompleter{reply: "```json\n{\"topics\":[{\"id\":0,\"label\":\" Futebol \"}]}\n```"}
	labeled, err := (&Labeler{Client: client}).Label(context.Background(), topics)
	require.NoError(t, err)

	assert.Equal(t, "Futebol", labeled[0].Label)
	assert.Empty(t, labeled[1].Label)
	assert.Empty(t, topics[0].Label, "input is not modified")
	assert.JSONEq(t, `[{"id":0,"words":["cruzeiro","gol"]},{"id":1,"words":["senado"]}]`, client.user)
}

func TestLabeler_Failures(t *testing.T) {
	topics := []Topic{{ID: 0, Words: []TopicWord{{Word: "x"}}}}

	_, err := (&Labeler{Client: &fakeCompleter{err: errors.New("boom")}}).Label(context.Background(), topics)
	assert.Error(t, err)

	got, err := (&Labeler{Client: &fakeCompleter{reply: "not json"}}).Label(context.Background(), topics)
	assert.Error(t, err)
	assert.Equal(t, topics, got)

	var nilLabeler *Labeler
	got, err = nilLabeler.Label(context.Background(), topics)
	assert.NoError(t, err)
	assert.Equal(t, topics, got)
}
