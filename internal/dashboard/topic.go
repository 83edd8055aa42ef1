package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spacesedan/skypulse/internal/export"
	"github.com/spacesedan/skypulse/internal/processing"
	"github.com/spacesedan/skypulse/internal/report"
	"github.com/spacesedan/skypulse/internal/textclean"
	"github.com/spacesedan/skypulse/internal/topics"
)

const DEFAULT_TOPIC_LIMIT = 15

type TopicOptions struct {
	Query    string
	Limit    int
	Language string
}

// Topic runs one search for a theme and writes its report.
func (d *Dashboard) Topic(ctx context.Context, opts TopicOptions) (*Result, error) {
	if opts.Query == "" {
		return nil, errors.New("[Dashboard] a search query is required")
	}

	norm := processing.NewNormalizer(opts.Language, d.Seen)
	posts, stats := processing.CollectSearch(ctx, d.Fetcher, norm, opts.Query, processing.CollectOptions{
		Limit:      opts.Limit,
		Iterations: 1,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w for query %q", ErrNoData, opts.Query)
	}

	res := &Result{Posts: len(posts), Stats: stats}
	if err := d.writeCSV(export.TOPIC_POSTS_FILE, func(w io.Writer) error {
		return export.WritePosts(w, posts)
	}, res); err != nil {
		return nil, err
	}

	b := report.NewBuilder("Posts about " + opts.Query)
	b.Paragraph("Total posts collected: %d. Language: %s.", len(posts), textclean.ResolveLanguage(opts.Language))
	writeWordFrequencies(b, posts)
	writeDailyTotals(b, posts)
	writeDistributions(b, posts)
	writeCorrelation(b, posts)
	writeTopTokens(b, posts)
	writeMeanSentiment(b, d.Analyzer.ScorePosts(posts))
	writeTopics(ctx, b, d.Labeler, posts, topics.QUERY_TOPICS)

	if err := d.writeReport(b, "topic_report", res); err != nil {
		return nil, err
	}

	logDone("topic", res)
	return res, nil
}
