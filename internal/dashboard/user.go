package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spacesedan/skypulse/internal/export"
	"github.com/spacesedan/skypulse/internal/forecast"
	"github.com/spacesedan/skypulse/internal/models"
	"github.com/spacesedan/skypulse/internal/processing"
	"github.com/spacesedan/skypulse/internal/report"
	"github.com/spacesedan/skypulse/internal/textclean"
	"github.com/spacesedan/skypulse/internal/topics"
)

const (
	DEFAULT_USER_LIMIT      = 100
	DEFAULT_USER_ITERATIONS = 100
	DEFAULT_FORECAST_DAYS   = 3
)

type UserOptions struct {
	Actor        string
	Limit        int
	Iterations   int
	ForecastDays int
	Language     string
}

func (o UserOptions) Validate() error {
	if o.Actor == "" {
		return errors.New("[Dashboard] an actor handle is required")
	}
	if o.Iterations < 1 {
		return fmt.Errorf("[Dashboard] iterations must be at least 1, got %d", o.Iterations)
	}
	if !forecast.ValidHorizon(o.ForecastDays) {
		return fmt.Errorf("[Dashboard] forecast days must be one of %v, got %d", forecast.Horizons, o.ForecastDays)
	}
	return nil
}

// User collects an actor's feed and writes the full engagement report.
func (d *Dashboard) User(ctx context.Context, opts UserOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	norm := processing.NewNormalizer(opts.Language, d.Seen)
	posts, stats := processing.CollectPosts(ctx, d.Fetcher, norm, opts.Actor, processing.CollectOptions{
		Limit:      opts.Limit,
		Iterations: opts.Iterations,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w for user %s", ErrNoData, opts.Actor)
	}

	res := &Result{Posts: len(posts), Stats: stats}
	if err := d.writeCSV(export.USER_POSTS_FILE, func(w io.Writer) error {
		return export.WritePosts(w, posts)
	}, res); err != nil {
		return nil, err
	}

	b := d.userReport(ctx, opts, posts, stats)
	if err := d.writeReport(b, "user_report", res); err != nil {
		return nil, err
	}

	logDone("user", res)
	return res, nil
}

func (d *Dashboard) userReport(ctx context.Context, opts UserOptions, posts []models.Post, stats processing.CollectStats) *report.Builder {
	b := report.NewBuilder("Posts of @" + opts.Actor)
	b.Paragraph("Total posts collected: %d over %d pages (stopped: %s). Language: %s.",
		len(posts), stats.Pages, stats.Reason, textclean.ResolveLanguage(opts.Language))

	writeWordFrequencies(b, posts)
	writeDistributions(b, posts)
	writeCorrelation(b, posts)
	writeTopPosts(b, posts)
	writePostFeatures(b, posts)
	writeForecast(b, posts, opts.ForecastDays)
	writeBestTimes(b, posts)
	writeSentiment(b, d.Analyzer.ScorePosts(posts))
	writeTopics(ctx, b, d.Labeler, posts, topics.USER_TOPICS)
	writeStates(b, d.Analyzer, posts)
	return b
}
