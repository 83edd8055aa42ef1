package processing

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/skypulse/internal/clients"
	"github.com/spacesedan/skypulse/internal/models"
)

type FeedFetcher interface {
	GetAuthorFeed(ctx context.Context, actor string, limit int, cursor string) (*models.FeedResponse, error)
}

type SearchFetcher interface {
	SearchPosts(ctx context.Context, query string, limit int, cursor string) (*models.SearchResponse, error)
}

type StopReason string

const (
	StopCursorExhausted StopReason = "cursor_exhausted"
	StopNoData          StopReason = "no_data"
	StopBudget          StopReason = "budget_exhausted"
	StopCanceled        StopReason = "canceled"
)

type CollectStats struct {
	Pages  int
	Posts  int
	Reason StopReason
}

type CollectOptions struct {
	Limit      int
	Iterations int
}

// pageFunc fetches the page at cursor and returns its post views and the
// next cursor ("" when the server sent none).
type pageFunc func(ctx context.Context, cursor string) ([]models.PostView, string, error)

// CollectPosts pages through actor's feed until the server stops returning
// a cursor, a page yields no data, or opts.Iterations pages were fetched.
func CollectPosts(ctx context.Context, fetcher FeedFetcher, norm *Normalizer, actor string, opts CollectOptions) ([]models.Post, CollectStats) {
	limit := clampLimit(opts.Limit)
	fetch := func(ctx context.Context, cursor string) ([]models.PostView, string, error) {
		page, err := fetcher.GetAuthorFeed(ctx, actor, limit, cursor)
		if err != nil {
			return nil, "", err
		}
		views := make([]models.PostView, 0, len(page.Feed))
		for _, item := range page.Feed {
			views = append(views, item.Post)
		}
		return views, page.Cursor, nil
	}

	slog.Info("[Collector] Collecting author feed",
		slog.String("actor", actor),
		slog.Int("limit", limit),
		slog.Int("iterations", opts.Iterations))
	return collect(ctx, norm, opts.Iterations, fetch)
}

// CollectSearch pages through search results for query with the same stop
// rules as CollectPosts.
func CollectSearch(ctx context.Context, fetcher SearchFetcher, norm *Normalizer, query string, opts CollectOptions) ([]models.Post, CollectStats) {
	limit := clampLimit(opts.Limit)
	fetch := func(ctx context.Context, cursor string) ([]models.PostView, string, error) {
		page, err := fetcher.SearchPosts(ctx, query, limit, cursor)
		if err != nil {
			return nil, "", err
		}
		return page.Posts, page.Cursor, nil
	}

	slog.Info("[Collector] Collecting search results",
		slog.String("query", query),
		slog.Int("limit", limit),
		slog.Int("iterations", opts.Iterations))
	return collect(ctx, norm, opts.Iterations, fetch)
}

func collect(ctx context.Context, norm *Normalizer, budget int, fetch pageFunc) ([]models.Post, CollectStats) {
	start := time.Now()
	var (
		posts  []models.Post
		cursor string
		stats  = CollectStats{Reason: StopBudget}
	)

	for i := 0; i < budget; i++ {
		slog.Debug("[Collector] Fetching page", slog.Int("page", i+1), slog.String("cursor", cursor))

		views, next, err := fetch(ctx, cursor)
		if err != nil {
			stats.Reason = StopNoData
			if ctx.Err() != nil {
				stats.Reason = StopCanceled
			}
			slog.Warn("[Collector] Page yielded no data, stopping",
				slog.Int("page", i+1),
				slog.String("error", err.Error()))
			break
		}
		stats.Pages++

		posts = append(posts, norm.NormalizePage(ctx, views)...)

		if next == "" {
			stats.Reason = StopCursorExhausted
			slog.Info("[Collector] End of available data", slog.Int("pages", stats.Pages))
			break
		}
		cursor = next
	}

	stats.Posts = len(posts)
	slog.Info("[Collector] Collection finished",
		slog.Int("posts", stats.Posts),
		slog.Int("pages", stats.Pages),
		slog.String("reason", string(stats.Reason)),
		slog.Duration("duration", time.Since(start)))
	return posts, stats
}

func clampLimit(limit int) int {
	switch {
	case limit < 1:
		return 1
	case limit > clients.BSKY_MAX_LIMIT:
		return clients.BSKY_MAX_LIMIT
	default:
		return limit
	}
}
