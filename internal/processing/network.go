package processing

import (
	"context"
	"log/slog"

	"github.com/spacesedan/skypulse/internal/clients"
	"github.com/spacesedan/skypulse/internal/models"
)

type GraphFetcher interface {
	GetFollowers(ctx context.Context, actor string, limit int, cursor string) (*models.FollowersResponse, error)
	GetFollows(ctx context.Context, actor string, limit int, cursor string) (*models.FollowsResponse, error)
}

// CollectAuthors runs one search per query and returns every hit with text
// plus the distinct author handles in first-seen order.
func CollectAuthors(ctx context.Context, fetcher SearchFetcher, queries []string, limit int) ([]models.AuthorPost, []string) {
	limit = clampLimit(limit)

	var hits []models.AuthorPost
	var authors []string
	seen := make(map[string]struct{})

	for _, query := range queries {
		page, err := fetcher.SearchPosts(ctx, query, limit, "")
		if err != nil {
			slog.Warn("[Collector] Search yielded no data",
				slog.String("query", query),
				slog.String("error", err.Error()))
			continue
		}

		slog.Info("[Collector] Posts found for query",
			slog.String("query", query),
			slog.Int("posts", len(page.Posts)))

		for _, pv := range page.Posts {
			if pv.Record.Text == "" || pv.Author.Handle == "" {
				continue
			}
			hits = append(hits, models.AuthorPost{Text: pv.Record.Text, Handle: pv.Author.Handle})
			if _, ok := seen[pv.Author.Handle]; !ok {
				seen[pv.Author.Handle] = struct{}{}
				authors = append(authors, pv.Author.Handle)
			}
		}
	}

	return hits, authors
}

// CollectRelations fetches one page of followers and follows per author.
// A failed call leaves that side of the relation empty.
func CollectRelations(ctx context.Context, fetcher GraphFetcher, authors []string) []models.Relations {
	relations := make([]models.Relations, 0, len(authors))

	for _, author := range authors {
		rel := models.Relations{Handle: author}

		if followers, err := fetcher.GetFollowers(ctx, author, clients.BSKY_MAX_LIMIT, ""); err == nil {
			rel.Followers = handles(followers.Followers)
		} else {
			slog.Warn("[Collector] Followers yielded no data",
				slog.String("actor", author),
				slog.String("error", err.Error()))
		}

		if follows, err := fetcher.GetFollows(ctx, author, clients.BSKY_MAX_LIMIT, ""); err == nil {
			rel.Follows = handles(follows.Follows)
		} else {
			slog.Warn("[Collector] Follows yielded no data",
				slog.String("actor", author),
				slog.String("error", err.Error()))
		}

		if ctx.Err() != nil {
			break
		}
		relations = append(relations, rel)
	}

	return relations
}

func handles(profiles []models.ProfileView) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.Handle != "" {
			out = append(out, p.Handle)
		}
	}
	return out
}
