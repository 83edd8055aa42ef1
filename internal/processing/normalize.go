package processing

import (
	"context"
	"log/slog"

	"github.com/spacesedan/skypulse/internal/models"
	"github.com/spacesedan/skypulse/internal/textclean"
)

// SeenStore remembers post URIs across pages (and, for shared stores, runs).
type SeenStore interface {
	IsSeen(ctx context.Context, uri string) (bool, error)
	MarkSeen(ctx context.Context, uri string) error
}

// Normalizer flattens raw post views into Post rows.
type Normalizer struct {
	Cleaner *textclean.Cleaner
	// Seen is optional; when set, posts whose URI was already seen are skipped.
	Seen SeenStore
}

func NewNormalizer(language string, seen SeenStore) *Normalizer {
	return &Normalizer{
		Cleaner: textclean.NewCleaner(language),
		Seen:    seen,
	}
}

// Normalize builds a Post from one post view. ok is false when the post has
// no text.
func (n *Normalizer) Normalize(pv models.PostView) (models.Post, bool) {
	text := pv.Record.Text
	if text == "" {
		return models.Post{}, false
	}

	cleaned, tokens := n.Cleaner.Clean(text)
	return models.Post{
		URI:               pv.URI,
		OriginalText:      text,
		CleanedText:       cleaned,
		Tokens:            tokens,
		Replies:           pv.ReplyCount,
		Reposts:           pv.RepostCount,
		Likes:             pv.LikeCount,
		Quotes:            pv.QuoteCount,
		Timestamp:         pv.IndexedAt,
		AuthorHandle:      pv.Author.Handle,
		AuthorDisplayName: pv.Author.DisplayName,
		HasImage:          pv.Record.HasImage(),
	}, true
}

// NormalizePage normalizes every post view of a page, skipping empty texts
// and, when a SeenStore is configured, duplicates.
func (n *Normalizer) NormalizePage(ctx context.Context, views []models.PostView) []models.Post {
	posts := make([]models.Post, 0, len(views))
	for _, pv := range views {
		post, ok := n.Normalize(pv)
		if !ok {
			continue
		}
		if n.duplicate(ctx, pv.URI) {
			slog.Debug("[Normalizer] Skipping duplicate post", slog.String("uri", pv.URI))
			continue
		}
		posts = append(posts, post)
	}
	return posts
}

func (n *Normalizer) duplicate(ctx context.Context, uri string) bool {
	if n.Seen == nil || uri == "" {
		return false
	}

	seen, err := n.Seen.IsSeen(ctx, uri)
	if err != nil {
		slog.Warn("[Normalizer] Seen lookup failed, keeping post",
			slog.String("uri", uri),
			slog.String("error", err.Error()))
		return false
	}
	if seen {
		return true
	}

	if err := n.Seen.MarkSeen(ctx, uri); err != nil {
		slog.Warn("[Normalizer] Failed to mark post as seen",
			slog.String("uri", uri),
			slog.String("error", err.Error()))
	}
	return false
}

// MemorySeen is a SeenStore scoped to a single run.
type MemorySeen struct {
	seen map[string]struct{}
}

func NewMemorySeen() *MemorySeen {
	return &MemorySeen{seen: make(map[string]struct{})}
}

func (m *MemorySeen) IsSeen(_ context.Context, uri string) (bool, error) {
	_, ok := m.seen[uri]
	return ok, nil
}

func (m *MemorySeen) MarkSeen(_ context.Context, uri string) error {
	m.seen[uri] = struct{}{}
	return nil
}
