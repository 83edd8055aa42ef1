// Package export writes collected data as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spacesedan/skypulse/internal/models"
)

const (
	USER_POSTS_FILE    = "user_posts.csv"
	TOPIC_POSTS_FILE   = "topic_posts.csv"
	NETWORK_POSTS_FILE = "posts.csv"
	RELATIONS_FILE     = "relations.csv"
)

var postHeader = []string{
	"original_text", "cleaned_text", "tokens",
	"replies", "likes", "reposts", "quotes", "total",
	"timestamp", "author_handle", "author_display_name", "has_image",
}

// WritePosts writes one row per post. Tokens are space-joined.
func WritePosts(w io.Writer, posts []models.Post) error {
	rows := make([][]string, 0, len(posts)+1)
	rows = append(rows, postHeader)
	for _, p := range posts {
		rows = append(rows, []string{
			p.OriginalText,
			p.CleanedText,
			strings.Join(p.Tokens, " "),
			strconv.Itoa(p.Replies),
			strconv.Itoa(p.Likes),
			strconv.Itoa(p.Reposts),
			strconv.Itoa(p.Quotes),
			strconv.Itoa(p.Total()),
			p.Timestamp,
			p.AuthorHandle,
			p.AuthorDisplayName,
			strconv.FormatBool(p.HasImage),
		})
	}
	return writeAll(w, rows)
}

// WriteAuthorPosts writes the search hits behind a follower network.
func WriteAuthorPosts(w io.Writer, hits []models.AuthorPost) error {
	rows := [][]string{{"text", "user"}}
	for _, h := range hits {
		rows = append(rows, []string{h.Text, h.Handle})
	}
	return writeAll(w, rows)
}

// WriteRelations writes one row per author with comma-separated follower
// and follow handles.
func WriteRelations(w io.Writer, relations []models.Relations) error {
	rows := [][]string{{"user", "followers", "follows"}}
	for _, r := range relations {
		rows = append(rows, []string{
			r.Handle,
			strings.Join(r.Followers, ", "),
			strings.Join(r.Follows, ", "),
		})
	}
	return writeAll(w, rows)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("[Export] write csv: %w", err)
	}
	return nil
}

// ToFile creates dir/name and hands it to write. It returns the path
// written.
func ToFile(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("[Export] create output dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("[Export] create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("[Export] close %s: %w", path, err)
	}

	slog.Info("[Export] File written", slog.String("path", path))
	return path, nil
}
