package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spacesedan/skypulse/internal/clients"
	"github.com/spacesedan/skypulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTopicCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/xrpc/"+clients.BSKY_SEARCH_METHOD, r.URL.Path)
		assert.Equal(t, "Gabigol", r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode(models.SearchResponse{Posts: []models.PostView{
			{Record: models.PostRecord{Text: "Gabigol marcou um golaço"}, LikeCount: 3, IndexedAt: "2025-03-01T20:00:00Z"},
			{Record: models.PostRecord{Text: "Que jogo incrível do Gabigol"}, LikeCount: 1, IndexedAt: "2025-03-02T20:00:00Z"},
		}})
	}))
	defer srv.Close()

	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("BSKY_API_URL", srv.URL+"/xrpc")
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()

	out, err := run(t, "topic", "--query", "Gabigol", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Total posts collected: 2")
	assert.Contains(t, out, filepath.Join(dir, "topic_report.md"))
}

func TestUserCommand_RejectsHorizon(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	_, err := run(t, "user", "--actor", "nytimes.com", "--forecast-days", "5", "--out", t.TempDir())
	assert.ErrorContains(t, err, "forecast days must be one of")
}

func TestFailedCommandStillReleasesResources(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	closed := 0
	app.closers = append(app.closers, func() { closed++ })

	_, err := run(t, "user", "--actor", "nytimes.com", "--forecast-days", "5", "--out", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, 1, closed)
	assert.Empty(t, app.closers)
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("BSKY_RATE_LIMIT", "fast")

	_, err := run(t, "network", "--out", t.TempDir())
	assert.ErrorContains(t, err, "BSKY_RATE_LIMIT")
}
