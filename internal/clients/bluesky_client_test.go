package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/skypulse/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *BlueskyClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBlueskyClient(config.BlueskyConfig{APIURL: srv.URL + "/xrpc/", Timeout: 5 * time.Second})
}

func TestGetAuthorFeed(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		assert.Equal(t, USER_AGENT, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cursor": "next-page",
			"feed": [{"post": {
				"uri": "at://did:plc:abc/app.bsky.feed.post/1",
				"author": {"handle": "nytimes.com", "displayName": "The New York Times"},
				"record": {"text": "Breaking News", "embed": {"images": [{"image": {"ref": {"$link": "bafk"}}}]}},
				"replyCount": 1, "repostCount": 2, "likeCount": 3, "quoteCount": 4,
				"indexedAt": "2025-01-31T12:00:00.000Z"
			}}]
		}`))
	})

	feed, err := client.GetAuthorFeed(context.Background(), "nytimes.com", 10, "")
	require.NoError(t, err)

	assert.Equal(t, "/xrpc/"+BSKY_AUTHOR_FEED_METHOD, gotPath)
	assert.Equal(t, []string{"nytimes.com"}, gotQuery["actor"])
	assert.Equal(t, []string{"10"}, gotQuery["limit"])
	assert.NotContains(t, gotQuery, "cursor")

	assert.Equal(t, "next-page", feed.Cursor)
	require.Len(t, feed.Feed, 1)
	post := feed.Feed[0].Post
	assert.Equal(t, "Breaking News", post.Record.Text)
	assert.Equal(t, "nytimes.com", post.Author.Handle)
	assert.Equal(t, 3, post.LikeCount)
	assert.True(t, post.Record.HasImage())
}

func TestCursorForwarded(t *testing.T) {
	var gotCursor string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCursor = r.URL.Query().Get("cursor")
		_, _ = w.Write([]byte(`{"posts": []}`))
	})

	_, err := client.SearchPosts(context.Background(), "cruzeiro", 5, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", gotCursor)
}

func TestEndpoints(t *testing.T) {
	paths := make(map[string]string)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths[r.URL.Path] = r.URL.RawQuery
		switch r.URL.Path {
		case "/xrpc/" + BSKY_FOLLOWERS_METHOD:
			_, _ = w.Write([]byte(`{"followers": [{"handle": "a.bsky.social"}, {"handle": "b.bsky.social"}]}`))
		case "/xrpc/" + BSKY_FOLLOWS_METHOD:
			_, _ = w.Write([]byte(`{"follows": [{"handle": "c.bsky.social"}], "cursor": "x"}`))
		case "/xrpc/" + BSKY_SEARCH_METHOD:
			_, _ = w.Write([]byte(`{"posts": [{"record": {"text": "gol"}, "author": {"handle": "d.bsky.social"}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	followers, err := client.GetFollowers(ctx, "x.bsky.social", 100, "")
	require.NoError(t, err)
	assert.Len(t, followers.Followers, 2)

	follows, err := client.GetFollows(ctx, "x.bsky.social", 100, "")
	require.NoError(t, err)
	assert.Equal(t, "c.bsky.social", follows.Follows[0].Handle)
	assert.Equal(t, "x", follows.Cursor)

	search, err := client.SearchPosts(ctx, "gol", 5, "")
	require.NoError(t, err)
	require.Len(t, search.Posts, 1)
	assert.Equal(t, "d.bsky.social", search.Posts[0].Author.Handle)

	// url.Values encodes keys in sorted order.
	assert.Equal(t, "limit=5&q=gol", paths["/xrpc/"+BSKY_SEARCH_METHOD])
}

func TestNon200IsNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"InvalidRequest","message":"Profile not found"}`))
	})

	feed, err := client.GetAuthorFeed(context.Background(), "nobody.invalid", 10, "")
	assert.Nil(t, feed)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Contains(t, statusErr.Body, "Profile not found")
}

func TestMalformedJSONIsNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"feed": [`))
	})

	feed, err := client.GetAuthorFeed(context.Background(), "nytimes.com", 10, "")
	assert.Nil(t, feed)
	assert.Error(t, err)
}

func TestTransportErrorIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewBlueskyClient(config.BlueskyConfig{APIURL: srv.URL})

	feed, err := client.GetAuthorFeed(context.Background(), "nytimes.com", 10, "")
	assert.Nil(t, feed)
	assert.Error(t, err)
}

func TestRateLimitRespectsContext(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"posts": []}`))
	}))
	t.Cleanup(srv.Close)
	client := NewBlueskyClient(config.BlueskyConfig{APIURL: srv.URL, RateLimit: 0.001})

	_, err := client.SearchPosts(context.Background(), "a", 1, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.SearchPosts(ctx, "b", 1, "")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
