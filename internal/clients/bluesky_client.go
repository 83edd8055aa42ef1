package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spacesedan/skypulse/config"
	"github.com/spacesedan/skypulse/internal/models"
	"golang.org/x/time/rate"
)

// StatusError is returned for any non-200 response. Callers treat it the
// same as a transport error: the page yielded no data.
type StatusError struct {
	Method string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("[BlueskyClient] %s returned %d: %s", e.Method, e.Code, e.Body)
}

// BlueskyClient issues single unauthenticated GETs against the public
// app.bsky XRPC endpoints. Nothing is retried.
type BlueskyClient struct {
	Client  *http.Client
	BaseURL string
	limiter *rate.Limiter
}

func NewBlueskyClient(cfg config.BlueskyConfig) *BlueskyClient {
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = config.DEFAULT_API_URL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DEFAULT_HTTP_TIMEOUT
	}

	bc := &BlueskyClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
	if cfg.RateLimit > 0 {
		bc.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	slog.Debug("[BlueskyClient] Initialized client",
		slog.String("base_url", bc.BaseURL),
		slog.Duration("timeout", timeout),
		slog.Float64("rate_limit", cfg.RateLimit))

	return bc
}

// GetAuthorFeed fetches one page of an actor's feed.
func (b *BlueskyClient) GetAuthorFeed(ctx context.Context, actor string, limit int, cursor string) (*models.FeedResponse, error) {
	var out models.FeedResponse
	if err := b.get(ctx, BSKY_AUTHOR_FEED_METHOD, pageParams("actor", actor, limit, cursor), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPosts fetches one page of search results for query.
func (b *BlueskyClient) SearchPosts(ctx context.Context, query string, limit int, cursor string) (*models.SearchResponse, error) {
	var out models.SearchResponse
	if err := b.get(ctx, BSKY_SEARCH_METHOD, pageParams("q", query, limit, cursor), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BlueskyClient) GetFollowers(ctx context.Context, actor string, limit int, cursor string) (*models.FollowersResponse, error) {
	var out models.FollowersResponse
	if err := b.get(ctx, BSKY_FOLLOWERS_METHOD, pageParams("actor", actor, limit, cursor), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BlueskyClient) GetFollows(ctx context.Context, actor string, limit int, cursor string) (*models.FollowsResponse, error) {
	var out models.FollowsResponse
	if err := b.get(ctx, BSKY_FOLLOWS_METHOD, pageParams("actor", actor, limit, cursor), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// pageParams builds the query string; the cursor is only sent when set.
func pageParams(key, value string, limit int, cursor string) url.Values {
	params := url.Values{}
	params.Set(key, value)
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return params
}

func (b *BlueskyClient) get(ctx context.Context, method string, params url.Values, out any) error {
	parsedUrl, err := url.Parse(b.BaseURL + "/" + method)
	if err != nil {
		return fmt.Errorf("[BlueskyClient] Failed to parse URL: %w", err)
	}
	parsedUrl.RawQuery = params.Encode()

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("[BlueskyClient] rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedUrl.String(), nil)
	if err != nil {
		return fmt.Errorf("[BlueskyClient] Failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "application/json")

	slog.Debug("[BlueskyClient] GET", slog.String("url", parsedUrl.String()))

	resp, err := b.Client.Do(req)
	if err != nil {
		slog.Warn("[BlueskyClient] Request failed",
			slog.String("method", method),
			slog.String("error", err.Error()))
		return fmt.Errorf("[BlueskyClient] %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MAX_ERROR_BODY))
		statusErr := &StatusError{Method: method, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		slog.Warn("[BlueskyClient] Unexpected status",
			slog.String("method", method),
			slog.Int("status", resp.StatusCode),
			slog.String("body", statusErr.Body))
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Warn("[BlueskyClient] Failed to parse JSON response",
			slog.String("method", method),
			slog.String("error", err.Error()))
		return fmt.Errorf("[BlueskyClient] decode %s: %w", method, err)
	}

	return nil
}
