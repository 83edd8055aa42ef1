package clients

import "time"

const (
	USER_AGENT = "skypulse/1.0 (+https://github.com/spacesedan/skypulse)"

	BSKY_AUTHOR_FEED_METHOD = "app.bsky.feed.getAuthorFeed"
	BSKY_SEARCH_METHOD      = "app.bsky.feed.searchPosts"
	BSKY_FOLLOWERS_METHOD   = "app.bsky.graph.getFollowers"
	BSKY_FOLLOWS_METHOD     = "app.bsky.graph.getFollows"

	// Largest page size the app.bsky endpoints accept.
	BSKY_MAX_LIMIT = 100

	MAX_ERROR_BODY = 512

	VALKEY_OP_TIMEOUT = 3 * time.Second
)
