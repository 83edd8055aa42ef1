package clients

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/spacesedan/skypulse/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValkeySeenSet needs a running server, e.g.
// VALKEY_INIT_ADDRESS=localhost:6379 go test ./internal/clients -run Valkey
func TestValkeySeenSet(t *testing.T) {
	addr := os.Getenv("VALKEY_INIT_ADDRESS")
	if addr == "" {
		t.Skip("VALKEY_INIT_ADDRESS not set")
	}

	ctx := context.Background()
	vc, err := NewValkeyClient(ctx, config.ValkeyConfig{Address: addr, Password: os.Getenv("VALKEY_PASSWORD")})
	require.NoError(t, err)
	defer vc.Close()

	vc.Key = fmt.Sprintf("test:seen_posts:%d", time.Now().UnixNano())
	defer vc.Client.Do(ctx, vc.Client.B().Del().Key(vc.Key).Build())

	uri := "at://did:plc:abc/app.bsky.feed.post/1"
	seen, err := vc.IsSeen(ctx, uri)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, vc.MarkSeen(ctx, uri))

	seen, err = vc.IsSeen(ctx, uri)
	require.NoError(t, err)
	assert.True(t, seen)

	ttl, err := vc.Client.Do(ctx, vc.Client.B().Ttl().Key(vc.Key).Build()).AsInt64()
	require.NoError(t, err)
	assert.Greater(t, ttl, int64(0))
	assert.LessOrEqual(t, ttl, int64(VALKEY_SEEN_TTL.Seconds()))
}

func TestNewValkeyClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewValkeyClient(ctx, config.ValkeyConfig{Address: "127.0.0.1:1"})
	assert.Error(t, err)
}
