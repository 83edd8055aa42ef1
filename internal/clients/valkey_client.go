package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/skypulse/config"
	"github.com/valkey-io/valkey-go"
)

const (
	VALKEY_SEEN_POSTS_KEY = "bsky:seen_posts"
	VALKEY_SEEN_TTL       = 24 * time.Hour
)

// ValkeyClient remembers which post URIs were already collected so repeated
// runs within a day can skip them.
type ValkeyClient struct {
	Client valkey.Client
	Key    string
}

func NewValkeyClient(ctx context.Context, cfg config.ValkeyConfig) (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, VALKEY_OP_TIMEOUT)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", cfg.Address))
	return &ValkeyClient{Client: client, Key: VALKEY_SEEN_POSTS_KEY}, nil
}

func (vc *ValkeyClient) IsSeen(ctx context.Context, uri string) (bool, error) {
	ok, err := vc.Client.Do(ctx, vc.Client.B().Sismember().Key(vc.Key).Member(uri).Build()).AsBool()
	if err != nil {
		return false, fmt.Errorf("[ValkeyClient] sismember: %w", err)
	}
	return ok, nil
}

// MarkSeen adds uri to the set and refreshes the set's expiry.
func (vc *ValkeyClient) MarkSeen(ctx context.Context, uri string) error {
	completed := []valkey.Completed{
		vc.Client.B().Sadd().Key(vc.Key).Member(uri).Build(),
		vc.Client.B().Expire().Key(vc.Key).Seconds(int64(VALKEY_SEEN_TTL.Seconds())).Build(),
	}

	for _, res := range vc.Client.DoMulti(ctx, completed...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyClient] mark seen: %w", err)
		}
	}
	return nil
}

func (vc *ValkeyClient) Close() {
	if vc != nil && vc.Client != nil {
		vc.Client.Close()
	}
}
