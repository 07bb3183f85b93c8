// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// preview.go keeps fetched link-preview metadata in Valkey so repeated
// lookups of the same product page do not hit the remote site again.
// Only third-party page metadata is stored here; generated articles and
// images are never cached.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// previewKeyPrefix is the Valkey key prefix for cached previews.
	previewKeyPrefix = "preview:"

	// DefaultPreviewTTL is how long a fetched preview stays cached.
	DefaultPreviewTTL = 6 * time.Hour
)

// PreviewCache stores serialized previews keyed by page URL.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewCache creates a preview cache backed by the given Valkey client.
func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// Get returns the cached payload for pageURL. Errors count as a miss.
func (pc *PreviewCache) Get(ctx context.Context, pageURL string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, PreviewKey(pageURL)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("preview cache get error", "url", pageURL, "error", err)
		return nil, false
	}
	slog.Debug("preview cache hit", "url", pageURL)
	return val, true
}

// Set stores payload for pageURL with the configured TTL.
func (pc *PreviewCache) Set(ctx context.Context, pageURL string, payload []byte) {
	if err := pc.client.Set(ctx, PreviewKey(pageURL), payload, pc.ttl).Err(); err != nil {
		slog.Warn("preview cache set error", "url", pageURL, "error", err)
	}
}

// Invalidate removes the cached preview for pageURL.
func (pc *PreviewCache) Invalidate(ctx context.Context, pageURL string) {
	if err := pc.client.Del(ctx, PreviewKey(pageURL)).Err(); err != nil {
		slog.Warn("preview cache invalidate error", "url", pageURL, "error", err)
	}
}

// InvalidateAll removes every cached preview by scanning for the prefix.
func (pc *PreviewCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, previewKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("preview cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("preview cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("preview cache cleared", "deleted", deleted)
	}
}

// PreviewKey returns the Valkey key for pageURL. URLs are hashed to keep
// keys short and free of separators.
func PreviewKey(pageURL string) string {
	sum := sha256.Sum256([]byte(pageURL))
	return previewKeyPrefix + hex.EncodeToString(sum[:16])
}
