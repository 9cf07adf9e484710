// sentiric-numbering-service/internal/cache/parse_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber"
)

const (
	DefaultParseCacheTTL = 10 * time.Minute

	keyPrefix = "numbering:parse:"
	scanBatch = 500
)

// ParseCache, çözümlenmiş numaraları Redis'te bölge + ham metin anahtarıyla saklar.
type ParseCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewParseCache(redisClient *redis.Client, ttl time.Duration, log zerolog.Logger) *ParseCache {
	if ttl <= 0 {
		ttl = DefaultParseCacheTTL
	}
	return &ParseCache{redis: redisClient, ttl: ttl, log: log}
}

func key(region, text string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, region, text)
}

// Get returns nil on a cache miss.
func (c *ParseCache) Get(ctx context.Context, region, text string) (*phonenumber.PhoneNumber, error) {
	val, err := c.redis.Get(ctx, key(region, text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		c.log.Error().Err(err).Str("region", region).Msg("Redis okuma hatası")
		return nil, err
	}

	var n phonenumber.PhoneNumber
	if err := json.Unmarshal(val, &n); err != nil {
		c.log.Error().Err(err).Str("region", region).Msg("Cache'teki numara çözülemedi, kayıt siliniyor")
		if delErr := c.Invalidate(ctx, region, text); delErr != nil {
			c.log.Warn().Err(delErr).Msg("Bozuk cache kaydı silinemedi")
		}
		return nil, err
	}

	c.log.Debug().Str("region", region).Str("number", n.String()).Msg("✅ Cache HIT")
	return &n, nil
}

// Set stores n with the configured TTL.
func (c *ParseCache) Set(ctx context.Context, region, text string, n phonenumber.PhoneNumber) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("numara serileştirilemedi: %w", err)
	}

	if err := c.redis.Set(ctx, key(region, text), data, c.ttl).Err(); err != nil {
		c.log.Error().Err(err).Str("region", region).Msg("Redis yazma hatası")
		return err
	}
	return nil
}

// Invalidate removes a single entry.
func (c *ParseCache) Invalidate(ctx context.Context, region, text string) error {
	return c.redis.Del(ctx, key(region, text)).Err()
}

// Flush removes every parse entry, e.g. after the numbering plans changed.
func (c *ParseCache) Flush(ctx context.Context) error {
	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := c.redis.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			n, err := c.redis.Del(ctx, keys...).Result()
			if err != nil {
				return err
			}
			removed += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	c.log.Info().Int64("removed", removed).Msg("🧹 Parse cache temizlendi")
	return nil
}
