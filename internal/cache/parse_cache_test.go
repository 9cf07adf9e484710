package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber"
)

func setupTestCache(t *testing.T) (*ParseCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return NewParseCache(client, time.Minute, zerolog.Nop()), mr
}

var istanbul = phonenumber.PhoneNumber{
	Code:     phonenumber.CountryCode{Value: 90, Source: phonenumber.SourceDefault},
	National: phonenumber.NationalNumber{Value: 2121234567},
}

func TestParseCache_Miss(t *testing.T) {
	c, _ := setupTestCache(t)

	n, err := c.Get(context.Background(), "TR", "0212 123 45 67")
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestParseCache_SetGet(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "TR", "0212 123 45 67", istanbul))
	assert.True(t, mr.Exists("numbering:parse:TR:0212 123 45 67"))
	assert.Equal(t, time.Minute, mr.TTL("numbering:parse:TR:0212 123 45 67"))

	n, err := c.Get(ctx, "TR", "0212 123 45 67")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, istanbul, *n)

	// Same text under another default region is a different entry.
	n, err = c.Get(ctx, "NZ", "0212 123 45 67")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestParseCache_Expiry(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "TR", "0212 123 45 67", istanbul))
	mr.FastForward(2 * time.Minute)

	n, err := c.Get(ctx, "TR", "0212 123 45 67")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestParseCache_CorruptEntry(t *testing.T) {
	c, mr := setupTestCache(t)
	require.NoError(t, mr.Set("numbering:parse:TR:bozuk", "{not json"))

	_, err := c.Get(context.Background(), "TR", "bozuk")
	assert.Error(t, err)
	assert.False(t, mr.Exists("numbering:parse:TR:bozuk"))

	n, err := c.Get(context.Background(), "TR", "bozuk")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestParseCache_InvalidateAndFlush(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "TR", "a", istanbul))
	require.NoError(t, c.Set(ctx, "TR", "b", istanbul))
	require.NoError(t, c.Set(ctx, "NZ", "c", istanbul))
	require.NoError(t, mr.Set("user:phone:905321234567", "keep"))

	require.NoError(t, c.Invalidate(ctx, "TR", "a"))
	assert.False(t, mr.Exists("numbering:parse:TR:a"))

	require.NoError(t, c.Flush(ctx))
	assert.False(t, mr.Exists("numbering:parse:TR:b"))
	assert.False(t, mr.Exists("numbering:parse:NZ:c"))
	assert.True(t, mr.Exists("user:phone:905321234567"))
}

func TestParseCache_RedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	c := NewParseCache(client, time.Minute, zerolog.Nop())

	_, err = c.Get(context.Background(), "TR", "0212 123 45 67")
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "TR", "0212 123 45 67", istanbul))
}

func TestNewParseCacheDefaultTTL(t *testing.T) {
	c := NewParseCache(nil, 0, zerolog.Nop())
	assert.Equal(t, DefaultParseCacheTTL, c.ttl)
}
