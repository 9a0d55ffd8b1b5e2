package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := Key("flan-t5", "  photosynthesis notes\n")
	b := Key("flan-t5", "photosynthesis notes")
	c := Key("gpt-4o", "photosynthesis notes")
	d := Key("flan-t5", "mitosis notes")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.True(t, strings.HasPrefix(a, "flan-t5:"))
	assert.Len(t, strings.TrimPrefix(a, "flan-t5:"), 64)
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, c.SetCards(ctx, "k", []domain.CardDraft{{Question: "q", Answer: "a"}}, time.Hour))

	cards, err := c.GetCards(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, cards)
	assert.NoError(t, c.Close())
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheWithClient(client)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	_, err := c.GetCards(ctx, "k")
	assert.Error(t, err)

	err = c.SetCards(ctx, "k", []domain.CardDraft{{Question: "q", Answer: "a"}}, time.Minute)
	assert.Error(t, err)
}
