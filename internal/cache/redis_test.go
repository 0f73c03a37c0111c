package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-quiz/internal/question"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

func newCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return New(client, ttl, nil), mr
}

func sampleQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:    "qz1",
		Title: "Geography",
		Questions: []question.Question{
			question.NewMatching("m", "Capitals", "Connect").
				Left("fr", "France").Left("de", "Germany").
				Right("paris", "Paris").Right("berlin", "Berlin").
				Match("fr", "paris").Match("de", "berlin").Build(),
		},
	}
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, _ := newCache(t, 0)
	ctx := context.Background()

	_, ok, err := c.GetQuiz(ctx, "qz1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetQuiz(ctx, sampleQuiz()))
	got, ok, err := c.GetQuiz(ctx, "qz1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleQuiz(), got)

	require.NoError(t, c.Invalidate(ctx, "qz1"))
	_, ok, _ = c.GetQuiz(ctx, "qz1")
	assert.False(t, ok)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.SetQuiz(ctx, sampleQuiz()))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.GetQuiz(ctx, "qz1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newCache(t, 0)
	require.NoError(t, mr.Set(key("bad"), "{not json"))

	_, ok, err := c.GetQuiz(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists(key("bad")))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
