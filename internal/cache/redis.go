// Package cache keeps authored quizzes in Redis so submissions do not hit the
// database for every scoring request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

const keyPrefix = "quiz:quiz:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// New wraps client. A zero ttl keeps entries until they are invalidated.
func New(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func key(id string) string { return keyPrefix + id }

func (c *RedisCache) GetQuiz(ctx context.Context, id string) (quiz.Quiz, bool, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return quiz.Quiz{}, false, nil
	}
	if err != nil {
		return quiz.Quiz{}, false, fmt.Errorf("cache get %s: %w", id, err)
	}
	var q quiz.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		// a stale shape is a miss; drop it so the next write replaces it
		c.log.Warn("dropping undecodable cached quiz", zap.String("quiz_id", id), zap.Error(err))
		_ = c.client.Del(ctx, key(id)).Err()
		return quiz.Quiz{}, false, nil
	}
	return q, true, nil
}

func (c *RedisCache) SetQuiz(ctx context.Context, q quiz.Quiz) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key(q.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", q.ID, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, key(id)).Err()
}

// HealthCheck verifies the server is reachable.
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
