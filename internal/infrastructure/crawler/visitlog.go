package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisVisitLog помнит недавно обойденные районы, чтобы повторный запуск
// не ходил к источнику, пока свежая выборка ещё валидна.
type RedisVisitLog struct {
	client *redis.Client
}

func NewRedisVisitLog(client *redis.Client) *RedisVisitLog {
	return &RedisVisitLog{client: client}
}

func visitKey(city, district string) string {
	return fmt.Sprintf("crawl:%s:%s", city, district)
}

func (l *RedisVisitLog) Visited(ctx context.Context, city, district string) (bool, error) {
	n, err := l.client.Exists(ctx, visitKey(city, district)).Result()
	if err != nil {
		return false, fmt.Errorf("redis.Exists: %w", err)
	}

	return n > 0, nil
}

func (l *RedisVisitLog) MarkVisited(ctx context.Context, city, district string, ttl time.Duration) error {
	if err := l.client.Set(ctx, visitKey(city, district), time.Now().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}
