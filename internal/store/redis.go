package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/amixedcolor/aws-identity-gift/internal/archive"
)

// RedisMedium is an archive.Medium over a Redis keyspace, for sharing one
// archive between machines.
type RedisMedium struct {
	client *redis.Client
	prefix string
}

var _ archive.Medium = (*RedisMedium)(nil)

// NewRedisMedium creates a RedisMedium from a Redis URL. Keys are stored
// under "identitygift:".
func NewRedisMedium(redisURL string) (*RedisMedium, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisMedium{client: redis.NewClient(opts), prefix: "identitygift:"}, nil
}

func (m *RedisMedium) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

func (m *RedisMedium) Close() error {
	return m.client.Close()
}

func (m *RedisMedium) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := m.client.Get(ctx, m.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return val, true, nil
}

func (m *RedisMedium) Set(ctx context.Context, key, value string) error {
	err := m.client.Set(ctx, m.prefix+key, value, 0).Err()
	if err != nil {
		// maxmemory with a noeviction policy rejects writes with OOM.
		if strings.HasPrefix(err.Error(), "OOM") {
			return fmt.Errorf("set %q: %w: %w", key, archive.ErrQuotaExceeded, err)
		}
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (m *RedisMedium) Remove(ctx context.Context, key string) error {
	if err := m.client.Del(ctx, m.prefix+key).Err(); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
