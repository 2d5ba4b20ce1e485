package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	scope  string
}

// OpenRedis parses a redis:// URL and pings the server.
func OpenRedis(ctx context.Context, url, scope string) (*Redis, error) {
	if url == "" {
		return nil, errors.New("redis storage: empty url")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "redis storage: parse url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis storage: ping")
	}
	return NewRedis(client, scope), nil
}

func NewRedis(client *redis.Client, scope string) *Redis {
	return &Redis{client: client, scope: scope}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(k string) string {
	return scopedKey(r.scope, k)
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "redis storage: get %s", key)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis storage: set %s", key)
	}
	return nil
}

func scopedKey(scope, key string) string {
	if scope == "" {
		return key
	}
	return scope + ":" + key
}
