package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

// TokenCache remembers which user an auth token belongs to, so resolving the
// caller of a request does not hit the database every time.
type TokenCache interface {
	Get(ctx context.Context, token string) (uint, error)

	Set(ctx context.Context, token string, userID uint) error

	Delete(ctx context.Context, token string) error
}

var ErrCacheMiss = errors.New("token cache miss")

const tokenKeyPrefix = "kanban:auth:token:"

type RedisTokenCache struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRedisTokenCache(client rueidis.Client, ttl time.Duration) *RedisTokenCache {
	return &RedisTokenCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisTokenCache) Get(ctx context.Context, token string) (uint, error) {
	cmd := r.client.B().Get().Key(tokenKeyPrefix + token).Build()
	raw, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, ErrCacheMiss
		}
		return 0, err
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrCacheMiss
	}
	return uint(id), nil
}

func (r *RedisTokenCache) Set(ctx context.Context, token string, userID uint) error {
	cmd := r.client.B().Set().
		Key(tokenKeyPrefix + token).
		Value(strconv.FormatUint(uint64(userID), 10)).
		ExSeconds(int64(r.ttl / time.Second)).
		Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisTokenCache) Delete(ctx context.Context, token string) error {
	cmd := r.client.B().Del().Key(tokenKeyPrefix + token).Build()
	return r.client.Do(ctx, cmd).Error()
}

// NopTokenCache is used when no Redis is configured; every lookup misses.
type NopTokenCache struct{}

func (NopTokenCache) Get(context.Context, string) (uint, error) { return 0, ErrCacheMiss }

func (NopTokenCache) Set(context.Context, string, uint) error { return nil }

func (NopTokenCache) Delete(context.Context, string) error { return nil }
