package redis

import (
	"context"
	"time"

	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

// Cached serves key from the cache, falling back to fetch and storing its result.
// Cache failures never fail the read.
func Cached[T any](ctx context.Context, repo Repository, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	var hit T
	ok, err := repo.GetJSON(ctx, key, &hit)
	if err != nil {
		logger.Ctx(ctx).Warn("[Cached] get", zap.String("key", key), zap.String("error", err.Error()))
	}
	if ok {
		return hit, nil
	}

	fresh, err := fetch()
	if err != nil {
		return fresh, err
	}
	if err := repo.SetJSON(ctx, key, fresh, ttl); err != nil {
		logger.Ctx(ctx).Warn("[Cached] set", zap.String("key", key), zap.String("error", err.Error()))
	}
	return fresh, nil
}

// InvalidateQuietly drops keys and only logs a failure; stale entries expire with their TTL.
func InvalidateQuietly(ctx context.Context, repo Repository, keys ...string) {
	if err := repo.Invalidate(ctx, keys...); err != nil {
		logger.Ctx(ctx).Warn("[Invalidate]", zap.Strings("keys", keys), zap.String("error", err.Error()))
	}
}
