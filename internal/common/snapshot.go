package common

import (
	"context"

	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"
)

// LoadSnapshot returns the rows cached under key. On a miss it calls load and
// stores the result for the configured TTL. A failing cache is skipped, it
// never fails the read.
func LoadSnapshot[T any](
	ctx context.Context,
	redisClient xredis.Client,
	key string,
	load func(context.Context) (T, error),
) (T, error) {
	cfg := xcontext.Configs(ctx).Cache
	enabled := cfg.Enable && redisClient != nil

	if enabled {
		var cached T
		err := redisClient.GetObj(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}

		if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot get snapshot %s from redis: %v", key, err)
		}
	}

	result, err := load(ctx)
	if err != nil {
		return result, err
	}

	if enabled {
		if err := redisClient.SetObj(ctx, key, result, cfg.TTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot set snapshot %s to redis: %v", key, err)
		}
	}

	return result, nil
}

// InvalidateSnapshots deletes the cached rows of keys.
func InvalidateSnapshots(ctx context.Context, redisClient xredis.Client, keys ...string) {
	if redisClient == nil || len(keys) == 0 {
		return
	}

	if err := redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate snapshots %v: %v", keys, err)
	}
}
