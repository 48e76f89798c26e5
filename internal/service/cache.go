package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// cachedJSON is a read-through JSON cache over redis. A nil client disables
// caching entirely; cache failures fall back to the loader.
func cachedJSON[T any](
	ctx context.Context,
	client *redis.Client,
	logger zerolog.Logger,
	key string,
	ttl time.Duration,
	load func(context.Context) (T, error),
) (T, error) {
	var value T

	if client != nil {
		raw, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if err := json.Unmarshal(raw, &value); err == nil {
				return value, nil
			}
			logger.Warn().Str("key", key).Msg("discarding malformed cache entry")
		} else if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if client != nil {
		if raw, err := json.Marshal(value); err == nil {
			if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		}
	}

	return value, nil
}
