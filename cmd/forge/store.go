package main

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/metrics"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/forge"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-progression/internal/redis"
	"github.com/KirkDiggler/rpg-progression/internal/repositories/items"
)

// Item stores
const (
	storeNone   = "none"
	storeMemory = "memory"
	storeRedis  = "redis"
)

const pingTimeout = 5 * time.Second

// openStore connects to the configured redis, or to a throwaway in-process
// one for the memory store
func openStore(ctx context.Context, store string) (redis.Client, func(), error) {
	switch store {
	case storeMemory:
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to start in-memory redis")
		}

		client, err := redis.NewClient(mr.Addr(), nil)
		if err != nil {
			mr.Close()
			return nil, nil, errors.Wrap(err, "failed to create redis client")
		}

		return client, func() {
			_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
			mr.Close()
		}, nil

	case storeRedis:
		client, err := redis.NewClient(cfg.Redis.Addr, &redis.Options{
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			UseTLS:   cfg.Redis.UseTLS,
		})
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
			return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
		}

		return client, func() {
			_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
		}, nil

	default:
		return nil, nil, errors.InvalidArgumentf("unknown store %q", store)
	}
}

// newService wires the forge service onto client
func newService(client redis.Client, random rng.Source, reg prometheus.Registerer, ids idgen.Generator) (forge.Service, error) {
	repo, err := items.NewRedis(&items.RedisConfig{Client: client})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item repository")
	}

	if cfg.Cache.Size > 0 {
		repo, err = items.NewCached(repo, cfg.Cache.Size, cfg.Cache.TTL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create item cache")
		}
	}

	return forge.NewOrchestrator(&forge.Config{
		ItemRepo:    repo,
		IDGenerator: ids,
		Random:      random,
		Policies:    policies,
		Curve:       policies.Curve,
		Metrics:     metrics.New(reg),
		MaxGrantXP:  cfg.MaxGrantXP,
	})
}
