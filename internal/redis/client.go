// Package redis wraps the go-redis client the item store runs on
package redis

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Options tunes the connection pool. The zero value uses go-redis defaults.
type Options struct {
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

func (o *Options) toRedis(addr string) *redis.Options {
	ro := &redis.Options{Addr: addr}
	if o == nil {
		return ro
	}

	ro.Password = o.Password
	ro.DB = o.DB
	ro.PoolSize = o.PoolSize
	ro.MinIdleConns = o.MinIdleConns
	ro.ConnMaxIdleTime = o.ConnMaxIdleTime
	ro.MaxRetries = o.MaxRetries
	if o.UseTLS {
		ro.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return ro
}

// NewClient returns a client for the single instance at addr.
// go-redis dials lazily, so an unreachable addr surfaces on first use.
func NewClient(addr string, opts *Options) (Client, error) {
	if addr == "" {
		return nil, errors.InvalidArgument("redis address is required")
	}
	if opts != nil && (opts.DB < 0 || opts.PoolSize < 0 || opts.MinIdleConns < 0) {
		return nil, errors.InvalidArgumentf("redis pool options must not be negative: db=%d pool=%d idle=%d",
			opts.DB, opts.PoolSize, opts.MinIdleConns)
	}

	return redis.NewClient(opts.toRedis(addr)), nil
}
