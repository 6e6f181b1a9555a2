// Package rdx holds the optional Redis connection. Redis backs the geocode
// cache and the diagnostics channel; everything using it degrades to a no-op
// when no address is configured or the server is unreachable.
package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"voyago/logger"
)

var Conn *redis.Client

// Init dials Redis if addr is non-empty. A dial failure is logged, not fatal.
func Init(addr string) {
	if addr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warnw("redis unreachable, cache and diagnostics disabled", "addr", addr, "err", err)
		return
	}
	Conn = client
}

// Available reports whether a live Redis connection exists.
func Available() bool {
	return Conn != nil
}

// Close shuts the connection down if one was established.
func Close() {
	if Conn != nil {
		_ = Conn.Close()
	}
}
