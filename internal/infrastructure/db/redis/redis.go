// Package redis holds the gateway's only persistence concern: the session
// slots that survive a process restart.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config captures the settings for the session store connection.
type Config struct {
	Addr string
	DB   int
}

// Connect builds a Redis client and proves connectivity with a ping before
// handing it out. The gateway refuses to start on a dead session store, so a
// restart cannot silently come up unable to read its own sessions.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session store ping: %w", err)
	}
	return client, nil
}
