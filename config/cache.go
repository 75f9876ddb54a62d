package config

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the optional Redis client used to cache dashboard
// snapshots. Address comes from REDIS_ADDR (or REDIS_HOST/REDIS_PORT),
// password from REDIS_PASSWORD, database from REDIS_DB. Returns nil when no
// address is configured or the server cannot be reached; callers treat a nil
// client as caching disabled.
func NewRedisClient() *redis.Client {
	addr := envOrDefault("REDIS_ADDR", "")
	if host := envOrDefault("REDIS_HOST", ""); host != "" {
		addr = host + ":" + envOrDefault("REDIS_PORT", "6379")
	}
	if addr == "" {
		return nil
	}

	dbNum := 0
	if dbStr := envOrDefault("REDIS_DB", ""); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envOrDefault("REDIS_PASSWORD", ""),
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// DashboardCacheTTL is how long a cached snapshot stays fresh.
func DashboardCacheTTL() time.Duration {
	d, err := time.ParseDuration(envOrDefault("DASHBOARD_CACHE_TTL", "30s"))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
