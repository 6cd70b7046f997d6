package redis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// Connect returns a client after verifying the server answers PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ConnectOptional returns nil when addr is empty or the server is unreachable,
// which disables caching rather than failing the process.
func ConnectOptional(ctx context.Context, addr, password string, db int, logger *slog.Logger) (*redis.Client, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(addr) == "" {
		logger.Info("REDIS_ADDR not set, user cache disabled")
		return nil, func() {}
	}
	rdb, err := Connect(ctx, addr, password, db)
	if err != nil {
		logger.Warn("redis connection failed, user cache disabled", slog.String("address", addr), slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("redis connection established", slog.String("address", addr))
	return rdb, func() { _ = rdb.Close() }
}
