package adapter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the slice of a Redis connection used by the distributed throttle
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient,RedisRateLimiter=MockRedisRateLimiter
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) *redis.StatusCmd

	// NewRateLimiter returns a GCRA limiter sharing this connection
	NewRateLimiter() RedisRateLimiter

	// Close closes the connection
	Close() error
}

// RedisRateLimiter is a distributed GCRA limiter keyed by string
type RedisRateLimiter interface {
	// Allow consumes one token for key if limit permits it
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type realRedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to the Redis server at addr
func NewRedisClient(addr string, password string, db int) RedisClient {
	return &realRedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:       addr,
			Password:   password,
			DB:         db,
			ClientName: "ff-gallery-indexer",
		}),
	}
}

func (r *realRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

func (r *realRedisClient) NewRateLimiter() RedisRateLimiter {
	return redis_rate.NewLimiter(r.client)
}

func (r *realRedisClient) Close() error {
	return r.client.Close()
}
