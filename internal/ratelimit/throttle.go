package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
)

const (
	DEFAULT_KEY_PREFIX            = "ff:gallery-indexer:limiter:"
	DEFAULT_MAX_WAIT              = 5 * time.Minute
	DEFAULT_HEALTH_CHECK_INTERVAL = 10 * time.Second
	DEFAULT_FALLBACK_MULTIPLIER   = 0.5

	// minRetryPause is used when redis denies a token without a retry hint
	minRetryPause = 100 * time.Millisecond
)

var (
	// ErrClosed is returned by Wait after Close
	ErrClosed = errors.New("throttle is closed")

	// ErrUnknownProvider is returned by Wait for a provider without a configured limit
	ErrUnknownProvider = errors.New("provider not configured")
)

// ProviderLimit bounds the request rate to one provider
type ProviderLimit struct {
	RequestsPerSecond int
	Burst             int
	// MaxWait bounds how long a caller queues for a token
	MaxWait time.Duration
}

// Config configures a Throttle
type Config struct {
	KeyPrefix               string
	EnableLocalFallback     bool
	LocalFallbackMultiplier float64
	HealthCheckInterval     time.Duration
	Providers               map[string]ProviderLimit
}

// Throttle paces requests to rate limited providers across every worker process.
// Tokens come from redis; when redis is unreachable and the local fallback is
// enabled, each process uses a reduced in-memory limit instead.
//
//go:generate mockgen -source=throttle.go -destination=../mocks/throttle.go -package=mocks -mock_names=Throttle=MockThrottle
type Throttle interface {
	// Wait blocks until a token for provider is acquired, ctx is done or the provider's MaxWait elapses
	Wait(ctx context.Context, provider string) error

	// Close stops the health check and closes the redis connection
	Close() error
}

type providerLimiter struct {
	name  string
	limit ProviderLimit
	// prefilter paces calls into redis at the global rate
	prefilter *rate.Limiter
	// local replaces redis while it is unreachable
	local *rate.Limiter
}

type throttle struct {
	config         Config
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	limiters       map[string]*providerLimiter
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	stopCh         chan struct{}
	monitorDone    chan struct{}
}

// NewThrottle creates a throttle and starts its redis health check
func NewThrottle(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Throttle, error) {
	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	available := true
	if err := rc.Ping(pingCtx).Err(); err != nil {
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and local fallback disabled: %w", err)
		}
		available = false
		logger.Warn("Redis unavailable, using local rate limits", zap.Error(err))
	}

	limiters := make(map[string]*providerLimiter, len(cfg.Providers))
	for name, limit := range cfg.Providers {
		localRate := max(float64(limit.RequestsPerSecond)*cfg.LocalFallbackMultiplier, 1.0)
		limiters[name] = &providerLimiter{
			name:      name,
			limit:     limit,
			prefilter: rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.Burst),
			local:     rate.NewLimiter(rate.Limit(localRate), limit.Burst),
		}
	}

	t := &throttle{
		config:      cfg,
		redis:       rc,
		distributed: rc.NewRateLimiter(),
		clock:       clock,
		limiters:    limiters,
		stopCh:      make(chan struct{}),
		monitorDone: make(chan struct{}),
	}
	t.redisAvailable.Store(available)

	go t.monitorRedis()

	logger.Info("Rate limit throttle initialized",
		zap.Int("providers", len(cfg.Providers)),
		zap.Bool("redis_available", available),
		zap.Bool("local_fallback", cfg.EnableLocalFallback))

	return t, nil
}

func (t *throttle) Wait(ctx context.Context, provider string) error {
	if t.closed.Load() {
		return ErrClosed
	}

	limiter, ok := t.limiters[provider]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	waitCtx, cancel := context.WithTimeout(ctx, limiter.limit.MaxWait)
	defer cancel()

	for {
		if err := waitCtx.Err(); err != nil {
			return err
		}

		if t.redisAvailable.Load() {
			allowed, retryAfter, err := t.allowDistributed(waitCtx, limiter)
			switch {
			case err != nil && waitCtx.Err() != nil:
				return waitCtx.Err()
			case err != nil:
				t.redisAvailable.Store(false)
				if !t.config.EnableLocalFallback {
					return fmt.Errorf("redis rate limiter unavailable: %w", err)
				}
				logger.Warn("Redis rate limiter failed, using local rate limits",
					zap.String("provider", provider),
					zap.Error(err))
			case allowed:
				return nil
			default:
				if err := t.sleep(waitCtx, jitter(retryAfter)); err != nil {
					return err
				}
				continue
			}
		}

		if t.config.EnableLocalFallback {
			return limiter.local.Wait(waitCtx)
		}

		// no fallback: wait for the health check to bring redis back
		if err := t.sleep(waitCtx, minRetryPause); err != nil {
			return err
		}
	}
}

// allowDistributed asks redis for a token and reports the retry hint when denied
func (t *throttle) allowDistributed(ctx context.Context, limiter *providerLimiter) (bool, time.Duration, error) {
	if err := limiter.prefilter.Wait(ctx); err != nil {
		return false, 0, err
	}

	limit := redis_rate.Limit{
		Rate:   limiter.limit.RequestsPerSecond,
		Burst:  limiter.limit.Burst,
		Period: time.Second,
	}
	res, err := t.distributed.Allow(ctx, t.config.KeyPrefix+limiter.name, limit)
	if err != nil {
		return false, 0, err
	}
	if res.Allowed == 0 {
		logger.Debug("Rate limit token unavailable",
			zap.String("provider", limiter.name),
			zap.Duration("retry_after", res.RetryAfter))
		return false, res.RetryAfter, nil
	}

	return true, 0, nil
}

func (t *throttle) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.clock.After(d):
		return nil
	}
}

// jitter spreads retries over 50-150% of the hint
func jitter(retryAfter time.Duration) time.Duration {
	if retryAfter <= 0 {
		return minRetryPause
	}
	return time.Duration(float64(retryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
}

func (t *throttle) monitorRedis() {
	defer close(t.monitorDone)

	for {
		select {
		case <-t.stopCh:
			return
		case <-t.clock.After(t.config.HealthCheckInterval):
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := t.redis.Ping(ctx).Err()
		cancel()

		wasAvailable := t.redisAvailable.Swap(err == nil)
		switch {
		case err == nil && !wasAvailable:
			logger.Info("Redis connection restored")
		case err != nil && wasAvailable:
			logger.Warn("Redis health check failed", zap.Error(err))
		}
	}
}

func (t *throttle) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		close(t.stopCh)
		<-t.monitorDone

		if closeErr := t.redis.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close redis: %w", closeErr)
		}
		logger.Info("Rate limit throttle closed")
	})
	return err
}

// Do waits for a provider token and then calls fn. A nil throttle calls fn directly.
func Do[T any](ctx context.Context, t Throttle, provider string, fn func(ctx context.Context) (T, error)) (T, error) {
	if t == nil {
		return fn(ctx)
	}
	if err := t.Wait(ctx, provider); err != nil {
		var zero T
		return zero, fmt.Errorf("rate limit %s: %w", provider, err)
	}
	return fn(ctx)
}

func applyDefaults(cfg *Config) error {
	if len(cfg.Providers) == 0 {
		return errors.New("at least one provider must be configured")
	}

	providers := make(map[string]ProviderLimit, len(cfg.Providers))
	for name, limit := range cfg.Providers {
		if limit.RequestsPerSecond <= 0 {
			return fmt.Errorf("provider %s: requests_per_second must be positive", name)
		}
		if limit.Burst <= 0 {
			limit.Burst = limit.RequestsPerSecond
		}
		if limit.MaxWait <= 0 {
			limit.MaxWait = DEFAULT_MAX_WAIT
		}
		providers[name] = limit
	}
	cfg.Providers = providers

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DEFAULT_KEY_PREFIX
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = DEFAULT_FALLBACK_MULTIPLIER
	}
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = DEFAULT_HEALTH_CHECK_INTERVAL
	}

	return nil
}
