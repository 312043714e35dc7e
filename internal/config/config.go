package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "FF_GALLERY_INDEXER"

// BaseConfig holds settings shared by every binary
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m"
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	TaskQueue                          string  `mapstructure:"task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// OpenAIConfig holds the completion and embedding provider configuration
type OpenAIConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	EmbeddingModel string        `mapstructure:"embedding_model"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// FetcherConfig holds page fetching configuration
type FetcherConfig struct {
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodySize    int           `mapstructure:"max_body_size"`
}

// PipelineConfig holds the tuning of the orchestrated pipelines
type PipelineConfig struct {
	PollInterval        time.Duration `mapstructure:"poll_interval"`
	StartupPollAttempts int           `mapstructure:"startup_poll_attempts"`
	ExtractPollAttempts int           `mapstructure:"extract_poll_attempts"`
	MaxLinksPerListing  int           `mapstructure:"max_links_per_listing"`
	DefaultTimezone     string        `mapstructure:"default_timezone"`
	ScrapeConcurrency   int           `mapstructure:"scrape_concurrency"`
}

// MetricsConfig holds the prometheus endpoint configuration. An empty address disables it.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// ProviderRateLimitConfig bounds the request rate to one upstream provider
type ProviderRateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxWait           time.Duration `mapstructure:"max_wait"`
}

// RateLimitConfig holds the shared limiter configuration.
// An empty redis address disables limiting.
type RateLimitConfig struct {
	RedisAddr               string                  `mapstructure:"redis_addr"`
	RedisPassword           string                  `mapstructure:"redis_password"`
	RedisDB                 int                     `mapstructure:"redis_db"`
	KeyPrefix               string                  `mapstructure:"key_prefix"`
	EnableLocalFallback     bool                    `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64                 `mapstructure:"local_fallback_multiplier"`
	Completions             ProviderRateLimitConfig `mapstructure:"completions"`
	Embeddings              ProviderRateLimitConfig `mapstructure:"embeddings"`
}

// WorkerConfig holds in-process worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// PendingPagesSweeperConfig holds configuration for the pending pages sweeper
type PendingPagesSweeperConfig struct {
	Interval         time.Duration `mapstructure:"interval"`
	BatchSize        int           `mapstructure:"batch_size"`
	StaleQueuedAfter time.Duration `mapstructure:"stale_queued_after"`
	Worker           WorkerConfig  `mapstructure:"worker"`
}

// WorkerCoreConfig holds configuration for worker-core
type WorkerCoreConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Temporal   TemporalConfig  `mapstructure:"temporal"`
	NATS       NATSConfig      `mapstructure:"nats"`
	OpenAI     OpenAIConfig    `mapstructure:"openai"`
	Fetcher    FetcherConfig   `mapstructure:"fetcher"`
	Pipeline   PipelineConfig  `mapstructure:"pipeline"`
	Metrics    MetricsConfig   `mapstructure:"metrics"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig            `mapstructure:"database"`
	Temporal     TemporalConfig            `mapstructure:"temporal"`
	PendingPages PendingPagesSweeperConfig `mapstructure:"pending_pages_sweeper"`
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "gallery-indexing")
}

// LoadWorkerCoreConfig loads configuration for worker-core
func LoadWorkerCoreConfig(configFile string, envPath string) (*WorkerCoreConfig, error) {
	v := configureViper("worker-core", configFile, envPath)

	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 20)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 4)
	v.SetDefault("nats.stream_name", "GALLERY_INDEXER")
	v.SetDefault("nats.subject_prefix", "gallery-indexer")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "worker-core")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.embedding_model", "text-embedding-3-small")
	v.SetDefault("openai.timeout", "60s")
	v.SetDefault("fetcher.user_agent", "ff-gallery-indexer/1.0")
	v.SetDefault("fetcher.request_timeout", "30s")
	v.SetDefault("fetcher.max_body_size", 5*1024*1024) // 5MB
	v.SetDefault("pipeline.poll_interval", "5s")
	v.SetDefault("pipeline.startup_poll_attempts", 12)
	v.SetDefault("pipeline.extract_poll_attempts", 60)
	v.SetDefault("pipeline.max_links_per_listing", 100)
	v.SetDefault("pipeline.default_timezone", "UTC")
	v.SetDefault("pipeline.scrape_concurrency", 8)
	v.SetDefault("metrics.address", ":9090")
	v.SetDefault("rate_limit.key_prefix", "ff:gallery-indexer:limiter:")
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 0.5)
	v.SetDefault("rate_limit.completions.requests_per_second", 5)
	v.SetDefault("rate_limit.completions.max_wait", "2m")
	v.SetDefault("rate_limit.embeddings.requests_per_second", 20)
	v.SetDefault("rate_limit.embeddings.max_wait", "2m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg WorkerCoreConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Pipeline.DefaultTimezone); err != nil {
		return nil, fmt.Errorf("invalid pipeline.default_timezone %q: %w", cfg.Pipeline.DefaultTimezone, err)
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setTemporalDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	setTemporalDefaults(v)
	v.SetDefault("pending_pages_sweeper.interval", "10m")
	v.SetDefault("pending_pages_sweeper.batch_size", 50)
	v.SetDefault("pending_pages_sweeper.stale_queued_after", "1h")
	v.SetDefault("pending_pages_sweeper.worker.pool_size", 4)
	v.SetDefault("pending_pages_sweeper.worker.queue_size", 64)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// readConfig reads the config file. A missing file is not an error,
// environment variables are used instead.
func readConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to read config: %w", err)
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// envKeys lists every config key. Viper only maps env vars onto
// struct fields for keys it knows about when no config file exists.
var envKeys = []string{
	"debug",
	"sentry_dsn",
	"environment",
	// Database
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.dbname",
	"database.sslmode",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime",
	"database.conn_max_idle_time",
	// Temporal
	"temporal.host_port",
	"temporal.namespace",
	"temporal.task_queue",
	"temporal.max_concurrent_activity_execution_size",
	"temporal.worker_activities_per_second",
	"temporal.max_concurrent_activity_task_pollers",
	// NATS
	"nats.url",
	"nats.stream_name",
	"nats.subject_prefix",
	"nats.max_reconnects",
	"nats.reconnect_wait",
	"nats.connection_name",
	// Server
	"server.host",
	"server.port",
	"server.read_timeout",
	"server.write_timeout",
	"server.idle_timeout",
	// OpenAI
	"openai.api_key",
	"openai.base_url",
	"openai.model",
	"openai.embedding_model",
	"openai.timeout",
	// Fetcher
	"fetcher.user_agent",
	"fetcher.request_timeout",
	"fetcher.max_body_size",
	// Pipeline
	"pipeline.poll_interval",
	"pipeline.startup_poll_attempts",
	"pipeline.extract_poll_attempts",
	"pipeline.max_links_per_listing",
	"pipeline.default_timezone",
	"pipeline.scrape_concurrency",
	// Metrics
	"metrics.address",
	// Rate limit
	"rate_limit.redis_addr",
	"rate_limit.redis_password",
	"rate_limit.redis_db",
	"rate_limit.key_prefix",
	"rate_limit.enable_local_fallback",
	"rate_limit.local_fallback_multiplier",
	"rate_limit.completions.requests_per_second",
	"rate_limit.completions.burst",
	"rate_limit.completions.max_wait",
	"rate_limit.embeddings.requests_per_second",
	"rate_limit.embeddings.burst",
	"rate_limit.embeddings.max_wait",
	// Sweeper
	"pending_pages_sweeper.interval",
	"pending_pages_sweeper.batch_size",
	"pending_pages_sweeper.stale_queued_after",
	"pending_pages_sweeper.worker.pool_size",
	"pending_pages_sweeper.worker.queue_size",
}

func bindAllEnvVars(v *viper.Viper) {
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env overlays from envPath, later files overriding earlier ones
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot walks up from the working directory until it finds the config directory
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
