package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type ServerConfig struct {
	Env          string // local, dev, prod
	Address      string
	Timeout      time.Duration
	StoreTimeout time.Duration
}

type FeeConfig struct {
	Rate             decimal.Decimal
	RecipientAddress string
}

type StorageConfig struct {
	Backend             string
	NotificationBackend string
	PostgresConn        string
}

type RedisConfig struct {
	Addr                  string
	Password              string
	DB                    int
	Prefix                string
	NotificationRetention int
	TipRateLimitPerMinute int
}

type BrokerConfig struct {
	RabbitMQURL       string
	Exchange          string
	ConfirmationQueue string
}

type Config struct {
	Server             ServerConfig
	Fee                FeeConfig
	Storage            StorageConfig
	Redis              RedisConfig
	Broker             BrokerConfig
	CORSAllowedOrigins []string
}

var envFiles = map[string]string{
	EnvLocal: ".env.local",
	EnvDev:   ".env.dev",
	EnvProd:  ".env.prod",
}

// MustLoad reads the configuration once at startup and panics when it is invalid.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load() (*Config, error) {
	const op = "config.Load"

	// .env файлы необязательны, переменные окружения важнее
	if err := godotenv.Load(envFiles[EnvLocal]); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if file, ok := envFiles[v.GetString("ENV")]; ok && file != envFiles[EnvLocal] {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("FEE_RATE")))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid FEE_RATE: %w", op, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Env:          strings.ToLower(strings.TrimSpace(v.GetString("ENV"))),
			Address:      strings.TrimSpace(v.GetString("ADDRESS")),
			Timeout:      v.GetDuration("TIMEOUT"),
			StoreTimeout: v.GetDuration("STORE_TIMEOUT"),
		},
		Fee: FeeConfig{
			Rate:             rate,
			RecipientAddress: strings.TrimSpace(v.GetString("FEE_RECIPIENT_ADDRESS")),
		},
		Storage: StorageConfig{
			Backend:             strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
			NotificationBackend: strings.ToLower(strings.TrimSpace(v.GetString("NOTIFICATION_BACKEND"))),
			PostgresConn:        strings.TrimSpace(v.GetString("POSTGRES_CONN")),
		},
		Redis: RedisConfig{
			Addr:                  strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password:              v.GetString("REDIS_PASSWORD"),
			DB:                    v.GetInt("REDIS_DB"),
			Prefix:                strings.TrimSpace(v.GetString("REDIS_PREFIX")),
			NotificationRetention: v.GetInt("NOTIFICATION_RETENTION"),
			TipRateLimitPerMinute: v.GetInt("TIP_RATE_LIMIT_PER_MINUTE"),
		},
		Broker: BrokerConfig{
			RabbitMQURL:       strings.TrimSpace(v.GetString("RABBITMQ_URL")),
			Exchange:          strings.TrimSpace(v.GetString("TIP_EVENTS_EXCHANGE")),
			ConfirmationQueue: strings.TrimSpace(v.GetString("CONFIRMATION_QUEUE")),
		},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvLocal)
	v.SetDefault("ADDRESS", ":8080")
	v.SetDefault("TIMEOUT", "5s")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("FEE_RATE", "0.01")
	v.SetDefault("FEE_RECIPIENT_ADDRESS", "0x000000000000000000000000000000000000fee1")
	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("NOTIFICATION_BACKEND", BackendMemory)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "tipjar")
	v.SetDefault("NOTIFICATION_RETENTION", 100)
	v.SetDefault("TIP_RATE_LIMIT_PER_MINUTE", 0)
	v.SetDefault("TIP_EVENTS_EXCHANGE", "tip_events")
	v.SetDefault("CONFIRMATION_QUEUE", "tipjar.confirmations")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func (c *Config) validate() error {
	if _, ok := envFiles[c.Server.Env]; !ok {
		return fmt.Errorf("invalid ENV %q, expected local, dev or prod", c.Server.Env)
	}
	if c.Server.Address == "" {
		return errors.New("ADDRESS is required")
	}
	if c.Server.Timeout <= 0 || c.Server.StoreTimeout <= 0 {
		return errors.New("TIMEOUT and STORE_TIMEOUT must be positive durations")
	}

	if c.Fee.Rate.IsNegative() || c.Fee.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("FEE_RATE must be within [0, 1], got %s", c.Fee.Rate)
	}
	if c.Fee.RecipientAddress == "" {
		return errors.New("FEE_RECIPIENT_ADDRESS is required")
	}

	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q, expected memory or postgres", c.Storage.Backend)
	}
	switch c.Storage.NotificationBackend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("invalid NOTIFICATION_BACKEND %q, expected memory, postgres or redis", c.Storage.NotificationBackend)
	}
	if c.UsesPostgres() && c.Storage.PostgresConn == "" {
		return errors.New("POSTGRES_CONN is required for the postgres backend")
	}
	if c.UsesRedis() && c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required for the redis backend and the tip rate limit")
	}

	if c.Redis.NotificationRetention <= 0 {
		return errors.New("NOTIFICATION_RETENTION must be positive")
	}
	if c.Redis.TipRateLimitPerMinute < 0 {
		return errors.New("TIP_RATE_LIMIT_PER_MINUTE must not be negative")
	}

	if c.Broker.RabbitMQURL != "" && (c.Broker.Exchange == "" || c.Broker.ConfirmationQueue == "") {
		return errors.New("TIP_EVENTS_EXCHANGE and CONFIRMATION_QUEUE are required when RABBITMQ_URL is set")
	}

	return nil
}

func (c *Config) UsesPostgres() bool {
	return c.Storage.Backend == BackendPostgres || c.Storage.NotificationBackend == BackendPostgres
}

func (c *Config) UsesRedis() bool {
	return c.Storage.NotificationBackend == BackendRedis || c.Redis.TipRateLimitPerMinute > 0
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
