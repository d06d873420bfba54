package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"ENV", "ADDRESS", "TIMEOUT", "STORE_TIMEOUT", "FEE_RATE", "FEE_RECIPIENT_ADDRESS",
	"STORAGE_BACKEND", "NOTIFICATION_BACKEND", "POSTGRES_CONN", "REDIS_ADDR", "REDIS_PASSWORD",
	"REDIS_DB", "REDIS_PREFIX", "NOTIFICATION_RETENTION", "TIP_RATE_LIMIT_PER_MINUTE",
	"RABBITMQ_URL", "TIP_EVENTS_EXCHANGE", "CONFIRMATION_QUEUE", "CORS_ALLOWED_ORIGINS",
}

// clearEnv сбрасывает окружение, пустые значения viper не учитывает
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, EnvLocal, cfg.Server.Env)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "0.01", cfg.Fee.Rate.String())
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, BackendMemory, cfg.Storage.NotificationBackend)
	assert.Equal(t, 100, cfg.Redis.NotificationRetention)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.UsesPostgres())
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("FEE_RATE", "0.025")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("POSTGRES_CONN", "postgres://tipjar@localhost/tipjar")
	t.Setenv("NOTIFICATION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TIP_RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, EnvProd, cfg.Server.Env)
	assert.Equal(t, "0.025", cfg.Fee.Rate.String())
	assert.True(t, cfg.UsesPostgres())
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, 30, cfg.Redis.TipRateLimitPerMinute)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "fee rate is not a number",
			env:  map[string]string{"FEE_RATE": "one percent"},
			want: "FEE_RATE",
		},
		{
			name: "fee rate above one",
			env:  map[string]string{"FEE_RATE": "1.5"},
			want: "FEE_RATE",
		},
		{
			name: "unknown env",
			env:  map[string]string{"ENV": "staging"},
			want: "ENV",
		},
		{
			name: "postgres without connection string",
			env:  map[string]string{"STORAGE_BACKEND": "postgres"},
			want: "POSTGRES_CONN",
		},
		{
			name: "redis notifications without address",
			env:  map[string]string{"NOTIFICATION_BACKEND": "redis"},
			want: "REDIS_ADDR",
		},
		{
			name: "rate limit without redis",
			env:  map[string]string{"TIP_RATE_LIMIT_PER_MINUTE": "10"},
			want: "REDIS_ADDR",
		},
		{
			name: "unsupported storage backend",
			env:  map[string]string{"STORAGE_BACKEND": "redis"},
			want: "STORAGE_BACKEND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
