package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"BIZ_APP_NAME":                  os.Getenv("BIZ_APP_NAME"),
		"BIZ_APP_ENV":                   os.Getenv("BIZ_APP_ENV"),
		"BIZ_APP_PORT":                  os.Getenv("BIZ_APP_PORT"),
		"BIZ_DATABASE_HOST":             os.Getenv("BIZ_DATABASE_HOST"),
		"BIZ_DATABASE_PORT":             os.Getenv("BIZ_DATABASE_PORT"),
		"BIZ_DATABASE_USER":             os.Getenv("BIZ_DATABASE_USER"),
		"BIZ_DATABASE_PASSWORD":         os.Getenv("BIZ_DATABASE_PASSWORD"),
		"BIZ_DATABASE_DBNAME":           os.Getenv("BIZ_DATABASE_DBNAME"),
		"BIZ_DATABASE_SSLMODE":          os.Getenv("BIZ_DATABASE_SSLMODE"),
		"BIZ_DATABASE_MAX_OPEN_CONNS":   os.Getenv("BIZ_DATABASE_MAX_OPEN_CONNS"),
		"BIZ_DATABASE_MAX_IDLE_CONNS":   os.Getenv("BIZ_DATABASE_MAX_IDLE_CONNS"),
		"BIZ_ORDER_TAX_RATE":            os.Getenv("BIZ_ORDER_TAX_RATE"),
		"BIZ_ORDER_ALLOW_OVERPAYMENT":   os.Getenv("BIZ_ORDER_ALLOW_OVERPAYMENT"),
		"BIZ_ORDER_MAX_RETRIES":         os.Getenv("BIZ_ORDER_MAX_RETRIES"),
		"BIZ_CACHE_IDEMPOTENCY_BACKEND": os.Getenv("BIZ_CACHE_IDEMPOTENCY_BACKEND"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "bizsuite-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "bizsuite", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "0.15", cfg.Order.TaxRate)
		assert.Equal(t, 3, cfg.Order.MaxRetries)
		assert.False(t, cfg.Order.AllowOverpayment)
		assert.Equal(t, "redis", cfg.Cache.IdempotencyBackend)
	})

	t.Run("loads values from environment variables with BIZ prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZ_APP_NAME", "test-app")
		os.Setenv("BIZ_APP_PORT", "9000")
		os.Setenv("BIZ_DATABASE_HOST", "testdb.local")
		os.Setenv("BIZ_DATABASE_PORT", "5433")
		os.Setenv("BIZ_ORDER_TAX_RATE", "0.08")
		os.Setenv("BIZ_ORDER_ALLOW_OVERPAYMENT", "true")
		os.Setenv("BIZ_CACHE_IDEMPOTENCY_BACKEND", "memory")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "0.08", cfg.Order.TaxRate)
		assert.True(t, cfg.Order.AllowOverpayment)
		assert.Equal(t, "memory", cfg.Cache.IdempotencyBackend)
	})

	t.Run("rejects invalid tax rate", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZ_ORDER_TAX_RATE", "fifteen percent")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects negative tax rate", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZ_ORDER_TAX_RATE", "-0.1")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects unknown idempotency backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZ_CACHE_IDEMPOTENCY_BACKEND", "memcached")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("requires password and ssl in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("BIZ_APP_ENV", "production")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "bizsuite",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
