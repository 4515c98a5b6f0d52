package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.MutationRetries)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/postboard")
	t.Setenv("APPVIEW_PORT", "9000")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.TrustProxyHeaders)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "")
		t.Setenv("STORAGE_DRIVER", "memory")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("postgres without database url", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "test-secret")
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "test-secret")
		t.Setenv("STORAGE_DRIVER", "sqlite")

		_, err := Load()
		assert.ErrorContains(t, err, "STORAGE_DRIVER")
	})
}
