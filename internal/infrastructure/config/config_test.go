package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearSyncEnv unsets every SYNC_ variable for the duration of the test
func clearSyncEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "SYNC_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearSyncEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "addresssync", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "addresssync", cfg.Database.DBName)
		assert.Equal(t, int64(5), cfg.Sync.BillingLocationTypeID)
		assert.Equal(t, int64(1), cfg.Sync.ShippingLocationTypeID)
		assert.False(t, cfg.Sync.DefaultEnabled)
		assert.Equal(t, 30*time.Second, cfg.Sync.SettingsCacheTTL)
		assert.True(t, cfg.Event.RelayEnabled)
		assert.Equal(t, "addresssync.events", cfg.Event.RelayChannel)
		assert.True(t, cfg.Event.IdempotencyEnabled)
		assert.Equal(t, "memory", cfg.Event.IdempotencyBackend)
		assert.Equal(t, time.Hour, cfg.Event.IdempotencyTTL)
		assert.Equal(t, 10*time.Second, cfg.CRM.Timeout)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.False(t, cfg.Telemetry.Enabled)
		assert.True(t, cfg.Telemetry.Insecure)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, 60*time.Second, cfg.Telemetry.MetricsInterval)
	})

	t.Run("loads values from environment variables with SYNC prefix", func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_APP_PORT", "9000")
		t.Setenv("SYNC_DATABASE_HOST", "db.internal")
		t.Setenv("SYNC_CRM_BASE_URL", "https://crm.example.org/civicrm/ajax/rest")
		t.Setenv("SYNC_CRM_API_KEY", "user-key")
		t.Setenv("SYNC_STORE_BASE_URL", "https://shop.example.org/wp-json")
		t.Setenv("SYNC_SYNC_BILLING_LOCATION_TYPE_ID", "3")
		t.Setenv("SYNC_SYNC_SHIPPING_LOCATION_TYPE_ID", "4")
		t.Setenv("SYNC_SYNC_DEFAULT_ENABLED", "true")
		t.Setenv("SYNC_EVENT_IDEMPOTENCY_BACKEND", "redis")
		t.Setenv("SYNC_HTTP_WEBHOOK_SECRET", "s3cret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "https://crm.example.org/civicrm/ajax/rest", cfg.CRM.BaseURL)
		assert.Equal(t, "user-key", cfg.CRM.APIKey)
		assert.Equal(t, "https://shop.example.org/wp-json", cfg.Store.BaseURL)
		assert.Equal(t, int64(3), cfg.Sync.BillingLocationTypeID)
		assert.Equal(t, int64(4), cfg.Sync.ShippingLocationTypeID)
		assert.True(t, cfg.Sync.DefaultEnabled)
		assert.Equal(t, "redis", cfg.Event.IdempotencyBackend)
		assert.Equal(t, "s3cret", cfg.HTTP.WebhookSecret)
	})

	t.Run("rejects identical location types", func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_SYNC_BILLING_LOCATION_TYPE_ID", "2")
		t.Setenv("SYNC_SYNC_SHIPPING_LOCATION_TYPE_ID", "2")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sync config")
	})

	t.Run("rejects malformed crm url", func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_CRM_BASE_URL", "not a url")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid crm config")
	})

	t.Run("rejects unknown idempotency backend", func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_EVENT_IDEMPOTENCY_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid event config")
	})

	t.Run("requires collector endpoint when telemetry is enabled", func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_TELEMETRY_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid telemetry config")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid telemetry config")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("SYNC_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearSyncEnv(t)
		t.Setenv("SYNC_APP_ENV", "production")
		t.Setenv("SYNC_DATABASE_PASSWORD", "secure-password")
		t.Setenv("SYNC_CRM_API_KEY", "api-key")
		t.Setenv("SYNC_CRM_SITE_KEY", "site-key")
		t.Setenv("SYNC_STORE_CONSUMER_KEY", "ck_123")
		t.Setenv("SYNC_STORE_CONSUMER_SECRET", "cs_456")
		t.Setenv("SYNC_HTTP_WEBHOOK_SECRET", "hook-secret")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("requires crm credentials in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("SYNC_CRM_SITE_KEY")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "crm.api_key and crm.site_key are required")
	})

	t.Run("requires store credentials in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("SYNC_STORE_CONSUMER_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.consumer_key and store.consumer_secret are required")
	})

	t.Run("requires webhook secret in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("SYNC_HTTP_WEBHOOK_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http.webhook_secret is required")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("SYNC_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
