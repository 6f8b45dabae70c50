package authapi_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authapi "github.com/nexa-labs/go-auth-api"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", authapi.EnvTest)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_ADDR", ":0")
	t.Setenv("DATABASE_DSN", "file::memory:?cache=shared")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("EMAIL_FROM", "")
}

func TestLoadConfig(t *testing.T) {
	t.Run("test environment needs no mail settings", func(t *testing.T) {
		setBaseEnv(t)

		cfg, err := authapi.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, authapi.EnvTest, cfg.Env)
		assert.True(t, cfg.IsTest())
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, ":0", cfg.Addr)
	})

	t.Run("production requires mail settings", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("APP_ENV", authapi.EnvProduction)

		_, err := authapi.LoadConfig()
		require.Error(t, err)

		t.Setenv("SMTP_HOST", "smtp.example.com")
		t.Setenv("EMAIL_FROM", "noreply@example.com")

		cfg, err := authapi.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("missing signing secret refuses to start", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := authapi.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown environment refuses to start", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("APP_ENV", "staging")

		_, err := authapi.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SMTP_HOST", "smtp.example.com")
		t.Setenv("EMAIL_FROM", "noreply@example.com")

		// t.Setenv registered the restore; unset so envDefault kicks in.
		for _, key := range []string{"APP_ENV", "HTTP_ADDR", "DATABASE_DSN"} {
			require.NoError(t, os.Unsetenv(key))
		}

		cfg, err := authapi.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, authapi.EnvDevelopment, cfg.Env)
		assert.Equal(t, ":3000", cfg.Addr)
		assert.Equal(t, "file:auth.db", cfg.DatabaseDSN)
	})
}
