package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"CRM_APP_NAME":                            os.Getenv("CRM_APP_NAME"),
		"CRM_APP_ENV":                             os.Getenv("CRM_APP_ENV"),
		"CRM_APP_PORT":                            os.Getenv("CRM_APP_PORT"),
		"CRM_DATABASE_HOST":                       os.Getenv("CRM_DATABASE_HOST"),
		"CRM_DATABASE_PORT":                       os.Getenv("CRM_DATABASE_PORT"),
		"CRM_DATABASE_USER":                       os.Getenv("CRM_DATABASE_USER"),
		"CRM_DATABASE_PASSWORD":                   os.Getenv("CRM_DATABASE_PASSWORD"),
		"CRM_DATABASE_DBNAME":                     os.Getenv("CRM_DATABASE_DBNAME"),
		"CRM_DATABASE_SSLMODE":                    os.Getenv("CRM_DATABASE_SSLMODE"),
		"CRM_DATABASE_MAX_OPEN_CONNS":             os.Getenv("CRM_DATABASE_MAX_OPEN_CONNS"),
		"CRM_DATABASE_MAX_IDLE_CONNS":             os.Getenv("CRM_DATABASE_MAX_IDLE_CONNS"),
		"CRM_RECONCILIATION_SALES_TOLERANCE":      os.Getenv("CRM_RECONCILIATION_SALES_TOLERANCE"),
		"CRM_RECONCILIATION_NET_TOLERANCE":        os.Getenv("CRM_RECONCILIATION_NET_TOLERANCE"),
		"CRM_RECONCILIATION_COMMISSION_TOLERANCE": os.Getenv("CRM_RECONCILIATION_COMMISSION_TOLERANCE"),
		"CRM_STORAGE_ENABLED":                     os.Getenv("CRM_STORAGE_ENABLED"),
		"CRM_STORAGE_ACCESS_KEY_ID":               os.Getenv("CRM_STORAGE_ACCESS_KEY_ID"),
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

		assert.Equal(t, "salesops-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "salesops", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "pdftotext", cfg.Extract.PdftotextPath)
		assert.InDelta(t, 0.01, cfg.Reconciliation.SalesTolerance, 1e-9)
		assert.InDelta(t, 0.10, cfg.Reconciliation.NetTolerance, 1e-9)
		assert.InDelta(t, 0.15, cfg.Reconciliation.CommissionTolerance, 1e-9)
	})

	t.Run("loads values from environment variables with CRM prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("CRM_APP_NAME", "test-app")
		os.Setenv("CRM_APP_PORT", "9000")
		os.Setenv("CRM_DATABASE_HOST", "testdb.local")
		os.Setenv("CRM_DATABASE_PORT", "5433")
		os.Setenv("CRM_DATABASE_PASSWORD", "testpass")
		os.Setenv("CRM_RECONCILIATION_SALES_TOLERANCE", "0.05")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.InDelta(t, 0.05, cfg.Reconciliation.SalesTolerance, 1e-9)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("CRM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("CRM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects negative tolerances", func(t *testing.T) {
		clearEnv()
		os.Setenv("CRM_RECONCILIATION_NET_TOLERANCE", "-0.10")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "net_tolerance cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"CRM_APP_ENV":               os.Getenv("CRM_APP_ENV"),
		"CRM_DATABASE_PASSWORD":     os.Getenv("CRM_DATABASE_PASSWORD"),
		"CRM_DATABASE_SSLMODE":      os.Getenv("CRM_DATABASE_SSLMODE"),
		"CRM_STORAGE_ENABLED":       os.Getenv("CRM_STORAGE_ENABLED"),
		"CRM_STORAGE_ACCESS_KEY_ID": os.Getenv("CRM_STORAGE_ACCESS_KEY_ID"),
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

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CRM_APP_ENV", "production")
		os.Setenv("CRM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CRM_APP_ENV", "production")
		os.Setenv("CRM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CRM_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires storage credentials when storage enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CRM_APP_ENV", "production")
		os.Setenv("CRM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CRM_DATABASE_SSLMODE", "require")
		os.Setenv("CRM_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.access_key_id is required")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("CRM_APP_ENV", "production")
		os.Setenv("CRM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CRM_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
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
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
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

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}
