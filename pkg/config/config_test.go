package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "TOKEN_TTL", "ACCESS_CODE", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "sachad26", cfg.AccessCode)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "production")

	_, err := load(viper.New())
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "rotated")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "8081")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{"file driver", Config{StorageDriver: StorageFile, DataDir: "./data", JWTSecret: "s", TokenTTL: time.Hour}, false},
		{"file driver without dir", Config{StorageDriver: StorageFile, JWTSecret: "s", TokenTTL: time.Hour}, true},
		{"database driver without postgres", Config{StorageDriver: StorageDatabase, MongoURI: "mongodb://x", JWTSecret: "s", TokenTTL: time.Hour}, true},
		{"database driver without mongo", Config{StorageDriver: StorageDatabase, PostgresConnStr: "postgres://x", JWTSecret: "s", TokenTTL: time.Hour}, true},
		{"database driver", Config{StorageDriver: StorageDatabase, PostgresConnStr: "postgres://x", MongoURI: "mongodb://x", JWTSecret: "s", TokenTTL: time.Hour}, false},
		{"unknown driver", Config{StorageDriver: "sqlite", JWTSecret: "s", TokenTTL: time.Hour}, true},
		{"empty secret", Config{StorageDriver: StorageFile, DataDir: "d", TokenTTL: time.Hour}, true},
		{"default secret in development", Config{Env: "development", StorageDriver: StorageFile, DataDir: "d", JWTSecret: defaultJWTSecret, TokenTTL: time.Hour}, false},
		{"default secret in production", Config{Env: "production", StorageDriver: StorageFile, DataDir: "d", JWTSecret: defaultJWTSecret, TokenTTL: time.Hour}, true},
		{"custom secret in production", Config{Env: "production", StorageDriver: StorageFile, DataDir: "d", JWTSecret: "rotated", TokenTTL: time.Hour}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
