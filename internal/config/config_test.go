package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"MONGO_URI", "MONGODB_URI", "MONGO_DB", "MONGO_CONNECT_TIMEOUT",
	"CORS_ORIGINS", "SECRET_KEY", "ENV", "FLASK_ENV", "PORT",
	"REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "REDIS_URI",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_WINDOW", "RATE_LIMIT_MAX_REQUESTS", "TRUST_PROXY",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://127.0.0.1:27017/", cfg.MongoURI)
	assert.Equal(t, "mood_journal_db", cfg.MongoDB)
	assert.Equal(t, 5*time.Second, cfg.MongoConnectTimeout)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "", cfg.RedisURI)
	assert.Equal(t, 120, cfg.RateLimitMaxRequests)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://db:27017/")
	t.Setenv("MONGO_DB", "moods_prod")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , https://b.example.com,, ")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ENV", " Production ")
	t.Setenv("PORT", "8080")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("REDIS_URI", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017/", cfg.MongoURI)
	assert.Equal(t, "moods_prod", cfg.MongoDB)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins())
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
}

func TestLoad_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://legacy:27017/")
	t.Setenv("FLASK_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://legacy:27017/", cfg.MongoURI)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_PrimaryWinsOverFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://primary:27017/")
	t.Setenv("MONGODB_URI", "mongodb://legacy:27017/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://primary:27017/", cfg.MongoURI)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")

	_, err := Load()
	assert.ErrorContains(t, err, "PORT")
}

func TestLoad_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{Port: "0"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "MONGO_URI")
	assert.ErrorContains(t, err, "MONGO_DB")
	assert.ErrorContains(t, err, "PORT")
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
}

func TestAllowedOrigins_EmptyFallsBackToWildcard(t *testing.T) {
	cfg := Config{CORSOrigins: " , "}
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}
