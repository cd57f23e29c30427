package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT", "CORS_ALLOW_ORIGIN", "STORAGE_BACKEND", "INGREDIENTS_FILE", "RECIPES_FILE",
	"MONGODB_URI", "MONGODB_DB_NAME", "PRICE_FEED_URL", "PRICE_FEED_TIMEOUT",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "SHEETS_INGREDIENT_RANGE",
	"SHEETS_EXPORT_RANGE", "REFRESH_CRON_SCHEDULE", "TIMEZONE", "EVALUATION_CACHE_TTL", "DRAFT_TTL", "LOG_LEVEL",
}

// clearEnv blanks every key so values from the host do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func emptyEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(emptyEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSAllowOrigin)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "data.json", cfg.Storage.IngredientsFile)
	assert.Equal(t, "recipe.json", cfg.Storage.RecipesFile)
	assert.Equal(t, 15*time.Second, cfg.PriceFeed.Timeout)
	assert.False(t, cfg.PriceFeed.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.Cache.EvaluationTTL)
	assert.Equal(t, "UTC", cfg.Refresh.Timezone)
	assert.Equal(t, time.Hour, cfg.Drafts.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to "".
	for _, key := range []string{"APP_PORT", "PRICE_FEED_URL", "EVALUATION_CACHE_TTL"} {
		require.NoError(t, os.Unsetenv(key))
	}
	t.Cleanup(func() {
		for _, key := range []string{"APP_PORT", "PRICE_FEED_URL", "EVALUATION_CACHE_TTL"} {
			os.Unsetenv(key)
		}
	})

	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\nPRICE_FEED_URL=http://prices.local/data.json\nEVALUATION_CACHE_TTL=30s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.PriceFeed.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Cache.EvaluationTTL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRICE_FEED_TIMEOUT", "soon")

	_, err := Load(emptyEnvFile(t))
	assert.ErrorContains(t, err, "PRICE_FEED_TIMEOUT")
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Storage: StorageConfig{Backend: BackendFile, IngredientsFile: "data.json", RecipesFile: "recipe.json"},
		Refresh: RefreshConfig{CronSchedule: "*/30 * * * *", Timezone: "UTC"},
		Drafts:  DraftsConfig{TTL: time.Hour},
		Log:     LogConfig{Level: "info"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "APP_PORT"},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "s3" }, wantErr: "STORAGE_BACKEND"},
		{name: "mongo without uri", mutate: func(c *Config) { c.Storage.Backend = BackendMongoDB; c.MongoDB.DBName = "recipes" }, wantErr: "MONGODB_URI"},
		{
			name: "mongo configured",
			mutate: func(c *Config) {
				c.Storage.Backend = BackendMongoDB
				c.MongoDB = MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "recipes"}
			},
		},
		{name: "half sheets config", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, wantErr: "together"},
		{name: "bad cron", mutate: func(c *Config) { c.Refresh.CronSchedule = "every minute" }, wantErr: "REFRESH_CRON_SCHEDULE"},
		{name: "bad timezone", mutate: func(c *Config) { c.Refresh.Timezone = "Mars/Olympus" }, wantErr: "TIMEZONE"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "LOG_LEVEL"},
		{name: "zero draft ttl", mutate: func(c *Config) { c.Drafts.TTL = 0 }, wantErr: "DRAFT_TTL"},
		{name: "feed without timeout", mutate: func(c *Config) { c.PriceFeed.URL = "http://x" }, wantErr: "PRICE_FEED_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
