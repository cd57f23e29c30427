package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
)

// Storage backends.
const (
	BackendFile    = "file"
	BackendMongoDB = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	PriceFeed PriceFeedConfig
	Sheets    SheetsConfig
	Refresh   RefreshConfig
	Cache     CacheConfig
	Drafts    DraftsConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port            string
	CORSAllowOrigin string
}

// StorageConfig selects where the ingredient and recipe documents live.
type StorageConfig struct {
	Backend         string
	IngredientsFile string
	RecipesFile     string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// PriceFeedConfig points at an optional remote ingredient price list.
type PriceFeedConfig struct {
	URL     string
	Timeout time.Duration
}

// Enabled reports whether a feed URL was configured.
func (c PriceFeedConfig) Enabled() bool {
	return c.URL != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	IngredientRange string
	ExportRange     string
}

// Enabled reports whether both Google Sheets settings were provided.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// RefreshConfig holds scheduler-related settings.
type RefreshConfig struct {
	CronSchedule string
	Timezone     string
}

// CacheConfig controls the evaluation cache.
type CacheConfig struct {
	EvaluationTTL time.Duration
}

// DraftsConfig controls how long an unfinished recipe draft is kept.
type DraftsConfig struct {
	TTL time.Duration
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	feedTimeout, err := getDurationWithDefault("PRICE_FEED_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getDurationWithDefault("EVALUATION_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	draftTTL, err := getDurationWithDefault("DRAFT_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvWithDefault("APP_PORT", "8080"),
			CORSAllowOrigin: getenvWithDefault("CORS_ALLOW_ORIGIN", "*"),
		},
		Storage: StorageConfig{
			Backend:         getenvWithDefault("STORAGE_BACKEND", BackendFile),
			IngredientsFile: getenvWithDefault("INGREDIENTS_FILE", "data.json"),
			RecipesFile:     getenvWithDefault("RECIPES_FILE", "recipe.json"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "recipes"),
		},
		PriceFeed: PriceFeedConfig{
			URL:     os.Getenv("PRICE_FEED_URL"),
			Timeout: feedTimeout,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			IngredientRange: getenvWithDefault("SHEETS_INGREDIENT_RANGE", "Ingredients!A2:H"),
			ExportRange:     getenvWithDefault("SHEETS_EXPORT_RANGE", "Evaluations!A:M"),
		},
		Refresh: RefreshConfig{
			CronSchedule: getenvWithDefault("REFRESH_CRON_SCHEDULE", "*/30 * * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Cache: CacheConfig{
			EvaluationTTL: cacheTTL,
		},
		Drafts: DraftsConfig{
			TTL: draftTTL,
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.IngredientsFile == "" {
			return errors.New("INGREDIENTS_FILE must not be empty")
		}
		if c.Storage.RecipesFile == "" {
			return errors.New("RECIPES_FILE must not be empty")
		}
	case BackendMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORAGE_BACKEND=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}
	if c.Sheets.Enabled() && c.Sheets.IngredientRange == "" {
		return errors.New("SHEETS_INGREDIENT_RANGE must not be empty")
	}

	if c.PriceFeed.Enabled() && c.PriceFeed.Timeout <= 0 {
		return errors.New("PRICE_FEED_TIMEOUT must be positive")
	}

	if c.Refresh.CronSchedule == "" {
		return errors.New("REFRESH_CRON_SCHEDULE must be provided")
	}
	if _, err := cron.ParseStandard(c.Refresh.CronSchedule); err != nil {
		return fmt.Errorf("invalid REFRESH_CRON_SCHEDULE: %w", err)
	}

	if c.Refresh.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := time.LoadLocation(c.Refresh.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	if c.Cache.EvaluationTTL < 0 {
		return errors.New("EVALUATION_CACHE_TTL must not be negative")
	}

	if c.Drafts.TTL <= 0 {
		return errors.New("DRAFT_TTL must be positive")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
