package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string // debug, info, warn, error

	// Server
	ServerAddr         string
	BaseURL            string
	CORSOrigins        string // Comma-separated allowed origins
	RateLimitPerMinute int
	ViewsDir           string

	// Data
	DataRoot    string // Directory of per-topic folders holding the exports
	CatalogFile string // Optional YAML override for the static tables

	// Reloading
	WatchData     bool
	WatchDebounce time.Duration

	// Dashboard defaults
	DefaultProducts  int // How many products are preselected
	DefaultLocations int // How many locations are preselected

	// Growth policy
	GrowthMinBase int64
	GrowthCap     float64

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Trendboard"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: failed to read .env: %v", err)
	}

	return &Config{
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins:        getEnv("CORS_ORIGINS", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		ViewsDir:           getEnv("VIEWS_DIR", "./views"),

		DataRoot:    getEnv("DATA_ROOT", "GoogleTrends"),
		CatalogFile: getEnv("CATALOG_FILE", "catalog.yaml"),

		WatchData:     getEnv("WATCH_DATA", "") != "",
		WatchDebounce: getEnvDuration("WATCH_DEBOUNCE", 2*time.Second),

		DefaultProducts:  getEnvInt("DEFAULT_PRODUCTS", 5),
		DefaultLocations: getEnvInt("DEFAULT_LOCATIONS", 5),

		GrowthMinBase: int64(getEnvInt("GROWTH_MIN_BASE", 20)),
		GrowthCap:     getEnvFloat("GROWTH_CAP", 1000),

		SiteTitle:   getEnv("SITE_TITLE", "Trendboard"),
		SiteTagline: getEnv("SITE_TAGLINE", "Fashion search trends for small retailers"),
		SiteFooter:  getEnv("SITE_FOOTER", "Trendboard - descriptive Google Trends analytics"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
