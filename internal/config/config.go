package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	HTTPAddr         string
	AuthCookieSecure bool

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	OTLPEndpoint string

	PeopleData PeopleDataConfig
	LLM        LLMConfig
	Scraper    ScraperConfig
	RateLimit  RateLimitConfig
}

// PeopleDataConfig configures the people-search/enrichment provider.
type PeopleDataConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	BatchSize  int
	BatchDelay time.Duration
}

// LLMConfig configures the message-generation provider.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ScraperConfig configures the LinkedIn profile scraper.
type ScraperConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// RateLimitConfig configures the redis-backed daily contact limiter.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:          getenv("APP_SERVICE", "reachway"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure: authCookieSecure,

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "reachway"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME_SECONDS", 1800),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		PeopleData: PeopleDataConfig{
			BaseURL:    getenv("PEOPLEDATA_BASE_URL", "https://api.apollo.io/v1"),
			APIKey:     strings.TrimSpace(getenv("PEOPLEDATA_API_KEY", "")),
			Timeout:    getenvDuration("PEOPLEDATA_TIMEOUT", 30*time.Second),
			BatchSize:  getenvInt("PEOPLEDATA_ENRICH_BATCH_SIZE", 10),
			BatchDelay: getenvDuration("PEOPLEDATA_ENRICH_BATCH_DELAY", 500*time.Millisecond),
		},
		LLM: LLMConfig{
			BaseURL: strings.TrimSpace(getenv("LLM_BASE_URL", "")),
			APIKey:  strings.TrimSpace(getenv("LLM_API_KEY", "")),
			Model:   getenv("LLM_MODEL", "gpt-4o"),
			Timeout: getenvDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Scraper: ScraperConfig{
			BaseURL: getenv("SCRAPER_BASE_URL", "https://api.scrapingdog.com/linkedin"),
			APIKey:  strings.TrimSpace(getenv("SCRAPER_API_KEY", "")),
			Timeout: getenvDuration("SCRAPER_TIMEOUT", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			RedisPassword: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			RedisDB:       getenvInt("REDIS_DB", 0),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
