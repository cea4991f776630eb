package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	UpstreamBaseURL string // Marketplace REST API base URL
	UpstreamToken   string // Service-account bearer token for upstream calls
	UpstreamTimeout int    // Upstream request timeout in seconds

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CacheTTL      int // Query cache stale time in seconds
	SettleDelayMs int // Delay after cache invalidation before re-read
	RetryMax      int // Max attempts for retried notification fetches
	RetryDelayMs  int // Base delay between retry attempts

	RecentDays       int    // Window for "recent" notification queries
	OfflineFlushCron string // Cron spec for flushing the offline send queue
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "dashboard.db"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8080/api/v1"),
		UpstreamToken:   getEnv("UPSTREAM_TOKEN", ""),
		UpstreamTimeout: getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CacheTTL:      getEnvInt("CACHE_TTL_SECONDS", 120),
		SettleDelayMs: getEnvInt("CACHE_SETTLE_DELAY_MS", 300),
		RetryMax:      getEnvInt("FETCH_RETRY_MAX", 3),
		RetryDelayMs:  getEnvInt("FETCH_RETRY_DELAY_MS", 500),

		RecentDays:       getEnvInt("RECENT_DAYS", 7),
		OfflineFlushCron: getEnv("OFFLINE_FLUSH_CRON", "@every 5m"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.UpstreamToken == "" {
		log.Println("Warning: UPSTREAM_TOKEN is empty. Upstream calls will be unauthenticated.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
