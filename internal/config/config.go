package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	EnableRedis bool
	RedisURL    string

	// JWT
	JWTSecret string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Admin bootstrap
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	// Quiz
	QuizDefaultWords int
	QuizMaxWords     int
	QuizSessionTTL   time.Duration

	// Dictionary lookup (Merriam-Webster collegiate API)
	DictionaryAPIKey string
	DictionaryAPIURL string

	// Assets
	TilesDir string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int

	// Features
	EnableCache   bool
	EnableMetrics bool

	// Site Meta
	SiteName        string
	SiteDescription string
	SiteURL         string
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "buzzwordz"),
		DBPassword: getEnv("DB_PASSWORD", "buzzwordz"),
		DBName:     getEnv("DB_NAME", "buzzwordzdb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "change-this-jwt-secret-before-production"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		// Admin bootstrap
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@buzzwordz.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		// Quiz
		QuizDefaultWords: getEnvAsInt("QUIZ_DEFAULT_WORDS", 10),
		QuizMaxWords:     getEnvAsInt("QUIZ_MAX_WORDS", 50),
		QuizSessionTTL:   time.Duration(getEnvAsInt("QUIZ_SESSION_TTL_MINUTES", 30)) * time.Minute,

		// Dictionary lookup
		DictionaryAPIKey: getEnv("DICTIONARY_API_KEY", ""),
		DictionaryAPIURL: getEnv("DICTIONARY_API_URL", "https://dictionaryapi.com/api/v3/references/collegiate/json"),

		// Assets
		TilesDir: getEnv("TILES_DIR", "./tiles"),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),

		// Features
		EnableCache:   getEnvAsBool("ENABLE_CACHE", true),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		SiteName:        getEnv("SITE_NAME", "Buzzwordz Inc."),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Get on an edventurous ride to build your spelling power and vocabulary."),
		SiteURL:         getEnv("SITE_URL", "http://localhost:8080"),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

// LookupEnabled reports whether the remote dictionary lookup provider can be
// used. The feature is keyed off the API key being present.
func (c *Config) LookupEnabled() bool {
	return strings.TrimSpace(c.DictionaryAPIKey) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
