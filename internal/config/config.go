package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"portfolio/internal/models"
)

// SecurityConfig represents security configuration
type SecurityConfig struct {
	EnableRateLimit       bool
	RateLimitPerSecond    float64
	RateLimitBurst        int
	EnableCORS            bool
	AllowedOrigins        []string
	EnableSecurityHeaders bool
	MaxRequestSize        int64
	EnableRequestID       bool
}

// FeedConfig describes where the article collection comes from
type FeedConfig struct {
	URL         string
	FallbackURL string
	Format      models.Format
	// PageSize is zero for live feeds, which render every result on one page
	PageSize int
}

// SiteConfig holds presentation settings
type SiteConfig struct {
	Title              string
	ProfileURL         string
	CategoryStylesFile string
}

type Config struct {
	Port             int
	CacheTTL         time.Duration
	DataDir          string
	HistoryRetention time.Duration
	LogLevel         string
	EnableSwagger    bool
	Feed             FeedConfig
	Site             SiteConfig
	Security         SecurityConfig
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none are
// given. Variables already set in the environment win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
	}
	if err := godotenv.Load(files...); err != nil {
		log.Printf("Warning: failed to load .env: %v", err)
	}
}

func Load() *Config {
	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		CacheTTL:         getEnvAsDuration("CACHE_TTL", 15*time.Minute),
		DataDir:          getEnv("DATA_DIR", "./data"),
		HistoryRetention: getEnvAsDuration("HISTORY_RETENTION", 30*24*time.Hour),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnableSwagger:    getEnvAsBool("ENABLE_SWAGGER", true),
		Feed:             loadFeedConfig(),
		Site: SiteConfig{
			Title:              getEnv("SITE_TITLE", "Articles"),
			ProfileURL:         getEnv("PROFILE_URL", ""),
			CategoryStylesFile: getEnv("CATEGORY_STYLES_FILE", ""),
		},
		Security: loadSecurityConfig(),
	}
}

func loadFeedConfig() FeedConfig {
	format := models.Format(strings.ToLower(getEnv("FEED_FORMAT", string(models.FormatJSON))))
	if format != models.FormatFeed {
		format = models.FormatJSON
	}

	pageSize := getEnvAsInt("PAGE_SIZE", 12)
	if pageSize < 0 || format == models.FormatFeed {
		pageSize = 0
	}

	return FeedConfig{
		URL:         getEnv("FEED_URL", "./data/feed.json"),
		FallbackURL: getEnv("FEED_FALLBACK_URL", ""),
		Format:      format,
		PageSize:    pageSize,
	}
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableRateLimit:       getEnvAsBool("ENABLE_RATE_LIMIT", true),
		RateLimitPerSecond:    getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10.0),
		RateLimitBurst:        getEnvAsInt("RATE_LIMIT_BURST", 20),
		EnableCORS:            getEnvAsBool("ENABLE_CORS", true),
		AllowedOrigins:        getEnvAsStringSlice("ALLOWED_ORIGINS", []string{"*"}),
		EnableSecurityHeaders: getEnvAsBool("ENABLE_SECURITY_HEADERS", true),
		MaxRequestSize:        getEnvAsInt64("MAX_REQUEST_SIZE", 1<<20), // 1MB
		EnableRequestID:       getEnvAsBool("ENABLE_REQUEST_ID", true),
	}
}

func getEnv(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		origins := strings.Split(val, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}
	return defaultVal
}
