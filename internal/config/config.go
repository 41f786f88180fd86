package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// ChatConfig tunes the preview aggregation core: page size, preview
// truncation length, the bucketing time zone, and which backend serves
// session previews ("postgres" or "redis").
type ChatConfig struct {
	PageSize         int
	PreviewMaxLength int
	TimeZone         string
	HistoryBackend   string
	CacheTTL         time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Chat: ChatConfig{
			PageSize:         getEnvAsInt("CHAT_PAGE_SIZE", 30),
			PreviewMaxLength: getEnvAsInt("CHAT_PREVIEW_MAX_LENGTH", 100),
			TimeZone:         getEnv("CHAT_TIME_ZONE", "Europe/Copenhagen"),
			HistoryBackend:   getEnv("CHAT_HISTORY_BACKEND", "postgres"),
			CacheTTL:         getEnvAsDuration("CHAT_CACHE_TTL", 1*time.Hour),
		},
	}
}

// Location resolves the configured bucketing time zone. Falls back to UTC
// if the IANA name cannot be loaded, so categorization never panics.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Chat.TimeZone)
	if err != nil {
		log.Printf("Invalid CHAT_TIME_ZONE %q, falling back to UTC", c.Chat.TimeZone)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
