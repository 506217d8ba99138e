package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Connection settings, read from the environment once at startup
var (
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	JWTSecret        string
	RedisAddr        string
	APIPort          string
)

// Domain limits; defaults match the published deployment
var (
	PageSize      int // page size of public listings
	AdminPageSize int // page size of admin listings
	TitleMax      int
	ShortDescMax  int
	LongDescMax   int
	EntryMax      int
	PasswordMin   int
)

// LoadConfig reads the .env file if present and populates the config
// variables. Missing keys fall back to development defaults.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "writing_contest")
	JWTSecret = getEnv("JWT_SECRET", "dev-secret-change-me")
	RedisAddr = getEnv("REDIS_ADDR", "")
	APIPort = getEnv("API_PORT", "8080")

	PageSize = getEnvInt("PAGE_SIZE", 5)
	AdminPageSize = getEnvInt("ADMIN_PAGE_SIZE", 20)
	TitleMax = getEnvInt("TITLE_MAX", 100)
	ShortDescMax = getEnvInt("SHORT_DESC_MAX", 255)
	LongDescMax = getEnvInt("LONG_DESC_MAX", 2000)
	EntryMax = getEnvInt("ENTRY_MAX", 5000)
	PasswordMin = getEnvInt("PASSWORD_MIN", 8)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}
