package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned when no OpenAI API key is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

type Config struct {
	Port    string
	GinMode string

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SQLitePath    string

	SessionStore  string
	RedisHost     string
	RedisPort     string
	SessionSecret string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	GenerationTimeout    time.Duration
	GenerationMaxRetries int
	GenerationRateLimit  float64
	GenerationBurst      int

	CORSOrigins   []string
	SeedTemplates bool
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "builddost"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "builddost"),
		SQLitePath:    getEnv("SQLITE_PATH", "builddost.db"),

		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "cookie")),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", constants.DefaultOpenAIModel),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		GenerationTimeout:    getEnvAsDuration("GENERATION_TIMEOUT", constants.DefaultGenerationTimeout),
		GenerationMaxRetries: getEnvAsInt("GENERATION_MAX_RETRIES", constants.DefaultGenerationMaxRetries),
		GenerationRateLimit:  getEnvAsFloat("GENERATION_RATE_LIMIT", constants.DefaultGenerationRateLimit),
		GenerationBurst:      getEnvAsInt("GENERATION_BURST", constants.DefaultGenerationBurst),

		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SeedTemplates: getEnvAsBool("SEED_TEMPLATES", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return ErrMissingAPIKey
	}

	switch c.StorageDriver {
	case "memory", "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}
	if c.GenerationMaxRetries < 0 {
		return fmt.Errorf("GENERATION_MAX_RETRIES cannot be negative")
	}

	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
