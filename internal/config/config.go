package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Redis      RedisConfig
	Server     ServerConfig
	Search     SearchConfig
	Chat       ChatConfig
	Map        MapConfig
	Reelly     ReellyConfig
	GenAI      GenAIConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	EmbeddingDim       int
}

// RedisConfig holds the optional marker-cache configuration. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// ChatConfig holds chat router limits
type ChatConfig struct {
	HistoryLimit int
	ResultLimit  int
	PreviewLimit int
}

// MapConfig holds geo-marker engine tunables
type MapConfig struct {
	ClusterRadiusPx float64
	DeclusterZoom   int
	MaxZoom         int
	HeatFloor       float64
}

// ReellyConfig holds the upstream marker feed configuration
type ReellyConfig struct {
	BaseURL string
	APIKey  string
	Timeout int
}

// GenAIConfig holds the generative text backend configuration
type GenAIConfig struct {
	APIKey           string
	APIBase          string
	Models           []string
	Temperature      float64
	TopK             int
	TopP             float64
	MaxOutputTokens  int
	TimeoutSec       int
	TranslateTimeout int
	Enabled          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "estate_catalog"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
			EmbeddingDim:       getEnvAsInt("PG_EMBEDDING_DIM", 1024),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			TTLSeconds: getEnvAsInt("REDIS_MARKER_TTL", 120),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Search: SearchConfig{
			DefaultLimit: getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvAsInt("SEARCH_MAX_LIMIT", 100),
		},
		Chat: ChatConfig{
			HistoryLimit: getEnvAsInt("CHAT_HISTORY_LIMIT", 10),
			ResultLimit:  getEnvAsInt("CHAT_RESULT_LIMIT", 20),
			PreviewLimit: getEnvAsInt("CHAT_PREVIEW_LIMIT", 5),
		},
		Map: MapConfig{
			ClusterRadiusPx: getEnvAsFloat("MAP_CLUSTER_RADIUS_PX", 40),
			DeclusterZoom:   getEnvAsInt("MAP_DECLUSTER_ZOOM", 14),
			MaxZoom:         getEnvAsInt("MAP_MAX_ZOOM", 18),
			HeatFloor:       getEnvAsFloat("MAP_HEAT_FLOOR", 0.2),
		},
		Reelly: ReellyConfig{
			BaseURL: getEnv("REELLY_API_BASE", "https://search-listings-production.up.railway.app/v1"),
			APIKey:  getEnv("REELLY_API_KEY", ""),
			Timeout: getEnvAsInt("REELLY_TIMEOUT", 20),
		},
		GenAI: GenAIConfig{
			APIKey:           getEnv("GENAI_API_KEY", ""),
			APIBase:          getEnv("GENAI_API_BASE", "https://generativelanguage.googleapis.com/v1beta"),
			Models:           getEnvAsList("GENAI_MODELS", "gemini-1.5-flash"),
			Temperature:      getEnvAsFloat("GENAI_TEMPERATURE", 0.7),
			TopK:             getEnvAsInt("GENAI_TOP_K", 40),
			TopP:             getEnvAsFloat("GENAI_TOP_P", 0.95),
			MaxOutputTokens:  getEnvAsInt("GENAI_MAX_OUTPUT_TOKENS", 1024),
			TimeoutSec:       getEnvAsInt("GENAI_TIMEOUT", 15),
			TranslateTimeout: getEnvAsInt("GENAI_TRANSLATE_TIMEOUT", 12),
			Enabled:          getEnv("GENAI_API_KEY", "") != "",
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

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
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
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
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
