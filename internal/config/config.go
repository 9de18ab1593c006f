// ABOUTME: Centralized configuration for the sales agent service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the sales agent system.
type Config struct {
	// Data
	DataPath string

	// Groq settings (OpenAI-compatible endpoint)
	GroqAPIKey      string
	GroqBaseURL     string
	GroqModel       string
	GroqTemperature float64
	GroqMaxTokens   int

	// Embeddings
	EmbeddingModel     string
	EmbeddingDimension int

	// Qdrant
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	QdrantTimeout    time.Duration

	// Rate limiting for enrichment calls
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// HTTP API
	APIHost string
	APIPort int

	// Enrich embedding texts through the generation service before embedding
	EnrichTexts bool
	// Rebuild the vector index on server startup
	IndexOnStart bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DataPath:           getEnv("DATA_PATH", "sales_data_sample.csv"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:          getEnv("GROQ_MODEL", "llama3-8b-8192"),
		GroqTemperature:    getEnvFloat("GROQ_TEMPERATURE", 0.7),
		GroqMaxTokens:      getEnvInt("GROQ_MAX_TOKENS", 1024),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimension: getEnvInt("EMBEDDING_DIMENSION", 384),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       os.Getenv("QDRANT_API_KEY"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION_NAME", "sales_data"),
		QdrantTimeout:      getEnvDuration("QDRANT_TIMEOUT", 15*time.Second),
		RateLimitRequests:  getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:    time.Duration(getEnvInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
		APIHost:            getEnv("API_HOST", "0.0.0.0"),
		APIPort:            getEnvInt("API_PORT", 8000),
		EnrichTexts:        getEnvBool("ENRICH_TEXTS", true),
		IndexOnStart:       getEnvBool("INDEX_ON_START", false),
	}

	return cfg, cfg.Validate()
}

// Validate fails fast on configuration that would make startup unusable.
func (c *Config) Validate() error {
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if _, err := os.Stat(c.DataPath); err != nil {
		return fmt.Errorf("data file not found: %s", c.DataPath)
	}
	if c.EmbeddingDimension <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.EmbeddingDimension)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimitRequests)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
