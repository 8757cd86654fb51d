package config

import (
	"os"
	"strconv"
)

// MinIOConfig holds object storage settings for the evidence bucket.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AnnotatorConfig selects and tunes the annotation collaborator.
type AnnotatorConfig struct {
	// Mode is "simulated" or "remote".
	Mode string
	// Endpoint is the remote annotation service URL (remote mode only).
	Endpoint string
	// DelayMS is the simulated analysis duration.
	DelayMS int
	// TimeoutSec bounds each annotation attempt; expiry records an error
	// state on the evidence. Zero disables the bound.
	TimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	MinIO     MinIOConfig
	Annotator AnnotatorConfig
	// SeedDemoData loads the demo case into the stores at startup.
	SeedDemoData bool
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Annotator: AnnotatorConfig{
			Mode:       getEnv("ANNOTATOR_MODE", "simulated"),
			Endpoint:   getEnv("ANNOTATOR_ENDPOINT", ""),
			DelayMS:    getEnvInt("ANNOTATOR_DELAY_MS", 3000),
			TimeoutSec: getEnvInt("ANNOTATOR_TIMEOUT_SEC", 60),
		},
		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
