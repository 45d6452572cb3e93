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
	Storage  StorageConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
	// SSLMode is applied to Connection when set
	SSLMode string
}

type StorageConfig struct {
	Driver    string // "local" or "s3"
	UploadDir string
	MaxSize   int64

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Prefix    string
}

type ChatConfig struct {
	UpstreamURL    string
	Timeout        time.Duration
	HistoryBackend string // "memory" or "redis"
	HistoryTTL     time.Duration // 0 keeps history until cleared
	TrafficLogPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	environment := getEnv("GO_ENV", "development")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", getEnv("PORT", "3000")),
			Environment:        environment,
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4200"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DATABASE_URL", getEnv("DB_CONNECTION_STRING", "")),
			SSLMode:    getEnv("DB_SSLMODE", defaultSSLMode(environment)),
		},
		Storage: StorageConfig{
			Driver:      getEnv("STORAGE_DRIVER", "local"),
			UploadDir:   getEnv("UPLOAD_DIR", "./uploads/rooms"),
			MaxSize:     int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
			S3Region:    getEnv("S3_REGION", ""),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("S3_SECRET_KEY", ""),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
			S3Prefix:    getEnv("S3_PREFIX", "rooms"),
		},
		Chat: ChatConfig{
			UpstreamURL:    getEnv("CHAT_UPSTREAM_URL", getEnv("PYTHON_CHAT_URL", "http://127.0.0.1:8000/chat")),
			Timeout:        getEnvAsDuration("CHAT_TIMEOUT", 60*time.Second),
			HistoryBackend: getEnv("CHAT_HISTORY_BACKEND", "memory"),
			HistoryTTL:     getEnvAsDuration("CHAT_HISTORY_TTL", 0),
			TrafficLogPath: getEnv("CHAT_TRAFFIC_LOG_PATH", "logs/chat_upstream.log"),
		},
	}
}

// defaultSSLMode requires TLS to Postgres in production.
func defaultSSLMode(environment string) string {
	if environment == "production" {
		return "require"
	}
	return ""
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

// getEnvAsDuration accepts Go duration strings ("30s", "24h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
