package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации консоли
type Config struct {
	HTTPHost string `env:"HTTP_HOST" envDefault:"127.0.0.1"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Ключи клиентов локального API
	APIKeys []string `env:"CONSOLE_API_KEYS"`

	// Backend (движок инференса, контроллер камер, хранилище)
	APIBase     string        `env:"API_BASE" envDefault:"http://localhost:8000/api/v1"`
	WSBase      string        `env:"WS_BASE" envDefault:"ws://localhost:8000"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`

	// Circuit breaker вокруг вызовов backend
	BreakerFailureRatio float64       `env:"BREAKER_FAILURE_RATIO" envDefault:"0.6"`
	BreakerMinRequests  int           `env:"BREAKER_MIN_REQUESTS" envDefault:"10"`
	BreakerTimeout      time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`

	// Alerts polling
	AlertsPollInterval   time.Duration `env:"ALERTS_POLL_INTERVAL" envDefault:"4s"`
	AlertsPollMaxBackoff time.Duration `env:"ALERTS_POLL_MAX_BACKOFF" envDefault:"4s"`
	AlertsPageSize       int           `env:"ALERTS_PAGE_SIZE" envDefault:"200"`
	AlertsWSEnabled      bool          `env:"ALERTS_WS_ENABLED" envDefault:"false"`

	// Session storage
	SessionStore     string `env:"SESSION_STORE" envDefault:"redis"`
	SessionKeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"console:"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Postgres для журнала аудита, пустое значение отключает аудит
	DatabaseURL string `env:"DATABASE_URL"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// MinIO архив доказательств
	MinioEndpoint      string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	MinioAccessKey     string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey     string `env:"MINIO_SECRET_KEY"`
	MinioBucket        string `env:"MINIO_BUCKET" envDefault:"evidence-archive"`
	MinioUseSSL        bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioPublicBaseURL string `env:"MINIO_PUBLIC_BASE_URL"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPHost:             getEnv("HTTP_HOST", "127.0.0.1"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		APIBase:              strings.TrimRight(getEnv("API_BASE", "http://localhost:8000/api/v1"), "/"),
		WSBase:               strings.TrimRight(getEnv("WS_BASE", "ws://localhost:8000"), "/"),
		HTTPTimeout:          getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
		BreakerFailureRatio:  getEnvAsFloat("BREAKER_FAILURE_RATIO", 0.6),
		BreakerMinRequests:   getEnvAsInt("BREAKER_MIN_REQUESTS", 10),
		BreakerTimeout:       getEnvAsDuration("BREAKER_TIMEOUT", 30*time.Second),
		AlertsPollInterval:   getEnvAsDuration("ALERTS_POLL_INTERVAL", 4*time.Second),
		AlertsPageSize:       getEnvAsInt("ALERTS_PAGE_SIZE", 200),
		AlertsWSEnabled:      getEnvAsBool("ALERTS_WS_ENABLED", false),
		SessionStore:         strings.ToLower(getEnv("SESSION_STORE", "redis")),
		SessionKeyPrefix:     getEnv("SESSION_KEY_PREFIX", "console:"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		WebhookURL:           os.Getenv("WEBHOOK_URL"),
		WebhookSecret:        os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:       getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:    getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:     getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		MinioEndpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:       os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:       os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:          getEnv("MINIO_BUCKET", "evidence-archive"),
		MinioUseSSL:          getEnvAsBool("MINIO_USE_SSL", false),
		MinioPublicBaseURL:   os.Getenv("MINIO_PUBLIC_BASE_URL"),
	}
	// Без явного значения backoff не растет выше интервала опроса
	cfg.AlertsPollMaxBackoff = getEnvAsDuration("ALERTS_POLL_MAX_BACKOFF", cfg.AlertsPollInterval)

	apiKeysStr := os.Getenv("CONSOLE_API_KEYS")
	if apiKeysStr != "" {
		for _, key := range strings.Split(apiKeysStr, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("API_BASE environment variable is required")
	}
	if c.AlertsPollInterval <= 0 {
		return fmt.Errorf("ALERTS_POLL_INTERVAL must be positive, got %s", c.AlertsPollInterval)
	}
	if c.AlertsPollMaxBackoff < c.AlertsPollInterval {
		return fmt.Errorf("ALERTS_POLL_MAX_BACKOFF (%s) must not be below ALERTS_POLL_INTERVAL (%s)", c.AlertsPollMaxBackoff, c.AlertsPollInterval)
	}
	if c.AlertsPageSize < 1 {
		return fmt.Errorf("ALERTS_PAGE_SIZE must be positive, got %d", c.AlertsPageSize)
	}
	switch c.SessionStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("SESSION_STORE must be redis or memory, got %q", c.SessionStore)
	}
	// API действует токеном оператора, поэтому открытым он не запускается
	if len(c.APIKeys) == 0 {
		return fmt.Errorf("CONSOLE_API_KEYS environment variable is required")
	}
	return nil
}

// AuditEnabled сообщает, настроен ли Postgres для журнала аудита
func (c *Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

// ArchiveEnabled сообщает, заданы ли ключи MinIO
func (c *Config) ArchiveEnabled() bool {
	return c.MinioAccessKey != "" && c.MinioSecretKey != ""
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
