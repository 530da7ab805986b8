// Пакет config — загрузка и валидация конфигурации Articles Query Service
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Articles Query Service.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8040-8049)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- PostgreSQL ---
	// Пустой DBHost — локальный режим с in-memory источником, без БД.

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL (по умолчанию 5432)
	DBPort int
	// Пользователь БД
	DBUser string
	// Пароль БД
	DBPassword string
	// Имя базы данных
	DBName string
	// Режим SSL (по умолчанию disable)
	DBSSLMode string
	// Применять миграции при старте (по умолчанию true)
	MigrateOnStart bool

	// --- Кэш метаданных ---

	// Максимальное количество записей LRU-кэша (по умолчанию 1000)
	CacheSize int
	// TTL записи кэша (по умолчанию 5m)
	CacheTTL time.Duration

	// --- Dependency health (topologymetrics) ---

	// Имя группы в метриках dephealth
	DephealthGroup string
	// Интервал проверки зависимостей (по умолчанию 30s)
	DephealthCheckInterval time.Duration
	// Лейбл isentry=yes для всех зависимостей
	DephealthIsEntry bool
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// AQ_PORT — порт HTTP-сервера (по умолчанию 8040)
	cfg.Port, err = getEnvInt("AQ_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("AQ_PORT: %w", err)
	}

	// AQ_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("AQ_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("AQ_LOG_LEVEL: %w", err)
	}

	// AQ_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("AQ_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("AQ_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	// AQ_HTTP_READ_TIMEOUT — таймаут чтения (по умолчанию 30s)
	cfg.HTTPReadTimeout, err = getEnvDuration("AQ_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AQ_HTTP_READ_TIMEOUT: %w", err)
	}

	// AQ_HTTP_WRITE_TIMEOUT — таймаут записи (по умолчанию 60s)
	cfg.HTTPWriteTimeout, err = getEnvDuration("AQ_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AQ_HTTP_WRITE_TIMEOUT: %w", err)
	}

	// AQ_HTTP_IDLE_TIMEOUT — таймаут простоя (по умолчанию 120s)
	cfg.HTTPIdleTimeout, err = getEnvDuration("AQ_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AQ_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	// AQ_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("AQ_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AQ_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- PostgreSQL ---

	// AQ_DB_HOST — хост PostgreSQL (пустой — in-memory режим без БД)
	cfg.DBHost = os.Getenv("AQ_DB_HOST")
	if cfg.DBHost != "" {
		// AQ_DB_PORT — порт PostgreSQL (по умолчанию 5432)
		cfg.DBPort, err = getEnvInt("AQ_DB_PORT", 5432)
		if err != nil {
			return nil, fmt.Errorf("AQ_DB_PORT: %w", err)
		}

		// AQ_DB_USER, AQ_DB_PASSWORD, AQ_DB_NAME — обязательны при заданном хосте
		if cfg.DBUser, err = getEnvRequired("AQ_DB_USER"); err != nil {
			return nil, err
		}
		if cfg.DBPassword, err = getEnvRequired("AQ_DB_PASSWORD"); err != nil {
			return nil, err
		}
		if cfg.DBName, err = getEnvRequired("AQ_DB_NAME"); err != nil {
			return nil, err
		}

		// AQ_DB_SSLMODE — режим SSL (по умолчанию disable)
		cfg.DBSSLMode = getEnvDefault("AQ_DB_SSLMODE", "disable")

		// AQ_MIGRATE_ON_START — применять миграции при старте (по умолчанию true)
		cfg.MigrateOnStart, err = getEnvBool("AQ_MIGRATE_ON_START", true)
		if err != nil {
			return nil, fmt.Errorf("AQ_MIGRATE_ON_START: %w", err)
		}
	}

	// --- Кэш метаданных ---

	// AQ_CACHE_SIZE — максимальный размер LRU-кэша (по умолчанию 1000)
	cfg.CacheSize, err = getEnvInt("AQ_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("AQ_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("AQ_CACHE_SIZE: значение должно быть >= 1")
	}

	// AQ_CACHE_TTL — TTL записи кэша (по умолчанию 5m)
	cfg.CacheTTL, err = getEnvDuration("AQ_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("AQ_CACHE_TTL: %w", err)
	}

	// --- Dependency health ---

	// AQ_DEPHEALTH_GROUP — имя группы в метриках (по умолчанию api-kata)
	cfg.DephealthGroup = getEnvDefault("AQ_DEPHEALTH_GROUP", "api-kata")

	// AQ_DEPHEALTH_CHECK_INTERVAL — интервал проверки (по умолчанию 30s)
	cfg.DephealthCheckInterval, err = getEnvDuration("AQ_DEPHEALTH_CHECK_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AQ_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// DEPHEALTH_ISENTRY — лейбл isentry=yes (по умолчанию false)
	cfg.DephealthIsEntry, err = getEnvBool("DEPHEALTH_ISENTRY", false)
	if err != nil {
		return nil, fmt.Errorf("DEPHEALTH_ISENTRY: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает DSN подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
