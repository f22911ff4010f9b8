// Package config loads server configuration from flags and environment.
package config

import (
	"flag"
	"log/slog"
	"os"
	"strings"
)

// Defaults
const (
	DefaultAddress      = ":8000"
	DefaultDatabasePath = "bigako.db"
	DefaultUploadsDir   = "uploads"
	DefaultLogLevel     = "info"
)

// Config содержит конфигурацию сервера
type Config struct {
	Address      string // адрес HTTP сервера
	DatabasePath string // путь к файлу SQLite
	UploadsDir   string // каталог для вложений
	LogLevel     slog.Level
}

// Load регистрирует флаги, применяет переменные окружения как значения
// по умолчанию и парсит командную строку.
// Приоритет: флаг > переменная окружения > значение по умолчанию.
func Load() *Config {
	address := flag.String("address", envOrDefault("BIGAKO_ADDRESS", DefaultAddress), "HTTP server address")
	database := flag.String("database", envOrDefault("BIGAKO_DATABASE", DefaultDatabasePath), "path to SQLite database file")
	uploads := flag.String("uploads", envOrDefault("BIGAKO_UPLOADS_DIR", DefaultUploadsDir), "directory for uploaded files")
	logLevel := flag.String("log-level", envOrDefault("BIGAKO_LOG_LEVEL", DefaultLogLevel), "log level: debug, info, warn, error")

	flag.Parse()

	return &Config{
		Address:      *address,
		DatabasePath: *database,
		UploadsDir:   *uploads,
		LogLevel:     parseLogLevel(*logLevel),
	}
}

// envOrDefault возвращает значение переменной окружения или fallback
func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// parseLogLevel конвертирует строку в slog.Level (unknown -> info)
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
