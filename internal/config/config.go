package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	ServerAddr      string        `env:"SERVER_ADDRESS"`
	APIBaseURL      string        `env:"BITLY_API_URL"`
	Token           string        `env:"BITLY_TOKEN"`
	APITimeout      time.Duration `env:"API_TIMEOUT"`
	LogLevel        string        `env:"LOG_LEVEL"`
	LogFile         string        `env:"LOG_FILE"`
	FileStoragePath string        `env:"FILE_STORAGE_PATH"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	SQLitePath      string        `env:"SQLITE_PATH"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	defaults := &Config{
		ServerAddr:      "localhost:8080",
		APIBaseURL:      "https://api-ssl.bitly.com/v4",
		APITimeout:      10 * time.Second,
		LogLevel:        "info",
		FileStoragePath: "history.json",
	}

	flag.StringVar(&cfg.ServerAddr, "server_addr", defaults.ServerAddr, "HTTP server address")
	flag.StringVar(&cfg.APIBaseURL, "api_url", defaults.APIBaseURL, "Shortening API base URL")
	flag.DurationVar(&cfg.APITimeout, "api_timeout", defaults.APITimeout, "Shortening API call timeout")
	flag.StringVar(&cfg.LogLevel, "log_level", defaults.LogLevel, "Log level")
	flag.StringVar(&cfg.LogFile, "log_file", "", "Log file path (rotated; empty for stderr only)")
	flag.StringVar(&cfg.FileStoragePath, "file_storage_path", defaults.FileStoragePath, "History file path")
	flag.StringVar(&cfg.DatabaseDSN, "database_dsn", "", "Postgres DSN for history storage")
	flag.StringVar(&cfg.SQLitePath, "sqlite_path", "", "SQLite file path for history storage")
	flag.Parse()

	// use env; the token is env-only so it never shows up in process args
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	// use defaults
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = defaults.ServerAddr
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaults.APIBaseURL
	}
	if cfg.APITimeout == 0 {
		cfg.APITimeout = defaults.APITimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.FileStoragePath == "" {
		cfg.FileStoragePath = defaults.FileStoragePath
	}

	// validate
	if err := validateServerAddr(cfg.ServerAddr); err != nil {
		return nil, err
	}
	if err := validateAPIBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}
	if err := validateToken(cfg.Token); err != nil {
		return nil, err
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if err := validateFileStoragePath(cfg.FileStoragePath); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateServerAddr(addr string) error {
	_, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid Server Address: %w", err)
	}
	return nil
}

func validateAPIBaseURL(apiURL string) error {
	parsedURL, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return errors.New("empty Scheme or Host")
	}
	return nil
}

func validateToken(token string) error {
	if token == "" {
		return errors.New("BITLY_TOKEN is required")
	}
	return nil
}

func validateLogLevel(logLevel string) error {
	logLevel = strings.ToLower(logLevel)

	var level zapcore.Level
	err := level.UnmarshalText([]byte(logLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %s", logLevel)
	}
	return nil
}

func validateFileStoragePath(path string) error {
	// check if the path is empty
	if path == "" {
		return errors.New("empty file storage path")
	}

	// check if the path is a dir
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("file storage path cannot be a directory: %s", path)
		}
	}
	return nil
}
