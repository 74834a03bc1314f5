package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"oms/internal/core/application/usecases/commands"
	"oms/internal/jobs"
)

const defaultHTTPPort = "8080"

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	CORSAllowedOrigins     []string
	OrderExpirySchedule    string
	OrderNumberMaxAttempts int
	LogLevel               slog.Level
}

// LoadConfig reads the configuration through getenv, applying defaults for
// optional settings.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:               getenv("HTTP_PORT"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 getenv("DB_PORT"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              getenv("DB_SSLMODE"),
		CORSAllowedOrigins:     splitList(getenv("CORS_ALLOWED_ORIGINS")),
		OrderExpirySchedule:    getenv("ORDER_EXPIRY_SCHEDULE"),
		OrderNumberMaxAttempts: commands.DefaultOrderNumberAttempts,
		LogLevel:               slog.LevelInfo,
	}

	if config.HTTPPort == "" {
		config.HTTPPort = defaultHTTPPort
	}
	if config.DBSslMode == "" {
		config.DBSslMode = "disable"
	}
	if config.OrderExpirySchedule == "" {
		config.OrderExpirySchedule = jobs.DefaultOrderExpirySchedule
	}

	var problems []error
	if config.DBHost == "" {
		problems = append(problems, errors.New("DB_HOST is required"))
	}
	if config.DBName == "" {
		problems = append(problems, errors.New("DB_NAME is required"))
	}

	if raw := getenv("ORDER_NUMBER_MAX_ATTEMPTS"); raw != "" {
		attempts, err := strconv.Atoi(raw)
		if err != nil || attempts < 1 {
			problems = append(problems, fmt.Errorf("ORDER_NUMBER_MAX_ATTEMPTS must be a positive integer, got %q", raw))
		} else {
			config.OrderNumberMaxAttempts = attempts
		}
	}

	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := config.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			problems = append(problems, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}

	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
