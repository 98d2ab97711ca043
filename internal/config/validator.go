package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var validLogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// Validate проверяет корректность конфигурации и возвращает все найденные проблемы одной ошибкой
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, "shutdown timeout must be at least 1 second")
	}

	// Валидация источников данных
	switch c.ShowingsSource {
	case SourceFile:
		if c.ShowingsPath == "" {
			errors = append(errors, "showings path is required")
		}
	case SourceSQLite:
		if c.ShowingsDBPath == "" {
			errors = append(errors, "showings database path is required")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid showings source: %s (valid: %s, %s)",
			c.ShowingsSource, SourceFile, SourceSQLite))
	}
	if c.DistrictsPath == "" {
		errors = append(errors, "districts path is required")
	}

	// Валидация поиска
	if c.SearchDays < 1 {
		errors = append(errors, fmt.Sprintf("search days must be at least 1, got %d", c.SearchDays))
	}
	if c.ObjectFuzzyCutoff < 0 || c.ObjectFuzzyCutoff > 100 {
		errors = append(errors, fmt.Sprintf("object fuzzy cutoff must be between 0 and 100, got %g", c.ObjectFuzzyCutoff))
	}
	if c.DistrictFuzzyCutoff < 0 || c.DistrictFuzzyCutoff > 100 {
		errors = append(errors, fmt.Sprintf("district fuzzy cutoff must be between 0 and 100, got %g", c.DistrictFuzzyCutoff))
	}

	if c.RateLimitPerSec < 0 {
		errors = append(errors, "rate limit must not be negative")
	}
	if c.RateLimitPerSec > 0 && c.RateLimitBurst < 1 {
		errors = append(errors, "rate limit burst must be at least 1")
	}

	// Валидация уровня логирования
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// GetDefaults возвращает конфигурацию по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:                "9999",
		ShutdownTimeout:     10 * time.Second,
		ShowingsPath:        "data/showings.xlsx",
		ShowingsSource:      SourceFile,
		ShowingsDBPath:      "data/showings.db",
		DistrictsPath:       "data/districts.json",
		WatchFiles:          true,
		SearchDays:          60,
		ObjectFuzzyCutoff:   75,
		DistrictFuzzyCutoff: 70,
		RateLimitPerSec:     10,
		RateLimitBurst:      20,
		LogLevel:            "INFO",
	}
}
