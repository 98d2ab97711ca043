package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Источники журнала показов
const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
)

// Config конфигурация сервиса поиска брокеров
type Config struct {
	// Сервер
	Port            string        `json:"port"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Данные
	ShowingsPath   string `json:"showings_path"`
	ShowingsSource string `json:"showings_source"`
	ShowingsDBPath string `json:"showings_db_path"`
	DistrictsPath  string `json:"districts_path"`
	ReferencePath  string `json:"reference_path"`
	WatchFiles     bool   `json:"watch_files"`

	// Поиск
	SearchDays          int     `json:"search_days"`
	ObjectFuzzyCutoff   float64 `json:"object_fuzzy_cutoff"`
	DistrictFuzzyCutoff float64 `json:"district_fuzzy_cutoff"`

	// Ограничение частоты запросов
	RateLimitPerSec float64 `json:"rate_limit_per_sec"`
	RateLimitBurst  int     `json:"rate_limit_burst"`

	// Логирование
	LogLevel string `json:"log_level"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	defaults := GetDefaults()

	cfg := &Config{
		Port:                getEnv("SERVER_PORT", defaults.Port),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", defaults.ShutdownTimeout),
		ShowingsPath:        getEnv("SHOWINGS_PATH", defaults.ShowingsPath),
		ShowingsSource:      strings.ToLower(getEnv("SHOWINGS_SOURCE", defaults.ShowingsSource)),
		ShowingsDBPath:      getEnv("SHOWINGS_DB_PATH", defaults.ShowingsDBPath),
		DistrictsPath:       getEnv("DISTRICTS_PATH", defaults.DistrictsPath),
		ReferencePath:       getEnv("REFERENCE_PATH", defaults.ReferencePath),
		WatchFiles:          getEnvBool("WATCH_FILES", defaults.WatchFiles),
		SearchDays:          getEnvInt("SEARCH_DAYS", defaults.SearchDays),
		ObjectFuzzyCutoff:   getEnvFloat("OBJECT_FUZZY_CUTOFF", defaults.ObjectFuzzyCutoff),
		DistrictFuzzyCutoff: getEnvFloat("DISTRICT_FUZZY_CUTOFF", defaults.DistrictFuzzyCutoff),
		RateLimitPerSec:     getEnvFloat("RATE_LIMIT_PER_SEC", defaults.RateLimitPerSec),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", defaults.RateLimitBurst),
		LogLevel:            strings.ToUpper(getEnv("LOG_LEVEL", defaults.LogLevel)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool понимает значения strconv.ParseBool (true/false, 1/0)
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
