package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Journal  Journal  `mapstructure:"journal"`
	Remote   Remote   `mapstructure:"remote"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// Journal holds the configuration for the trade collection.
type Journal struct {
	StorageKey    string `mapstructure:"storage_key"`
	Timezone      string `mapstructure:"timezone"`
	ExportVersion int    `mapstructure:"export_version"`
}

// Location resolves the configured timezone used for day and week buckets.
// An empty or unknown name falls back to the process local zone.
func (j Journal) Location() *time.Location {
	if j.Timezone == "" || strings.EqualFold(j.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(j.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Remote holds the configuration for fetching import documents over HTTP.
type Remote struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	MaxRetries     int     `mapstructure:"max_retries"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port           int     `mapstructure:"port"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults and environment apply.
func LoadConfig(path string) (config Config, err error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("journal.storage_key", "ctj_trades_v3")
	v.SetDefault("journal.timezone", "Local")
	v.SetDefault("journal.export_version", 3)

	v.SetDefault("remote.timeout_seconds", 10)
	v.SetDefault("remote.rate_limit", 5)
	v.SetDefault("remote.rate_limit_burst", 1)
	v.SetDefault("remote.max_retries", 3)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 50) // requests per second
	v.SetDefault("server.rate_limit_burst", 20)

	v.SetDefault("database.dsn", "journal.db")
}
