package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort        string        `mapstructure:"server_port"`
	TesseractDataPath string        `mapstructure:"tessdata_prefix"`
	TesseractLanguage string        `mapstructure:"tesseract_language"`
	MaxFileSize       int64         `mapstructure:"max_file_size"`
	OCRConcurrency    int           `mapstructure:"ocr_concurrency"`
	OCRTimeout        time.Duration `mapstructure:"ocr_timeout"`
	FuzzyMatching     bool          `mapstructure:"fuzzy_matching"`
	RedisURL          string        `mapstructure:"redis_url"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	DatabaseURL       string        `mapstructure:"database_url"`
	LogLevel          string        `mapstructure:"log_level"`
	LogPretty         bool          `mapstructure:"log_pretty"`
}

var defaults = map[string]interface{}{
	"server_port":        "8080",
	"tessdata_prefix":    "/usr/share/tesseract-ocr/5/tessdata/",
	"tesseract_language": "eng",
	"max_file_size":      10 * 1024 * 1024, // 10 MB
	"ocr_concurrency":    4,
	"ocr_timeout":        30 * time.Second,
	"fuzzy_matching":     true,
	"redis_url":          "",
	"session_ttl":        24 * time.Hour,
	"database_url":       "",
	"log_level":          "info",
	"log_pretty":         false,
}

// LoadConfig reads defaults, an optional config.yaml in the working directory
// and environment variables (SERVER_PORT, TESSDATA_PREFIX, REDIS_URL, ...), in
// increasing order of precedence.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.TesseractLanguage == "" {
		return fmt.Errorf("TESSERACT_LANGUAGE is required")
	}
	if c.OCRConcurrency < 1 || c.OCRConcurrency > 64 {
		return fmt.Errorf("OCR_CONCURRENCY must be between 1 and 64, got %d", c.OCRConcurrency)
	}
	if c.MaxFileSize < 1024 {
		return fmt.Errorf("MAX_FILE_SIZE must be at least 1KB, got %d", c.MaxFileSize)
	}
	if c.OCRTimeout < 0 {
		return fmt.Errorf("OCR_TIMEOUT must not be negative")
	}
	return nil
}
