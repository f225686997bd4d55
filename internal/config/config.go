package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the service.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	ListenAddr  string `yaml:"listen_addr"`
	Timezone    string `yaml:"timezone"`

	OpenAIKey     string        `yaml:"openai_api_key"`
	OpenAIModel   string        `yaml:"openai_model"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	OpenAITimeout time.Duration `yaml:"openai_timeout"`

	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	RolloverAt     string        `yaml:"rollover_at"`
	ReportInterval time.Duration `yaml:"report_interval"`

	DefaultUserEmail string `yaml:"default_user_email"`
	DefaultUserName  string `yaml:"default_user_name"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	location *time.Location
}

// Location returns the time zone used to decide what "today" is.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Load reads the optional YAML file at path, then applies environment
// variables on top and fills defaults.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	if _, _, err := ParseClock(cfg.RolloverAt); err != nil {
		return cfg, fmt.Errorf("invalid ROLLOVER_AT: %w", err)
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.Timezone, "TIMEZONE")
	setString(&cfg.OpenAIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAIModel, "OPENAI_MODEL")
	setString(&cfg.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&cfg.TelegramToken, "TELEGRAM_TOKEN")
	setString(&cfg.RolloverAt, "ROLLOVER_AT")
	setString(&cfg.DefaultUserEmail, "DEFAULT_USER_EMAIL")
	setString(&cfg.DefaultUserName, "DEFAULT_USER_NAME")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFile, "LOG_FILE")

	if raw := env("OPENAI_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid OPENAI_TIMEOUT %q", raw)
		}
		cfg.OpenAITimeout = d
	}
	if raw := env("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID %q", raw)
		}
		cfg.TelegramChatID = id
	}
	if raw := env("REPORT_INTERVAL_HOURS"); raw != "" {
		cfg.ReportInterval = parseInterval(raw)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "daily_tasks.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":5000"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-3.5-turbo-instruct"
	}
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAITimeout == 0 {
		cfg.OpenAITimeout = 30 * time.Second
	}
	if cfg.RolloverAt == "" {
		cfg.RolloverAt = "00:05"
	}
	if cfg.DefaultUserEmail == "" {
		cfg.DefaultUserEmail = "local@example.com"
	}
	if cfg.DefaultUserName == "" {
		cfg.DefaultUserName = "Local User"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// ParseClock parses an HH:MM wall clock time.
func ParseClock(raw string) (hour, minute int, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return hour, minute, nil
}

func parseInterval(raw string) time.Duration {
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

func setString(dst *string, key string) {
	if v := env(key); v != "" {
		*dst = v
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
