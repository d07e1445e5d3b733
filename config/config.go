package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Task reminder specifics
	DateTime       DateTimeConfig
	Storage        StorageConfig
	Telegram       TelegramConfig
	Reminder       ReminderConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// DateTimeConfig controls how user text is resolved into deadlines.
type DateTimeConfig struct {
	Timezone    string
	NLPFallback bool
}

type StorageConfig struct {
	SQLitePath string
}

type TelegramConfig struct {
	BotToken    string
	WebhookURL  string
	SecretToken string
	// NgrokAPI is polled for a public tunnel URL when WebhookURL is empty.
	NgrokAPI string
	// RateLimitPerMin caps incoming messages per chat.
	RateLimitPerMin int
	// ConversationTTL is how long a half-finished /add dialog is kept.
	ConversationTTL time.Duration
}

type ReminderConfig struct {
	Enabled      bool
	PollInterval time.Duration
	BatchSize    int
}

type GoogleCalendarConfig struct {
	Enabled         bool
	CredentialsPath string
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Date/time resolution
	cfg.DateTime.Timezone = viper.GetString("datetime.timezone")
	cfg.DateTime.NLPFallback = viper.GetBool("datetime.nlp_fallback")
	if tz := viper.GetString("tz"); tz != "" {
		cfg.DateTime.Timezone = tz
	}

	cfg.Storage.SQLitePath = viper.GetString("storage.sqlite_path")

	cfg.Telegram.BotToken = expandEnvVar(viper.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = expandEnvVar(viper.GetString("telegram.secret_token"))
	cfg.Telegram.NgrokAPI = viper.GetString("telegram.ngrok_api")
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")
	cfg.Telegram.ConversationTTL = viper.GetDuration("telegram.conversation_ttl")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.Reminder.Enabled = viper.GetBool("reminder.enabled")
	cfg.Reminder.PollInterval = viper.GetDuration("reminder.poll_interval")
	cfg.Reminder.BatchSize = viper.GetInt("reminder.batch_size")

	cfg.GoogleCalendar.Enabled = viper.GetBool("google_calendar.enabled")
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("datetime.timezone", "Europe/Moscow")
	viper.SetDefault("datetime.nlp_fallback", false)
	viper.SetDefault("storage.sqlite_path", "data/tasks.db")
	viper.SetDefault("telegram.ngrok_api", "http://ngrok:4040")
	viper.SetDefault("telegram.rate_limit_per_min", 30)
	viper.SetDefault("telegram.conversation_ttl", "30m")
	viper.SetDefault("reminder.enabled", true)
	viper.SetDefault("reminder.poll_interval", "30s")
	viper.SetDefault("reminder.batch_size", 50)
	viper.SetDefault("google_calendar.calendar_id", "primary")
}

func validate(cfg *Config) error {
	if _, err := time.LoadLocation(cfg.DateTime.Timezone); err != nil {
		return fmt.Errorf("datetime.timezone %q: %w", cfg.DateTime.Timezone, err)
	}
	if cfg.Storage.SQLitePath == "" {
		return fmt.Errorf("storage.sqlite_path is required")
	}
	if cfg.Reminder.Enabled && cfg.Reminder.PollInterval <= 0 {
		return fmt.Errorf("reminder.poll_interval must be positive")
	}
	if cfg.GoogleCalendar.Enabled && cfg.GoogleCalendar.CredentialsPath == "" {
		return fmt.Errorf("google_calendar.credentials_path is required when google_calendar.enabled")
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
