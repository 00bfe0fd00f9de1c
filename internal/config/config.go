package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/diegoclair/slack-agenda-bot/internal/domain"
)

type Config struct {
	MyGESEmail    string
	MyGESPassword string

	SlackBotToken      string
	SlackSigningSecret string
	SlackChannelID     string

	DatabasePath string
	Port         string

	// Timezone the daily ticks are evaluated in.
	Timezone string

	// The three fixed daily tick times, as cron specs.
	CronSpecMorning string
	CronSpecMidday  string
	CronSpecEvening string

	// Ticks at or after this hour post tomorrow's schedule; earlier ticks
	// only reconcile today's.
	EveningStartHour int

	// Keywords for the on-demand /agenda command.
	KeywordToday    string
	KeywordTomorrow string

	LogLevel    string
	Environment string

	// Agenda endpoints, overridable for testing against a stub portal.
	AgendaAuthURL string
	AgendaAPIURL  string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		MyGESEmail:         os.Getenv("MYGES_EMAIL"),
		MyGESPassword:      os.Getenv("MYGES_PASSWORD"),
		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		SlackChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
		DatabasePath:       getEnv("DATABASE_PATH", "./agenda.db"),
		Port:               getEnv("PORT", "3000"),
		Timezone:           getEnv("TIMEZONE", domain.DefaultTimezone),
		CronSpecMorning:    getEnv("CRON_SPEC_MORNING", "0 6 * * *"),
		CronSpecMidday:     getEnv("CRON_SPEC_MIDDAY", "53 15 * * *"),
		CronSpecEvening:    getEnv("CRON_SPEC_EVENING", "0 18 * * *"),
		KeywordToday:       getEnv("KEYWORD_TODAY", "today"),
		KeywordTomorrow:    getEnv("KEYWORD_TOMORROW", "tomorrow"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		AgendaAuthURL:      os.Getenv("MYGES_AUTH_URL"),
		AgendaAPIURL:       os.Getenv("MYGES_AGENDA_URL"),
	}

	if cfg.MyGESEmail == "" {
		return nil, fmt.Errorf("MYGES_EMAIL is not set")
	}
	if cfg.MyGESPassword == "" {
		return nil, fmt.Errorf("MYGES_PASSWORD is not set")
	}
	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}
	if cfg.SlackSigningSecret == "" {
		return nil, fmt.Errorf("SLACK_SIGNING_SECRET is not set")
	}
	if cfg.SlackChannelID == "" {
		return nil, fmt.Errorf("SLACK_CHANNEL_ID is not set")
	}

	eveningHourStr := getEnv("EVENING_START_HOUR", "15")
	eveningHour, err := strconv.Atoi(eveningHourStr)
	if err != nil || eveningHour < 0 || eveningHour > 23 {
		return nil, fmt.Errorf("invalid EVENING_START_HOUR: %s", eveningHourStr)
	}
	cfg.EveningStartHour = eveningHour

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
