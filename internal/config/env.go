package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	GeminiAPIKey string

	// Optional with defaults
	GeminiModel           string
	Timezone              string
	MaxUnreadToProcess    int
	PerEmailSleepSecs     float64
	GoogleCredentialsFile string
	GoogleTokenFile       string
	CalendarID            string
	LogFile               string

	// Run summary email (disabled when any is empty)
	ResendAPIKey     string
	SummaryEmailFrom string
	SummaryEmailTo   string
}

func LoadFromEnv() *Config {
	cfg := &Config{
		GeminiAPIKey: geminiAPIKey(),

		GeminiModel:           getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-pro"),
		Timezone:              getEnvOrDefault("TIMEZONE", "Europe/Rome"),
		MaxUnreadToProcess:    getEnvAsIntOrDefault("MAX_UNREAD_TO_PROCESS", 10),
		PerEmailSleepSecs:     getEnvAsFloatOrDefault("PER_EMAIL_SLEEP_SECS", 0),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),
		CalendarID:            getEnvOrDefault("CALENDAR_ID", "primary"),
		LogFile:               getEnvOrDefault("LOG_FILE", "./automation.log"),

		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		SummaryEmailFrom: os.Getenv("SUMMARY_EMAIL_FROM"),
		SummaryEmailTo:   os.Getenv("SUMMARY_EMAIL_TO"),
	}

	return cfg
}

// geminiAPIKey accepts either GEMINI_API_KEY or GOOGLE_API_KEY so deployments
// that only set one of the two keep working.
func geminiAPIKey() string {
	if value := os.Getenv("GEMINI_API_KEY"); value != "" {
		return value
	}
	return os.Getenv("GOOGLE_API_KEY")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
