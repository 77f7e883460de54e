// Package config holds the application configuration and the report catalog.
package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig is the complete runtime configuration, loaded from the environment.
type AppConfig struct {
	CompanyName string
	AppName     string

	DataDir    string
	ReportsDir string

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float32
	InsightTimeout    time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	KafkaBrokers string
	KafkaTopic   string

	Port string
}

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	return val
}

func getEnvInt(key string, defVal int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defVal
}

// Load reads the configuration from the environment with sensible defaults.
func Load() AppConfig {
	timeoutSecs := getEnvInt("INSIGHT_TIMEOUT_SECONDS", 45)
	temp, err := strconv.ParseFloat(GetEnvDefault("OPENAI_TEMPERATURE", "0.7"), 32)
	if err != nil {
		temp = 0.7
	}

	return AppConfig{
		CompanyName: GetEnvDefault("COMPANY_NAME", "SecureCorp Inc."),
		AppName:     GetEnvDefault("APP_NAME", "AI Security Analyst"),

		DataDir:    GetEnvDefault("DATA_DIR", "data"),
		ReportsDir: GetEnvDefault("REPORTS_DIR", "generated_reports"),

		OpenAIAPIKey:      GetEnvDefault("OPENAI_API_KEY", ""),
		OpenAIModel:       GetEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIMaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 4000),
		OpenAITemperature: float32(temp),
		InsightTimeout:    time.Duration(timeoutSecs) * time.Second,

		SMTPHost:     GetEnvDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     GetEnvDefault("SMTP_PORT", "587"),
		SMTPUsername: GetEnvDefault("SMTP_USERNAME", ""),
		SMTPPassword: GetEnvDefault("SMTP_PASSWORD", ""),
		FromEmail:    GetEnvDefault("SMTP_FROM_EMAIL", "reports@securecorp.com"),
		FromName:     GetEnvDefault("SMTP_FROM_NAME", "SecureCorp Security Team"),

		KafkaBrokers: GetEnvDefault("KAFKA_BROKERS", ""),
		KafkaTopic:   GetEnvDefault("KAFKA_TOPIC", "secreport.events"),

		Port: GetEnvDefault("MS_PORT", "3000"),
	}
}
