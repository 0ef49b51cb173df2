package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the gateway.
type Config struct {
	Port string
	Env  string

	// Remote backend the dashboard data lives behind.
	RemoteBaseURL      string
	RemoteDispatchPath string
	RemoteUploadPath   string
	RemoteLoginPath    string

	// File the bearer credential and staff profile are persisted in.
	CredentialsFile string

	// Optional local audit database. Empty disables auditing.
	AuditDBURL string

	// Twilio enquiry notifications. Empty SID disables them.
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Cron expression for the warm-cache refresh, e.g. "@every 5m".
	RefreshSchedule string

	LogLevel string
}

// Load reads configuration from the environment, with .env as a convenience
// for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("APP_ENV", "development"),
		RemoteBaseURL:      getEnv("REMOTE_API_URL", "http://localhost:9000"),
		RemoteDispatchPath: getEnv("REMOTE_DISPATCH_PATH", "/api/doAll"),
		RemoteUploadPath:   getEnv("REMOTE_UPLOAD_PATH", "/api/upload"),
		RemoteLoginPath:    getEnv("REMOTE_LOGIN_PATH", "/api/login"),
		CredentialsFile:    getEnv("CREDENTIALS_FILE", ".credentials.json"),
		AuditDBURL:         os.Getenv("AUDIT_DB_URL"),
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:  os.Getenv("TWILIO_PHONE_NUMBER"),
		RefreshSchedule:    getEnv("REFRESH_SCHEDULE", "@every 5m"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
