package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration for the API, loaded from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenExpiry time.Duration
	AppBaseURL  string

	SMTPHost   string
	SMTPPort   string
	SMTPSender string
	SMTPPass   string

	AllowedOrigins []string
}

// LoadConfig reads configuration from the environment. Missing .env is not
// fatal; defaults keep local development working.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "codonyx"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenExpiry: parseDuration("TOKEN_EXPIRY", 24*time.Hour),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:8080"),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    os.Getenv("SMTP_PORT"),
		SMTPSender:  os.Getenv("SMTP_SENDER"),
		SMTPPass:    os.Getenv("SMTP_PASSWORD"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = []string{origins}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set; tokens will not be secure")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Also accept a plain number of hours.
	if h, err := strconv.Atoi(v); err == nil {
		return time.Duration(h) * time.Hour
	}
	logrus.Warnf("Invalid %s value %q, using default", key, v)
	return fallback
}
