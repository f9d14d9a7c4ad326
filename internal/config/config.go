package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Classifier service
	ClassifierURL     string
	ClassifierTimeout time.Duration

	// Redis (change notifications, optional)
	RedisURL     string
	EventChannel string

	// Admin
	JWTSecret         string
	JWTAccessExpiry   time.Duration
	AdminEmail        string
	AdminPasswordHash string
	AdminToken        string

	// Server
	Port           string
	CORSOrigins    string
	MaxUploadBytes int
	LogLevel       string
}

func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "grievances"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		ClassifierURL:     strings.TrimRight(getEnv("CLASSIFIER_URL", getEnv("PYTHON_BACKEND_URL", "http://localhost:8000")), "/"),
		ClassifierTimeout: parseDuration(getEnv("CLASSIFIER_TIMEOUT", "60s"), 60*time.Second),

		RedisURL:     getEnv("REDIS_URL", ""),
		EventChannel: getEnv("EVENT_CHANNEL", "grievances.changed"),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:   parseDuration(getEnv("JWT_ACCESS_EXPIRY", "12h"), 12*time.Hour),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminToken:        getEnv("ADMIN_TOKEN", ""),

		Port:           getEnv("PORT", "8080"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		MaxUploadBytes: parseInt(getEnv("MAX_UPLOAD_BYTES", ""), 10*1024*1024),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
