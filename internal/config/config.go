// Package config handles configuration loading for the services.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AuthConfig holds all configuration for the auth service.
type AuthConfig struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	JWTSecret     string
	JWTExpiry     time.Duration
	Port          string
	Environment   string
	LogLevel      string
}

// LoadAuth reads auth service configuration from environment variables.
func LoadAuth() (*AuthConfig, error) {
	loadDotEnv()

	secret, err := getEnvRequired("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	return &AuthConfig{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "authdb"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     secret,
		JWTExpiry:     parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),
		Port:          getEnv("PORT", "8081"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

// GatewayConfig holds all configuration for the API gateway.
type GatewayConfig struct {
	JWTSecret      string
	AuthServiceURL string
	StudentURL     string
	AllowedOrigins []string
	Port           string
	Environment    string
	LogLevel       string
}

// LoadGateway reads gateway configuration from environment variables.
func LoadGateway() (*GatewayConfig, error) {
	loadDotEnv()

	secret, err := getEnvRequired("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	return &GatewayConfig{
		JWTSecret:      secret,
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", "http://localhost:8081"),
		StudentURL:     getEnv("STUDENT_SERVICE_URL", "http://localhost:8082"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

// StudentConfig holds all configuration for the student service.
type StudentConfig struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	Port        string
	Environment string
	LogLevel    string
}

// LoadStudent reads student service configuration from environment variables.
func LoadStudent() (*StudentConfig, error) {
	loadDotEnv()

	return &StudentConfig{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "studentdb"),
		Port:        getEnv("PORT", "8082"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}, nil
}

// loadDotEnv loads a .env file when present. Missing files are not an
// error so containerized deployments can rely on real env vars.
func loadDotEnv() {
	_ = godotenv.Load()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
