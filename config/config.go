// Package config provides configuration management for the blog application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: instead of failing on the first missing value,
// every problem is collected and reported in a single aggregated error so the
// operator can fix the whole environment in one pass.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// SessionConfig holds session-token configuration: the key used to sign
// session cookies and how long an issued session remains valid.
type SessionConfig struct {
	Secret   string        // secret key for signing session tokens
	Lifetime time.Duration // validity window for an issued session
}

// MailConfig holds the pre-shared credentials for the outbound mail
// collaborator. These are process configuration, never request input.
type MailConfig struct {
	SMTPHost string // SMTP server host
	SMTPPort int    // SMTP server port (STARTTLS)
	From     string // sender account
	Password string // sender credential
	To       string // recipient of contact messages
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string // port for the HTTP server
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB      *PoolConfig
	Session *SessionConfig
	Mail    *MailConfig
	Server  *ServerConfig
}

// getRequiredEnv reads a required environment variable, appending to the
// errors slice if it is not set. The empty return on failure is fine because
// LoadConfig refuses to return a config once any error was collected.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// Uses defaultValue if not set; appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("15m", "24h", ...). Uses defaultValue if not set; appends an
// error if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// checkPoolSize rejects pool sizes outside reasonable bounds. The error fails
// LoadConfig, so an out-of-range value never reaches the pool.
func checkPoolSize(size int, varName string, errs *[]string) int {
	if size < 2 || size > 100 {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: %d is outside the allowed range 2-100", varName, size))
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Database configuration.
	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := checkPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Session configuration. The lifetime bounds the signed cookie: after it
	// elapses the token no longer verifies and the caller is anonymous again.
	sessionConfig := &SessionConfig{
		Secret:   getRequiredEnv("SECRET_KEY", &errs),
		Lifetime: getOptionalEnvDuration("SESSION_LIFETIME", 24*time.Hour, &errs),
	}

	// Mail configuration. The sender account, its credential, and the
	// recipient of contact-page messages are all pre-shared.
	mailConfig := &MailConfig{
		SMTPHost: getOptionalEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getOptionalEnvInt("SMTP_PORT", 587, &errs),
		From:     getRequiredEnv("FROM_EMAIL", &errs),
		Password: getRequiredEnv("MAIL_PASSWORD", &errs),
		To:       getRequiredEnv("TO_EMAIL", &errs),
	}

	// Server configuration. The port stays a string because it is only ever
	// interpolated into a listen address.
	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:      dbConfig,
		Session: sessionConfig,
		Mail:    mailConfig,
		Server:  serverConfig,
	}, nil
}
