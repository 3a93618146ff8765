package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment names accepted in NODE_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// passwordPlaceholder is replaced by DATABASE_PASSWORD inside DATABASE.
const passwordPlaceholder = "<PASSWORD>"

// Config holds all configuration for the application
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DatabaseURI      string
	DatabasePassword string
	DatabaseName     string

	JWTSecret          string
	JWTExpiresIn       time.Duration
	JWTCookieExpiresIn time.Duration

	StripeSecretKey string

	SendGridUsername string
	SendGridPassword string
	EmailHost        string
	EmailPort        int
	EmailUsername    string
	EmailPassword    string
	EmailFrom        string
	EmailFromName    string

	RedisURI    string
	RabbitMQURL string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	PublicDir       string
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimit       int64
	OutboundTimeout time.Duration
}

// Load reads configuration from config.env / .env files and environment variables
func Load() *Config {
	// Missing files are fine, the environment may be set directly
	_ = godotenv.Load("config.env")
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("NODE_ENV", EnvDevelopment),
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURI:      getEnvRequired("DATABASE"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", ""),
		DatabaseName:     getEnv("DATABASE_NAME", "natours"),

		JWTSecret:          getEnvRequired("JWT_SECRET"),
		JWTExpiresIn:       parseDuration(getEnv("JWT_EXPIRES_IN", "90d")),
		JWTCookieExpiresIn: time.Duration(getEnvInt("JWT_COOKIE_EXPIRES_IN", 90)) * 24 * time.Hour,

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),

		SendGridUsername: getEnv("SENDGRID_USERNAME", ""),
		SendGridPassword: getEnv("SENDGRID_PASSWORD", ""),
		EmailHost:        getEnv("EMAIL_HOST", "localhost"),
		EmailPort:        getEnvInt("EMAIL_PORT", 25),
		EmailUsername:    getEnv("EMAIL_USERNAME", ""),
		EmailPassword:    getEnv("EMAIL_PASSWORD", ""),
		EmailFrom:        getEnv("EMAIL_FROM", "hello@natours.io"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Natours"),

		RedisURI:    getEnv("REDIS_URI", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3UseSSL:    getEnvBool("S3_USE_SSL", false),

		PublicDir:       getEnv("PUBLIC_DIR", "public"),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "1h")),
		BodyLimit:       int64(getEnvInt("BODY_LIMIT_BYTES", 10*1024)),
		OutboundTimeout: parseDuration(getEnv("OUTBOUND_TIMEOUT", "10s")),
	}

	return cfg
}

// IsProduction reports whether NODE_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// IsDevelopment reports whether NODE_ENV is development.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// GinMode maps NODE_ENV onto a gin mode.
func (c *Config) GinMode() string {
	if c.IsProduction() {
		return "release"
	}
	return "debug"
}

// MongoURI returns DATABASE with the password placeholder substituted.
func (c *Config) MongoURI() string {
	return strings.Replace(c.DatabaseURI, passwordPlaceholder, c.DatabasePassword, 1)
}

// S3Enabled reports whether object storage is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

// getEnv reads an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired reads an environment variable and exits if not set
func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %s", key, value)
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// parseDuration parses a duration string, exits on error.
// A plain "<n>d" suffix is accepted as days.
func parseDuration(s string) time.Duration {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err == nil {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Invalid duration format: %s", s)
	}
	return d
}
