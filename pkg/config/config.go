package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultJWTSecret = "your-secret-key"

type Config struct {
	// Server
	ServerPort         string
	CORSAllowedOrigins []string
	CookieSecure       bool

	// Storage
	StorageBackend string
	PostsFilePath  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	RedisPostsKey      string
	RateLimitPerMinute int

	// JWT
	JWTSecret string

	// AWS S3 / MinIO
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3UseSSL           string
	S3BucketName       string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return nil, err
	}
	cookieSecure, err := getEnvBool("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		CookieSecure:       cookieSecure,

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "file")),
		PostsFilePath:  getEnv("POSTS_FILE_PATH", "data/posts.json"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "inkboard"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:          getEnv("REDIS_HOST", ""),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            redisDB,
		RedisPostsKey:      getEnv("REDIS_POSTS_KEY", "inkboard:posts"),
		RateLimitPerMinute: rateLimit,

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "inkboard-images"),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", ""),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),
	}

	return config, nil
}

// DSN builds the postgres connection string shared by the store and cmd/migrate.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// S3Enabled reports whether uploads have somewhere to go: a MinIO endpoint
// or AWS credentials.
func (c *Config) S3Enabled() bool {
	return c.AWSEndpoint != "" || c.AWSAccessKeyID != ""
}

func (c *Config) QueueEnabled() bool {
	return c.RabbitMQHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
