package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("POSTS_FILE_PATH", "/tmp/posts.json")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, "/tmp/posts.json", cfg.PostsFilePath)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache", cfg.RedisHost)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.RedisEnabled())
	assert.False(t, cfg.QueueEnabled())
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORAGE_BACKEND", "POSTS_FILE_PATH", "REDIS_HOST", "RABBITMQ_HOST", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "data/posts.json", cfg.PostsFilePath)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfig_InvalidInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{DBHost: "h", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "1", DBSSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable", cfg.DSN())
}

func TestConfig_OptionalServices(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.QueueEnabled())
	assert.False(t, cfg.S3Enabled())

	cfg = &Config{RedisHost: "redis", RabbitMQHost: "rabbit", AWSEndpoint: "http://minio:9000"}
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.QueueEnabled())
	assert.True(t, cfg.S3Enabled())
}
