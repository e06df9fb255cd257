package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")

	// Write test configuration to the temporary file
	configData := []byte(`
PORT=8080
ENVIRONMENT=production
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000,http://localhost:3001"
STORAGE_DRIVER=mongo
POSTGRES_HOST=localhost
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
DB_CONN_TIMEOUT=5s
MONGO_URI=mongodb://mongo:27017
MONGO_DB=content
RATE_LIMIT_RPS=2.5
NEWSLETTER_SINK=broker
MAIL_SENDER=sender@example.com
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
`)
	require.NoError(t, os.WriteFile(path, configData, 0o600))

	// Load the config from the temporary file
	config, err := loadConfig(path)
	require.NoError(t, err)

	// Verify the loaded config values
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.production())
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, "mongo", config.StorageDriver)
	assert.Equal(t, "localhost", config.DBHost)
	assert.Equal(t, "testuser", config.DBUser)
	assert.Equal(t, "testpassword", config.DBPassword)
	assert.Equal(t, "testdb", config.DBName)
	assert.Equal(t, 5*time.Second, config.DBConnTimeout)
	assert.Equal(t, "mongodb://mongo:27017", config.MongoURI)
	assert.Equal(t, "content", config.MongoDB)
	assert.Equal(t, 2.5, config.RateLimitRPS)
	assert.Equal(t, "broker", config.NewsletterSink)
	assert.Equal(t, "sender@example.com", config.MailSender)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "testpassword", config.MQPassword)

	// defaults
	assert.Equal(t, "5432", config.DBPort)
	assert.Equal(t, 20, config.DBMaxOpenConns)
	assert.Equal(t, 30*time.Second, config.DBMaxIdleTime)
	assert.Equal(t, "uploads", config.UploadDir)
	assert.True(t, config.RateLimitEnabled)
	assert.Equal(t, 20, config.RateLimitBurst)
	assert.Equal(t, "5672", config.MQPort)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5000", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "postgres", config.StorageDriver)
	assert.Equal(t, []string{"*"}, config.TrustedOrigins)
	assert.Equal(t, "log", config.NewsletterSink)
	assert.Equal(t, "postgres://postgres:@localhost:5432/contenthub?sslmode=disable", config.postgresURI())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "memory", config.StorageDriver)
	assert.Equal(t, "9000", config.Port)
	assert.Equal(t, "postgres://u:p@db:5432/x", config.postgresURI())
	assert.Equal(t, "DEBUG", config.logLevel().String())
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "storage driver", key: "STORAGE_DRIVER", value: "sqlite"},
		{name: "newsletter sink", key: "NEWSLETTER_SINK", value: "smtp"},
		{name: "rate limit", key: "RATE_LIMIT_BURST", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := loadConfig("")
			assert.Error(t, err)
		})
	}
}
