package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/storage"
)

const (
	sinkLog    = "log"
	sinkBroker = "broker"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`

	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`
	DBConnTimeout  time.Duration `mapstructure:"DB_CONN_TIMEOUT"`

	MongoURI         string        `mapstructure:"MONGO_URI"`
	MongoDB          string        `mapstructure:"MONGO_DB"`
	MongoMaxPoolSize uint64        `mapstructure:"MONGO_MAX_POOL_SIZE"`
	MongoOpTimeout   time.Duration `mapstructure:"MONGO_OP_TIMEOUT"`

	UploadDir      string   `mapstructure:"UPLOAD_DIR"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	NewsletterSink string `mapstructure:"NEWSLETTER_SINK"`
	MailSender     string `mapstructure:"MAIL_SENDER"`
	MQHost         string `mapstructure:"RABBITMQ_HOST"`
	MQPort         string `mapstructure:"RABBITMQ_PORT"`
	MQUser         string `mapstructure:"RABBITMQ_USER"`
	MQPassword     string `mapstructure:"RABBITMQ_PASSWORD"`
}

var defaults = map[string]any{
	"PORT":                "5000",
	"ENVIRONMENT":         "development",
	"VERSION":             "1.0.0",
	"LOG_LEVEL":           "info",
	"TLS_CERT_FILE":       "",
	"TLS_KEY_FILE":        "",
	"STORAGE_DRIVER":      storage.DriverPostgres,
	"DATABASE_URL":        "",
	"POSTGRES_HOST":       "localhost",
	"POSTGRES_PORT":       "5432",
	"POSTGRES_USER":       "postgres",
	"POSTGRES_PASSWORD":   "",
	"POSTGRES_DB":         "contenthub",
	"DB_MAX_OPEN_CONNS":   20,
	"DB_MAX_IDLE_CONNS":   5,
	"DB_MAX_IDLE_TIME":    30 * time.Second,
	"DB_CONN_TIMEOUT":     2 * time.Second,
	"MONGO_URI":           "mongodb://localhost:27017",
	"MONGO_DB":            "contenthub",
	"MONGO_MAX_POOL_SIZE": 20,
	"MONGO_OP_TIMEOUT":    5 * time.Second,
	"UPLOAD_DIR":          "uploads",
	"TRUSTED_ORIGINS":     []string{"*"},
	"RATE_LIMIT_ENABLED":  true,
	"RATE_LIMIT_RPS":      10,
	"RATE_LIMIT_BURST":    20,
	"NEWSLETTER_SINK":     sinkLog,
	"MAIL_SENDER":         "Contenthub <newsletter@contenthub.local>",
	"RABBITMQ_HOST":       "localhost",
	"RABBITMQ_PORT":       "5672",
	"RABBITMQ_USER":       "guest",
	"RABBITMQ_PASSWORD":   "guest",
}

// loadConfig reads the optional env file at path; environment variables override it
// and every key falls back to a default.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case storage.DriverPostgres, storage.DriverMongo, storage.DriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.NewsletterSink {
	case sinkLog, sinkBroker:
	default:
		return fmt.Errorf("unsupported NEWSLETTER_SINK %q", c.NewsletterSink)
	}

	if c.RateLimitEnabled && (c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0) {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

func (c *Config) postgresURI() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return common.PostgresURI(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Config) logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) production() bool {
	return c.Environment == "production"
}
