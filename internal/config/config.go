package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Category store backends.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreNone     = "none"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_ENV"` specify the environment variable name.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production test"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"" validate:"omitempty,oneof=json console"`
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Adapter    AdapterConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port           string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead    time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite   time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle    time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
	RequestTimeout time.Duration `envconfig:"HTTP_SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PostgresConfig holds PostgreSQL database connection details. They are only required
// when the postgres category store is selected.
type PostgresConfig struct {
	Host         string `envconfig:"POSTGRES_HOST"`
	Port         string `envconfig:"POSTGRES_PORT" default:"5432"`
	User         string `envconfig:"POSTGRES_USER"`
	Password     string `envconfig:"POSTGRES_PASSWORD"`
	DBName       string `envconfig:"POSTGRES_DBNAME"`
	SSLMode      string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns int    `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName, pc.SSLMode)
}

// RedisConfig holds Redis connection details for the redis category store.
type RedisConfig struct {
	Addr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password  string `envconfig:"REDIS_PASSWORD"`
	DB        int    `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"catmap:"`
}

// AdapterConfig tunes the adaptation pipeline.
type AdapterConfig struct {
	CategoryStore      string        `envconfig:"ADAPTER_CATEGORY_STORE" default:"none" validate:"oneof=postgres redis none"`
	PersistenceTimeout time.Duration `envconfig:"ADAPTER_PERSISTENCE_TIMEOUT" default:"2s" validate:"gt=0"`
	MappingsFile       string        `envconfig:"ADAPTER_MAPPINGS_FILE"`
	BreakerMaxFailures uint32        `envconfig:"ADAPTER_BREAKER_MAX_FAILURES" default:"5" validate:"gt=0"`
	BreakerTimeout     time.Duration `envconfig:"ADAPTER_BREAKER_TIMEOUT" default:"30s" validate:"gt=0"`
	AutoMigrate        bool          `envconfig:"ADAPTER_AUTO_MIGRATE" default:"true"`
}

// Load initializes the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and the settings the selected category store needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Adapter.CategoryStore == StorePostgres {
		if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.DBName == "" {
			return fmt.Errorf("invalid configuration: POSTGRES_HOST, POSTGRES_USER and POSTGRES_DBNAME are required for the %s category store", StorePostgres)
		}
	}
	return nil
}
