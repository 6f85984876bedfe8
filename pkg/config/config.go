package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the farmsight services.
// Configuration can come from YAML file (config.yaml) or environment
// variables; environment variables always override YAML values.
// Secrets (database password, broker credentials) come only from the
// environment.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	API      APIConfig      `yaml:"api"`
	Console  ConsoleConfig  `yaml:"console"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
}

// APIConfig configures the resource backend service.
type APIConfig struct {
	BindAddr string `yaml:"bind_addr" env:"API_BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"API_PORT" env-default:"8000"`

	// CORSAllowedOrigins is a comma-separated list of origins permitted to
	// call the API from a browser. Empty disables CORS headers.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"API_CORS_ALLOWED_ORIGINS" env-default:""`

	// MigrationsPath is where the SQL migration files live.
	MigrationsPath string `yaml:"migrations_path" env:"API_MIGRATIONS_PATH" env-default:"migrations"`
}

// ConsoleConfig configures the operator console service.
type ConsoleConfig struct {
	BindAddr string `yaml:"bind_addr" env:"CONSOLE_BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"CONSOLE_PORT" env-default:"8080"`

	// BackendBaseURL is the base URL of the resource backend, including the
	// /api/v1 prefix, e.g. http://localhost:8000/api/v1.
	BackendBaseURL string `yaml:"backend_base_url" env:"CONSOLE_BACKEND_BASE_URL" env-default:"http://localhost:8000/api/v1"`

	// RequestTimeoutSeconds bounds every backend call made on behalf of a
	// console page. No retries are performed on top of it.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"CONSOLE_REQUEST_TIMEOUT_SECONDS" env-default:"10"`
}

// DatabaseConfig holds PostgreSQL configuration for the backend and the
// ingest listener.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"farmsight"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"farmsight"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
}

// URL assembles the connection string for pgx.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// MQTTConfig configures the ingest listener's broker connection.
type MQTTConfig struct {
	BrokerURL   string `yaml:"broker_url" env:"MQTT_BROKER_URL" env-default:"tcp://localhost:1883"`
	ClientID    string `yaml:"client_id" env:"MQTT_CLIENT_ID" env-default:"farmsight-ingest-listener"`
	TopicPrefix string `yaml:"topic_prefix" env:"MQTT_TOPIC_PREFIX" env-default:"farm/sensors/"`
	Username    string `yaml:"-" env:"MQTT_USERNAME"`
	Password    string `yaml:"-" env:"MQTT_PASSWORD"`

	// MetricsAddr is where the listener's /metrics endpoint binds.
	MetricsAddr string `yaml:"metrics_addr" env:"MQTT_METRICS_ADDR" env-default:"127.0.0.1:9091"`
}

// Load reads configuration from config.yaml (when present) and the
// environment. A local .env file is honored for development.
func Load() (*Config, error) {
	// Ignore error: the .env file is optional outside local development.
	_ = godotenv.Load()

	var cfg Config
	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment config: %w", err)
		}
	}

	return &cfg, nil
}
