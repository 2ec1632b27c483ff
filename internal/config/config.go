package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	Env          string        `mapstructure:"env"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Timeout         time.Duration `mapstructure:"timeout"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

type SchedulerConfig struct {
	ExpirySpec string `mapstructure:"expiry_spec"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BusinessConfig struct {
	Timezone  string        `mapstructure:"timezone"`
	ChargeTTL time.Duration `mapstructure:"charge_ttl"`
	NodeID    int64         `mapstructure:"node_id"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type HealthConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

var defaults = map[string]any{
	"server.port":                "8080",
	"server.host":                "0.0.0.0",
	"server.env":                 "development",
	"server.read_timeout":        "10s",
	"server.write_timeout":       "10s",
	"database.driver":            "postgres",
	"database.url":               "",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",
	"database.timeout":           "5s",
	"database.auto_migrate":      false,
	"redis.addr":                 "",
	"redis.password":             "",
	"redis.db":                   0,
	"redis.lock_ttl":             "10s",
	"scheduler.expiry_spec":      "0 */15 * * * *",
	"logging.level":              "info",
	"logging.format":             "json",
	"business.timezone":          "America/Sao_Paulo",
	"business.charge_ttl":        "24h",
	"business.node_id":           1,
	"auth.jwt_secret":            "",
	"health.timeout":             "5s",
}

// CronParser accepts six-field specs with seconds, matching cron.WithSeconds
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Load reads configuration from environment variables and an optional .env file.
// Keys map to upper-case variables with dots replaced by underscores, so
// database.url is read from DATABASE_URL.
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist
	for _, path := range []string{".env", "deployments/.env"} {
		_ = godotenv.Load(path)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite3, got %q", c.Database.Driver)
	}

	// sqlite stores DECIMAL columns with NUMERIC affinity, which may hold money as REAL
	if c.IsProduction() && c.Database.Driver == "sqlite3" {
		return fmt.Errorf("DATABASE_DRIVER sqlite3 is not allowed in production")
	}

	if c.Database.Timeout <= 0 {
		return fmt.Errorf("DATABASE_TIMEOUT must be greater than 0")
	}

	if c.Business.ChargeTTL <= 0 {
		return fmt.Errorf("BUSINESS_CHARGE_TTL must be greater than 0")
	}

	if c.Business.NodeID < 0 || c.Business.NodeID > 1023 {
		return fmt.Errorf("BUSINESS_NODE_ID must be between 0 and 1023")
	}

	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("BUSINESS_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if _, err := CronParser.Parse(c.Scheduler.ExpirySpec); err != nil {
		return fmt.Errorf("SCHEDULER_EXPIRY_SPEC must be a valid cron spec: %w", err)
	}

	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required in production")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Location returns the business timezone used to compute calendar days
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UseRedis reports whether a Redis server is configured
func (c *Config) UseRedis() bool {
	return c.Redis.Addr != ""
}
