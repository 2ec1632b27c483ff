package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dailypay?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Business.ChargeTTL)
	assert.Equal(t, "America/Sao_Paulo", cfg.Business.Timezone)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.UseRedis())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_TIMEOUT", "2s")
	t.Setenv("DATABASE_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BUSINESS_TIMEZONE", "UTC")
	t.Setenv("BUSINESS_CHARGE_TTL", "12h")
	t.Setenv("BUSINESS_NODE_ID", "7")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 2*time.Second, cfg.Database.Timeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, 12*time.Hour, cfg.Business.ChargeTTL)
	assert.Equal(t, int64(7), cfg.Business.NodeID)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080", Env: "development"},
			Database:  DatabaseConfig{Driver: "postgres", URL: "postgres://x", Timeout: time.Second},
			Business:  BusinessConfig{Timezone: "UTC", ChargeTTL: 24 * time.Hour, NodeID: 1},
			Scheduler: SchedulerConfig{ExpirySpec: "0 */15 * * * *"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.Database.URL = "" }, wantErr: "DATABASE_URL"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "DATABASE_DRIVER"},
		{name: "bad timezone", mutate: func(c *Config) { c.Business.Timezone = "Mars/Olympus" }, wantErr: "BUSINESS_TIMEZONE"},
		{name: "bad cron spec", mutate: func(c *Config) { c.Scheduler.ExpirySpec = "every now and then" }, wantErr: "SCHEDULER_EXPIRY_SPEC"},
		{name: "node id out of range", mutate: func(c *Config) { c.Business.NodeID = 2048 }, wantErr: "BUSINESS_NODE_ID"},
		{name: "production without jwt secret", mutate: func(c *Config) { c.Server.Env = "production" }, wantErr: "AUTH_JWT_SECRET"},
		{name: "sqlite outside production", mutate: func(c *Config) { c.Database.Driver = "sqlite3" }},
		{name: "sqlite in production", mutate: func(c *Config) {
			c.Server.Env = "production"
			c.Auth.JWTSecret = "secret"
			c.Database.Driver = "sqlite3"
		}, wantErr: "not allowed in production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
