package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Queue    QueueConfig    `mapstructure:"queue" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds" validate:"gte=1"`
}

// ShutdownTimeout is the grace period given to in-flight requests on shutdown.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
// URL wins when set; otherwise it is assembled from the individual parts.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	Name                   string `mapstructure:"name"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// BuildURL assembles a postgres connection URL from the individual parts.
// It returns "" when no host is configured.
func (d DatabaseConfig) BuildURL() string {
	if d.Host == "" {
		return ""
	}
	port := d.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(port)),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}

// AuthConfig contains all authentication settings. It is read once at
// startup and passed by value to the token service.
type AuthConfig struct {
	SecretKey            string `mapstructure:"secret_key" validate:"required,min=32"`
	Algorithm            string `mapstructure:"algorithm" validate:"required,oneof=HS256 HS384 HS512"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"` // Max 31 days
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// TokenLifetime returns the configured access token lifetime.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// Supported queue backends.
const (
	QueueBackendRedis  = "redis"
	QueueBackendMemory = "memory"
	QueueBackendNoop   = "noop"
)

// QueueConfig controls background job submission and processing.
type QueueConfig struct {
	Backend     string `mapstructure:"backend" validate:"required,oneof=redis memory noop"`
	WorkerCount int    `mapstructure:"worker_count" validate:"required,gt=0"`
	Size        int    `mapstructure:"size" validate:"required,gt=0"`
	MaxAttempts int    `mapstructure:"max_attempts" validate:"required,gt=0"`
}

// RedisConfig locates the Redis instance used as the job broker.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	QueueKey string `mapstructure:"queue_key" validate:"required"`
}

// ResolveAddr returns Addr, or host:port when only the parts are set.
func (r RedisConfig) ResolveAddr() string {
	if r.Addr != "" || r.Host == "" {
		return r.Addr
	}
	port := r.Port
	if port == 0 {
		port = 6379
	}
	return net.JoinHostPort(r.Host, strconv.Itoa(port))
}

func (c *Config) validateBackends() error {
	if c.Queue.Backend == QueueBackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when queue.backend is %q", QueueBackendRedis)
	}
	return nil
}
