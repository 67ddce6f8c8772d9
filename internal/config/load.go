package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment.
const EnvPrefix = "TASKAPI"

// legacyEnv lists environment names used by earlier deployments. They are
// consulted after the prefixed name for the same key.
var legacyEnv = map[string][]string{
	"auth.secret_key":   {"SECRET_KEY"},
	"auth.algorithm":    {"ALGORITHM"},
	"database.user":     {"POSTGRES_USER"},
	"database.password": {"POSTGRES_PASSWORD"},
	"database.host":     {"POSTGRES_SERVER"},
	"database.port":     {"POSTGRES_PORT"},
	"database.name":     {"POSTGRES_NAME_DB"},
	"redis.host":        {"REDIS_SERVER"},
	"redis.port":        {"REDIS_PORT"},
	"redis.db":          {"REDIS_DB"},
}

var keys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_seconds",
	"database.url",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.name",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime_minutes",
	"database.auto_migrate",
	"auth.secret_key",
	"auth.algorithm",
	"auth.token_lifetime_minutes",
	"auth.bcrypt_cost",
	"queue.backend",
	"queue.worker_count",
	"queue.size",
	"queue.max_attempts",
	"redis.addr",
	"redis.host",
	"redis.port",
	"redis.password",
	"redis.db",
	"redis.queue_key",
}

// Load configuration from a .env file, environment variables and optionally
// a config.yaml file. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := bindEnv(v, key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = cfg.Database.BuildURL()
	}
	cfg.Redis.Addr = cfg.Redis.ResolveAddr()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and cross-field rules.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := cfg.validateBackends(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_seconds", 10)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.token_lifetime_minutes", 30)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("queue.backend", QueueBackendMemory)
	v.SetDefault("queue.worker_count", 2)
	v.SetDefault("queue.size", 100)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.queue_key", "taskapi:jobs")
}

func bindEnv(v *viper.Viper, key string) error {
	names := []string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	names = append(names, legacyEnv[key]...)
	if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
		return fmt.Errorf("error binding env for %s: %w", key, err)
	}
	return nil
}
