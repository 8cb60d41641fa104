package config

import "time"

// Supported values for DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// Supported values for ServerConfig.Runtime.
const (
	RuntimeHTTP   = "http"
	RuntimeLambda = "lambda"
)

// BadgerInMemory is the BadgerPath value that selects a non-persistent store.
const BadgerInMemory = ":memory:"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// BasePath is where the posts router is mounted.
	BasePath     string        `mapstructure:"base_path"     validate:"required,startswith=/"`
	Runtime      string        `mapstructure:"runtime"       validate:"required,oneof=http lambda"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  validate:"gte=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"  validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres badger"`
	URL          string `mapstructure:"url"            validate:"required_if=Driver postgres"`
	BadgerPath   string `mapstructure:"badger_path"    validate:"required_if=Driver badger"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CacheConfig controls the GET response cache.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Path is the Badger directory for cached responses; empty keeps them in memory.
	Path string        `mapstructure:"path"`
	TTL  time.Duration `mapstructure:"ttl"  validate:"gte=0"`
}
