// Package config loads the process configuration. The ENV variable selects
// which config file is read (config.<env>.yaml); environment variables
// override YAML values; secrets come from environment variables only.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
)

// DefaultEnv is used when ENV is not set. Production is the safe default:
// a misconfigured deployment should never come up with a development profile.
const DefaultEnv = "prod"

// Config is the explicit configuration struct constructed once at process
// start and passed to dependents. Nothing below main reads ambient
// environment state.
type Config struct {
	Env      string `yaml:"-"`
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:""`

	CORS     CORSConfig     `yaml:"cors"`
	Database DatabaseConfig `yaml:"database"`
}

// CORSConfig controls the CORS middleware.
type CORSConfig struct {
	// AllowOriginsStr is a comma-separated origin list; "*" allows any.
	AllowOriginsStr string   `yaml:"allow_origins" env:"CORS_ALLOW_ORIGINS" env-default:"*"`
	AllowOrigins    []string `yaml:"-"`
}

// DatabaseConfig holds the selected profile and its connection settings.
// The profile code is fixed for the lifetime of the process.
type DatabaseConfig struct {
	Profile  string `yaml:"profile" env:"DB_PROFILE" env-default:"POS_NEO"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"registry"`
	Password string `yaml:"-" env:"DB_PASSWORD"` // Secret - not in YAML
	Name     string `yaml:"name" env:"DB_NAME" env-default:"registry"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:""`
	// Path is the database file for file-backed profiles (SQL_LCL).
	Path string `yaml:"path" env:"DB_PATH" env-default:""`

	MaxOpenConns    int `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime_minutes" env:"DB_CONN_MAX_LIFETIME_MINUTES" env-default:"60"`

	// MigrationsPath is the golang-migrate source directory, used by the
	// PostgreSQL profiles. Other backends bootstrap from the entity catalog.
	MigrationsPath string `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH" env-default:"migrations"`
}

// Load reads configuration for the environment named by ENV (default prod).
// An unknown database profile code is a load error: the process must not
// serve traffic against an unresolvable backend.
func Load() (*Config, error) {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = DefaultEnv
	}

	cfg := &Config{Env: env}
	file := fmt.Sprintf("config.%s.yaml", env)
	if err := cleanenv.ReadConfig(file, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	cfg.CORS.AllowOrigins = splitAndTrim(cfg.CORS.AllowOriginsStr)

	if _, err := dbprofile.Resolve(cfg.Database.Profile); err != nil {
		return nil, fmt.Errorf("invalid database profile in %s: %w", file, err)
	}

	return cfg, nil
}

// ConnSettings maps the database section to the profile layer's settings.
func (c *DatabaseConfig) ConnSettings() dbprofile.ConnSettings {
	return dbprofile.ConnSettings{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Database: c.Name,
		SSLMode:  c.SSLMode,
		Path:     c.Path,
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
