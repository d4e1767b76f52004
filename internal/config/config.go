package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"sport_club_backend/pkg/utils"

	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "change-me-sport-club-attendance"

// Config is the application configuration.
// Values come from an optional YAML file and are then overridden by environment variables.
type Config struct {
	Database struct {
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		DBName     string `yaml:"dbname"`
		SSLMode    string `yaml:"sslmode"`
		MaxConns   int    `yaml:"max_conns"`
		SchemaPath string `yaml:"schema_path"`
	} `yaml:"database"`
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		GinMode        string   `yaml:"gin_mode"`
	} `yaml:"server"`
	Auth struct {
		JWTSecret         string        `yaml:"jwt_secret"`
		TokenTTL          time.Duration `yaml:"token_ttl"`
		LoginPerMinute    int           `yaml:"login_per_minute"`
		LoginBurst        int           `yaml:"login_burst"`
		BootstrapUsername string        `yaml:"bootstrap_username"`
		BootstrapPassword string        `yaml:"bootstrap_password"`
	} `yaml:"auth"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Default returns the configuration used when neither a file nor the environment set a value.
func Default() *Config {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "sport_club_user"
	cfg.Database.Password = "sport_club_password"
	cfg.Database.DBName = "sport_club_db"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxConns = 25
	cfg.Server.Port = "8080"
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	cfg.Server.GinMode = "release"
	cfg.Auth.JWTSecret = defaultJWTSecret
	cfg.Auth.TokenTTL = 12 * time.Hour
	cfg.Auth.LoginPerMinute = 10
	cfg.Auth.LoginBurst = 5
	cfg.Log.Level = "info"
	cfg.Log.Pretty = true
	return cfg
}

// Load reads path (if non-empty) on top of Default and applies environment overrides.
// A missing file is an error only when the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.Host = utils.Getenv("DB_HOST", c.Database.Host)
	c.Database.Port = utils.Getenv("DB_PORT", c.Database.Port)
	c.Database.User = utils.Getenv("DB_USER", c.Database.User)
	c.Database.Password = utils.Getenv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = utils.Getenv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = utils.Getenv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxConns = utils.GetenvInt("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.SchemaPath = utils.Getenv("DB_SCHEMA_PATH", c.Database.SchemaPath)

	c.Server.Port = utils.Getenv("PORT", c.Server.Port)
	c.Server.AllowedOrigins = utils.GetenvList("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.GinMode = utils.Getenv("GIN_MODE", c.Server.GinMode)

	c.Auth.JWTSecret = utils.Getenv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.TokenTTL = utils.GetenvDuration("JWT_TTL", c.Auth.TokenTTL)
	c.Auth.LoginPerMinute = utils.GetenvInt("LOGIN_PER_MINUTE", c.Auth.LoginPerMinute)
	c.Auth.LoginBurst = utils.GetenvInt("LOGIN_BURST", c.Auth.LoginBurst)
	c.Auth.BootstrapUsername = utils.Getenv("BOOTSTRAP_ADMIN_USERNAME", c.Auth.BootstrapUsername)
	c.Auth.BootstrapPassword = utils.Getenv("BOOTSTRAP_ADMIN_PASSWORD", c.Auth.BootstrapPassword)

	c.Log.Level = utils.Getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = utils.GetenvBool("LOG_PRETTY", c.Log.Pretty)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if utils.IsEmpty(c.Server.Port) {
		errs = append(errs, errors.New("server port is required"))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("at least one allowed CORS origin is required"))
	}
	if utils.IsEmpty(c.Auth.JWTSecret) {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.Auth.LoginPerMinute <= 0 {
		errs = append(errs, errors.New("login_per_minute must be positive"))
	}
	if c.Auth.LoginBurst <= 0 {
		errs = append(errs, errors.New("login_burst must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// UsesDefaultSecret reports whether the JWT secret was left at its built-in value.
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == defaultJWTSecret
}

// DSN returns the lib/pq connection string.
func (c *Config) DSN() string {
	d := c.Database
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
