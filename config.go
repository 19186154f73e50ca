package blogtok

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a blogtok site.
type Config struct {
	Name        string `yaml:"name"`        // Site name fallback when site_settings has none (default "BlogTok")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Fallback site description

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/blog.db")
	StaticDir    string `yaml:"static_dir"`    // Front end and uploads (default "public")
	Environment  string `yaml:"environment"`   // Reported by /api/health (default "development")

	AdminUsername string `yaml:"admin_username"` // Bootstrap admin name (default "admin")
	AdminPassword string `yaml:"admin_password"` // Required only when no admin exists yet
	SessionSecret string `yaml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	LogLevel     string `yaml:"log_level"`     // zerolog level (default "info")
	LogPretty    bool   `yaml:"log_pretty"`    // Console writer instead of JSON
	ExposeErrors bool   `yaml:"expose_errors"` // Return raw storage errors in 500 bodies

	CacheTTL       time.Duration `yaml:"cache_ttl"`        // Article cache TTL (default 5min)
	MaxUploadBytes int64         `yaml:"max_upload_bytes"` // Image upload cap (default 5MB)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "BlogTok"
	}
	if c.Description == "" {
		c.Description = "A modern blogging platform"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 5 << 20
	}
}

// LoadConfig reads the YAML file at path, if any, applies environment
// overrides and fills defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, nil
}

// applyEnv overrides fields from BLOGTOK_* variables. The unprefixed
// PORT, ADMIN_USERNAME and ADMIN_PASSWORD are honoured for deployments
// that already set them.
func (c *Config) applyEnv() error {
	c.Name = EnvOr("BLOGTOK_SITE_NAME", c.Name)
	c.URL = EnvOr("BLOGTOK_SITE_URL", c.URL)
	c.Description = EnvOr("BLOGTOK_SITE_DESCRIPTION", c.Description)
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	c.Addr = EnvOr("BLOGTOK_ADDR", c.Addr)
	c.DatabasePath = EnvOr("BLOGTOK_DATABASE_PATH", c.DatabasePath)
	c.StaticDir = EnvOr("BLOGTOK_STATIC_DIR", c.StaticDir)
	c.Environment = EnvOr("BLOGTOK_ENV", c.Environment)
	c.AdminUsername = EnvOr("BLOGTOK_ADMIN_USERNAME", EnvOr("ADMIN_USERNAME", c.AdminUsername))
	c.AdminPassword = EnvOr("BLOGTOK_ADMIN_PASSWORD", EnvOr("ADMIN_PASSWORD", c.AdminPassword))
	c.SessionSecret = EnvOr("BLOGTOK_SESSION_SECRET", c.SessionSecret)
	c.LogLevel = EnvOr("BLOGTOK_LOG_LEVEL", c.LogLevel)

	var err error
	if c.CookieSecure, err = envBool("BLOGTOK_COOKIE_SECURE", c.CookieSecure); err != nil {
		return err
	}
	if c.LogPretty, err = envBool("BLOGTOK_LOG_PRETTY", c.LogPretty); err != nil {
		return err
	}
	if c.ExposeErrors, err = envBool("BLOGTOK_EXPOSE_ERRORS", c.ExposeErrors); err != nil {
		return err
	}
	if v := os.Getenv("BLOGTOK_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BLOGTOK_CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}
	if v := os.Getenv("BLOGTOK_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BLOGTOK_MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	return nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger replaces the zerolog logger used by the App.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithSeed replaces the embedded seed data used to bootstrap an empty database.
func WithSeed(s Seed) Option {
	return func(a *App) {
		a.seed = &s
	}
}
