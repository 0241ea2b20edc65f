// config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Port  string `toml:"port"`
	Debug bool   `toml:"debug"`

	Store StoreConfig `toml:"store"`
	Login LoginConfig `toml:"login"`
	Web   WebConfig   `toml:"web"`
	R2    R2Config    `toml:"r2"`

	SessionTTL     time.Duration `toml:"-"`
	HealthInterval time.Duration `toml:"-"`

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool `toml:"-"`
}

type StoreConfig struct {
	Driver        string `toml:"driver"`
	MongoURI      string `toml:"mongo_uri"`
	MongoUsername string `toml:"mongo_username"`
	MongoPassword string `toml:"mongo_password"`
	MongoHost     string `toml:"mongo_host"`
	MongoDatabase string `toml:"mongo_database"`
	DatabaseURL   string `toml:"database_url"`
}

// LoginConfig holds the single set of credentials that unlocks the input forms.
type LoginConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type WebConfig struct {
	PagesDir       string `toml:"pages_dir"`
	StaticDir      string `toml:"static_dir"`
	AllowedOrigins string `toml:"allowed_origins"`
	SessionTTL     string `toml:"session_ttl"`
	HealthInterval string `toml:"health_interval"`
}

type R2Config struct {
	AccountID       string `toml:"account_id"`
	AccessKeyID     string `toml:"access_key_id"`
	AccessKeySecret string `toml:"access_key_secret"`
	Bucket          string `toml:"bucket"`
	CDNBaseURL      string `toml:"cdn_base_url"`
}

// Enabled reports whether picture uploads are configured.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.AccessKeyID != "" && r.AccessKeySecret != "" && r.Bucket != ""
}

func defaults() *Config {
	return &Config{
		Port: "5000",
		Store: StoreConfig{
			Driver:        "mongo",
			MongoDatabase: "pokedex",
		},
		Web: WebConfig{
			PagesDir:       "./pages",
			StaticDir:      "./css",
			AllowedOrigins: "*",
			SessionTTL:     "24h",
			HealthInterval: "1m",
		},
	}
}

// Load reads .env (if present), then the optional TOML file at path, then the
// process environment. Later sources win.
func Load(path string) (*Config, error) {
	envErr := godotenv.Load()
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", envErr)
	}

	cfg := defaults()
	cfg.EnvFileLoaded = envErr == nil
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(cfg.Web.SessionTTL); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", cfg.Web.SessionTTL, err)
	}
	if cfg.HealthInterval, err = time.ParseDuration(cfg.Web.HealthInterval); err != nil {
		return nil, fmt.Errorf("invalid HEALTH_INTERVAL %q: %w", cfg.Web.HealthInterval, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Port, "PORT")
	if v, ok := os.LookupEnv("DEBUG"); ok {
		c.Debug, _ = strconv.ParseBool(v)
	}

	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.MongoURI, "MONGODB_URI")
	setString(&c.Store.MongoUsername, "MONGODB_USERNAME")
	setString(&c.Store.MongoPassword, "MONGODB_PASSWORD")
	setString(&c.Store.MongoHost, "MONGODB_HOST")
	setString(&c.Store.MongoDatabase, "MONGODB_DATABASE")
	setString(&c.Store.DatabaseURL, "DATABASE_URL")

	setString(&c.Login.Username, "LOGIN_USERNAME")
	setString(&c.Login.Password, "LOGIN_PASSWORD")

	setString(&c.Web.PagesDir, "PAGES_DIR")
	setString(&c.Web.StaticDir, "STATIC_DIR")
	setString(&c.Web.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&c.Web.SessionTTL, "SESSION_TTL")
	setString(&c.Web.HealthInterval, "HEALTH_INTERVAL")

	setString(&c.R2.AccountID, "CLOUDFLARE_ACCOUNT_ID")
	setString(&c.R2.AccessKeyID, "R2_ACCESS_KEY_ID")
	setString(&c.R2.AccessKeySecret, "R2_ACCESS_KEY_SECRET")
	setString(&c.R2.Bucket, "R2_BUCKET_NAME")
	setString(&c.R2.CDNBaseURL, "CDN_BASE_URL")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// MongoConnectionURI returns MONGODB_URI when set, otherwise an SRV URI assembled from
// host and credentials.
func (s StoreConfig) MongoConnectionURI() string {
	if s.MongoURI != "" {
		return s.MongoURI
	}
	if s.MongoHost == "" {
		return ""
	}
	u := url.URL{Scheme: "mongodb+srv", Host: s.MongoHost, Path: "/"}
	if s.MongoUsername != "" {
		u.User = url.UserPassword(s.MongoUsername, s.MongoPassword)
	}
	return u.String()
}

// Validate reports the first missing setting the service cannot start without.
func (c *Config) Validate() error {
	if c.Login.Username == "" || c.Login.Password == "" {
		return errors.New("LOGIN_USERNAME and LOGIN_PASSWORD must be set")
	}
	switch c.Store.Driver {
	case "mongo":
		if c.Store.MongoConnectionURI() == "" {
			return errors.New("MONGODB_URI or MONGODB_HOST must be set for the mongo store")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for the postgres store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.HealthInterval <= 0 {
		return errors.New("HEALTH_INTERVAL must be positive")
	}
	return nil
}
