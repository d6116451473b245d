package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	EnvFile       = ".env"
	ConfigFileEnv = "PORTAL_CONFIG"

	devCookieSecret = "dev-only-cookie-secret"
)

var ErrDevCookieSecret = errors.New("PORTAL_COOKIE_SECRET must be set outside the dev environment")

var Config PortalConfig

func init() {
	// Missing .env is the normal case in production.
	_ = godotenv.Load(EnvFile)

	cfg, err := Load(os.Getenv)
	if err != nil {
		panic(err)
	}
	Config = cfg
}

func Defaults() PortalConfig {
	return PortalConfig{
		Env:          Dev,
		Addr:         ":9001",
		BaseUrl:      "http://localhost:9001",
		LogLevelName: "info",
		API: APIConfig{
			BaseUrl: "http://localhost:5000/api",
			Timeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			CookieSecret: devCookieSecret,
		},
		Jobs: JobsConfig{
			FeaturedRefresh: 5 * time.Minute,
		},
	}
}

// Load builds the config from defaults, then the YAML file named by
// PORTAL_CONFIG (if any), then individual PORTAL_* variables.
func Load(getenv func(string) string) (PortalConfig, error) {
	cfg := Defaults()

	if path := getenv(ConfigFileEnv); path != "" {
		contents, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
		if err == nil {
			if err := yaml.Unmarshal(contents, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevelName))
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = level
	if cfg.Env != Dev && (cfg.Auth.CookieSecret == "" || cfg.Auth.CookieSecret == devCookieSecret) {
		return cfg, ErrDevCookieSecret
	}
	cfg.BaseUrl = strings.TrimSuffix(cfg.BaseUrl, "/")
	cfg.API.BaseUrl = strings.TrimSuffix(cfg.API.BaseUrl, "/")

	return cfg, nil
}

func applyEnv(cfg *PortalConfig, getenv func(string) string) error {
	str := func(name string, dest *string) {
		if v := getenv(name); v != "" {
			*dest = v
		}
	}
	str("PORTAL_ADDR", &cfg.Addr)
	str("PORTAL_BASE_URL", &cfg.BaseUrl)
	str("PORTAL_LOG_LEVEL", &cfg.LogLevelName)
	str("PORTAL_API_URL", &cfg.API.BaseUrl)
	str("PORTAL_COOKIE_DOMAIN", &cfg.Auth.CookieDomain)
	str("PORTAL_COOKIE_SECRET", &cfg.Auth.CookieSecret)

	if v := getenv("PORTAL_ENV"); v != "" {
		cfg.Env = Environment(v)
	}
	if v := getenv("PORTAL_COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		cfg.Auth.CookieSecure = b
	}
	if v := getenv("PORTAL_LIVE_TEMPLATES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		cfg.DevConfig.LiveTemplates = b
	}
	if v := getenv("PORTAL_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.API.Timeout = d
	}
	if v := getenv("PORTAL_FEATURED_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.Jobs.FeaturedRefresh = d
	}

	return nil
}
