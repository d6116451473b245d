package config

import (
	"time"

	"github.com/rs/zerolog"
)

type Environment string

const (
	Live Environment = "live"
	Beta Environment = "beta"
	Dev  Environment = "dev"
)

type PortalConfig struct {
	Env      Environment   `yaml:"env"`
	Addr     string        `yaml:"addr"`
	BaseUrl  string        `yaml:"base_url"`
	LogLevel zerolog.Level `yaml:"-"`

	// Parsed into LogLevel after loading.
	LogLevelName string `yaml:"log_level"`

	API       APIConfig  `yaml:"api"`
	Auth      AuthConfig `yaml:"auth"`
	Jobs      JobsConfig `yaml:"jobs"`
	DevConfig DevConfig  `yaml:"dev"`
}

type APIConfig struct {
	// Base URL of the news backend, including the /api prefix.
	BaseUrl string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	CookieDomain string `yaml:"cookie_domain"`
	CookieSecure bool   `yaml:"cookie_secure"`

	// Secret used to seal the backend token into the browser cookie.
	CookieSecret string `yaml:"cookie_secret"`
}

type JobsConfig struct {
	FeaturedRefresh time.Duration `yaml:"featured_refresh"`
}

type DevConfig struct {
	LiveTemplates bool `yaml:"live_templates"`
}

func (c PortalConfig) IsDev() bool {
	return c.Env == Dev
}
