// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Site     SiteConfig     `mapstructure:"site"`
	Shell    ShellConfig    `mapstructure:"shell"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port                   int `mapstructure:"port"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds"`
}

// UpstreamConfig points at the external content API. APIOrigin has no
// default on purpose: a missing value must fail startup rather than silently
// target a live backend.
type UpstreamConfig struct {
	APIOrigin      string `mapstructure:"api_origin"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SiteConfig identifies the publication in synthesized metadata.
type SiteConfig struct {
	Origin  string `mapstructure:"origin"`
	Name    string `mapstructure:"name"`
	LogoURL string `mapstructure:"logo_url"`
}

// ShellConfig locates the static client application shell.
type ShellConfig struct {
	Origin string `mapstructure:"origin"`
	Path   string `mapstructure:"path"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SEORENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// AutomaticEnv only resolves keys viper already knows about, so bind the
	// ones that deliberately have no default.
	for _, key := range []string{"upstream.api_origin", "site.origin", "shell.origin"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("upstream.timeout_seconds", 8)
	v.SetDefault("site.name", "Cry808")
	v.SetDefault("site.logo_url", "https://cry808.com/logo.png")
	v.SetDefault("shell.path", "/index.html")
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Upstream.APIOrigin == "" {
		return fmt.Errorf("upstream.api_origin is required")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("upstream.timeout_seconds must be > 0")
	}
	if c.Site.Origin == "" {
		return fmt.Errorf("site.origin is required")
	}
	if c.Shell.Origin == "" {
		return fmt.Errorf("shell.origin is required")
	}
	return nil
}

// UpstreamTimeout converts the upstream timeout config into a duration.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// ShutdownTimeout bounds graceful server drain.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}
