// internal/config/config.go
package config

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	defaultTokenTTLMinutes        = 24 * 60
	defaultShutdownTimeoutSeconds = 10
	defaultLoginMaxAttempts       = 5
	defaultLoginWindowSeconds     = 15 * 60
	defaultPhoneRegion            = "RS"
	defaultOverdueResultsCron     = "0 9 * * *"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type LeagueConfig struct {
	// Language is a BCP 47 tag used to collate team names on ties.
	Language    string `yaml:"language"`
	PhoneRegion string `yaml:"phone_region"`
	// FixtureFile switches standings to a read-only YAML data set.
	FixtureFile string `yaml:"fixture_file,omitempty"`
}

type AuthConfig struct {
	TokenTTLMinutes    int `yaml:"token_ttl_minutes"`
	LoginMaxAttempts   int `yaml:"login_max_attempts"`
	LoginWindowSeconds int `yaml:"login_window_seconds"`
}

type EmailConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Region           string   `yaml:"region"`
	Sender           string   `yaml:"sender"`
	NotifyRecipients []string `yaml:"notify_recipients"`
}

type SchedulerConfig struct {
	OverdueResultsCron string `yaml:"overdue_results_cron"`
}

type Config struct {
	App struct {
		Name                   string   `yaml:"name"`
		Environment            string   `yaml:"environment"`
		Port                   int      `yaml:"port"`
		BaseURL                string   `yaml:"base_url"`
		CORSOrigins            []string `yaml:"cors_origins"`
		ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
		SecretKey              string   `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database  DatabaseConfig  `yaml:"database"`
	League    LeagueConfig    `yaml:"league"`
	Auth      AuthConfig      `yaml:"auth"`
	Email     EmailConfig     `yaml:"email"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.ShutdownTimeoutSeconds == 0 {
		c.App.ShutdownTimeoutSeconds = defaultShutdownTimeoutSeconds
	}
	if c.League.Language == "" {
		c.League.Language = "und"
	}
	if c.League.PhoneRegion == "" {
		c.League.PhoneRegion = defaultPhoneRegion
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = defaultTokenTTLMinutes
	}
	if c.Auth.LoginMaxAttempts == 0 {
		c.Auth.LoginMaxAttempts = defaultLoginMaxAttempts
	}
	if c.Auth.LoginWindowSeconds == 0 {
		c.Auth.LoginWindowSeconds = defaultLoginWindowSeconds
	}
	if c.Scheduler.OverdueResultsCron == "" {
		c.Scheduler.OverdueResultsCron = defaultOverdueResultsCron
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if c.App.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}
	if c.IsProduction() && len(c.App.SecretKey) < 32 {
		return fmt.Errorf("APP_SECRET_KEY must be at least 32 characters in production")
	}
	for _, origin := range c.App.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors origins must not be blank")
		}
	}

	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if _, err := language.Parse(c.League.Language); err != nil {
		return fmt.Errorf("invalid league language %q: %w", c.League.Language, err)
	}
	if len(c.League.PhoneRegion) != 2 {
		return fmt.Errorf("league phone region must be a two-letter region code")
	}

	if c.Auth.TokenTTLMinutes < 0 {
		return fmt.Errorf("auth token ttl must not be negative")
	}
	if c.Auth.LoginMaxAttempts < 0 || c.Auth.LoginWindowSeconds < 0 {
		return fmt.Errorf("auth login limits must not be negative")
	}

	if c.Email.Enabled {
		if c.Email.Region == "" {
			return fmt.Errorf("email region is required when email is enabled")
		}
		if _, err := mail.ParseAddress(c.Email.Sender); err != nil {
			return fmt.Errorf("invalid email sender %q: %w", c.Email.Sender, err)
		}
		for _, recipient := range c.Email.NotifyRecipients {
			if _, err := mail.ParseAddress(recipient); err != nil {
				return fmt.Errorf("invalid notify recipient %q: %w", recipient, err)
			}
		}
	}

	if _, err := cron.ParseStandard(c.Scheduler.OverdueResultsCron); err != nil {
		return fmt.Errorf("invalid overdue results cron %q: %w", c.Scheduler.OverdueResultsCron, err)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

func (c *Config) LoginWindow() time.Duration {
	return time.Duration(c.Auth.LoginWindowSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

// LeagueLanguage returns the parsed collation tag. Validate guarantees it parses.
func (c *Config) LeagueLanguage() language.Tag {
	tag, err := language.Parse(c.League.Language)
	if err != nil {
		return language.Und
	}
	return tag
}
