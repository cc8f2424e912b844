package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

const baseConfig = `
app:
  name: District Padel League
  port: 8080
database:
  driver: sqlite
  filename: data/league.db
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(baseConfig))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Fatalf("environment = %q, want development", cfg.App.Environment)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Fatalf("TokenTTL() = %v, want 24h", cfg.TokenTTL())
	}
	if cfg.League.PhoneRegion != "RS" {
		t.Fatalf("phone region = %q, want RS", cfg.League.PhoneRegion)
	}
	if cfg.LeagueLanguage() != language.Und {
		t.Fatalf("LeagueLanguage() = %v, want und", cfg.LeagueLanguage())
	}
	if cfg.Scheduler.OverdueResultsCron != defaultOverdueResultsCron {
		t.Fatalf("overdue cron = %q", cfg.Scheduler.OverdueResultsCron)
	}
	if cfg.ShutdownTimeout() != 10*time.Second {
		t.Fatalf("ShutdownTimeout() = %v, want 10s", cfg.ShutdownTimeout())
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		extra   string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad cron",
			extra:   "scheduler:\n  overdue_results_cron: \"every day\"\n",
			wantErr: "overdue results cron",
		},
		{
			name:    "bad language",
			extra:   "league:\n  language: \"not a tag!\"\n",
			wantErr: "league language",
		},
		{
			name:    "email without sender",
			extra:   "email:\n  enabled: true\n  region: eu-central-1\n",
			wantErr: "email sender",
		},
		{
			name:    "bad recipient",
			extra:   "email:\n  enabled: true\n  region: eu-central-1\n  sender: league@example.com\n  notify_recipients: [\"nope\"]\n",
			wantErr: "notify recipient",
		},
		{
			name:    "unsupported driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: "unsupported database driver",
		},
		{
			name:    "production without secret",
			mutate:  func(c *Config) { c.App.Environment = "production" },
			wantErr: "APP_SECRET_KEY",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.App.Port = 70000 },
			wantErr: "app port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(baseConfig + tt.extra))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err = cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsSecretFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(baseConfig+"league:\n  language: sr-Latn\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_SECRET_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	// godotenv never overrides variables that are already set.
	t.Setenv("APP_SECRET_KEY", "")
	os.Unsetenv("APP_SECRET_KEY")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.SecretKey != "from-dotenv" {
		t.Fatalf("secret key = %q, want from-dotenv", cfg.App.SecretKey)
	}
	if cfg.LeagueLanguage().String() != "sr-Latn" {
		t.Fatalf("LeagueLanguage() = %v, want sr-Latn", cfg.LeagueLanguage())
	}
}
