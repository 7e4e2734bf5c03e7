package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/masego-dev/clubctl/internal/session"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string `env:"CLUBCTL_SERVER" envDefault:"http://localhost:8080"`
	SessionFile string `env:"CLUBCTL_SESSION_FILE"`
	Output      string `env:"CLUBCTL_OUTPUT" envDefault:"text"`
	Verbose     bool   `env:"CLUBCTL_VERBOSE"`
}

// LoadConfig reads configuration from the environment
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = session.DefaultPath()
	}
	return cfg, nil
}
