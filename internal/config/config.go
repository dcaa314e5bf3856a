package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Detector
	DetectorType string `envconfig:"DETECTOR_TYPE" default:"yoloserve"`
	DetectorURL  string `envconfig:"DETECTOR_URL" default:"http://localhost:8000"`

	// Mail
	MailerType   string `envconfig:"MAILER_TYPE" default:"smtp"`
	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	MailAddress  string `envconfig:"EMAIL_ADDRESS"`
	MailPassword string `envconfig:"EMAIL_PASSWORD"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
