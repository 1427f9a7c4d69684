package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP host listens on
		Port string `env:"PORT" envDefault:"5250"`

		// Comma separated list of origins allowed by CORS
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	// Data configuration
	Data struct {
		// Path to the dataset, CSV or SQLite snapshot
		Path string `env:"DATA_PATH" envDefault:"houses_to_rent_v2.csv"`

		// Reload the dataset when the file changes on disk
		Reload bool `env:"DATA_RELOAD" envDefault:"true"`
	}

	// Log configuration
	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	// Chart rendering configuration
	Chart struct {
		Width  int `env:"CHART_WIDTH" envDefault:"800"`
		Height int `env:"CHART_HEIGHT" envDefault:"400"`
	}
}

// LoadConfig reads an optional .env file and then parses the environment.
func LoadConfig() (*Config, error) {
	// A missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger builds the JSON logger every component shares.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.TrimSpace(c.Log.Level))
	if err != nil {
		logger.WithField("level", c.Log.Level).Warn("Unknown log level, falling back to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
