package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "houses_to_rent_v2.csv", cfg.Data.Path)
	assert.True(t, cfg.Data.Reload)
	assert.Equal(t, 800, cfg.Chart.Width)
	assert.Equal(t, 400, cfg.Chart.Height)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_PATH", "/data/rent.sqlite")
	t.Setenv("DATA_RELOAD", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/data/rent.sqlite", cfg.Data.Path)
	assert.False(t, cfg.Data.Reload)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("CHART_WIDTH", "wide")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "chatty"

	logger := cfg.NewLogger()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
