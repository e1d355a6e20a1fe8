package config_test

import (
	"os"
	"testing"

	"github.com/karssart/seal/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoad_EnvVar(t *testing.T) {
	os.Setenv("SEAL_THEME", "dark")
	defer os.Unsetenv("SEAL_THEME")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestConfigPath(t *testing.T) {
	path, err := config.Path()
	assert.NoError(t, err)
	assert.Contains(t, path, ".seal/config.yaml")
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, 1000, cfg.HistorySize)
}
