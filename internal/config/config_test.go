package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)

	assert.Equal(t, "rome", cfg.Game.CurrentCity)
	assert.Equal(t, time.Second, cfg.Game.TickInterval)
	assert.Equal(t, 60, cfg.Game.TradeCycleTicks)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	require.Contains(t, cfg.Cities, "rome")
	assert.Equal(t, 10, cfg.Cities["rome"].Size)
}

func TestValidateConfigRejectsBadDensity(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Cities["rome"].DepositDensity["coal"] = 1.7

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max")
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
game:
  current_city: athens
  trade_cycle_ticks: 30
cities:
  athens:
    size: 12
    deposit_density:
      stone: 0.25
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "athens", cfg.Game.CurrentCity)
	assert.Equal(t, 30, cfg.Game.TradeCycleTicks)
	require.Contains(t, cfg.Cities, "athens")
	assert.Equal(t, 12, cfg.Cities["athens"].Size)
	assert.InDelta(t, 0.25, cfg.Cities["athens"].DepositDensity["stone"], 1e-9)
	// Defaults still fill the gaps
	assert.Equal(t, time.Second, cfg.Game.TickInterval)
}

func TestLoadConfigOrDefaultFallsBack(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, "rome", cfg.Game.CurrentCity)
}
