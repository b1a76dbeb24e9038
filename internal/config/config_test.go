package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.True(t, cfg.Security.RateLimit.Enabled)

	assert.Equal(t, -0.1, cfg.Forecast.GrowthClipMin)
	assert.Equal(t, 1.3, cfg.Forecast.GrowthClipMax)
	assert.Equal(t, 6, cfg.Forecast.AllowedWindowWeeks)
	assert.False(t, cfg.Forecast.ThreeWeekAdjust)
	assert.Equal(t, 0.2, cfg.Forecast.AdjustThreshold)
	assert.Equal(t, 3, cfg.Forecast.AdjustWindowWeeks)

	assert.Equal(t, 22, cfg.Reconcile.PlannedRowCount)
	assert.Equal(t, []string{"SAO_PAULO", "RIO_DE_JANEIRO"}, cfg.Reconcile.NamedRegions)
	assert.Equal(t, "OTHER_REGIONS", cfg.Reconcile.AggregateOrigin)
	assert.Equal(t, "NATIONAL", cfg.Reconcile.NationalOrigin)

	require.NoError(t, cfg.Validate())
}

func TestOriginsBlockOrder(t *testing.T) {
	cfg := Default()
	assert.Equal(t,
		[]string{"OTHER_REGIONS", "NATIONAL", "SAO_PAULO", "RIO_DE_JANEIRO"},
		cfg.Reconcile.Origins())
}

func TestLoadAppliesEnvironment(t *testing.T) {
	t.Setenv("BASELINE_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("BASELINE_SERVER_PORT", "9090")
	t.Setenv("BASELINE_FORECAST_ALLOWED_WINDOW_WEEKS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Forecast.AllowedWindowWeeks)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("BASELINE_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("BASELINE_LOGGING_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))
	t.Setenv("BASELINE_CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestValidateRejectsInvertedClipBounds(t *testing.T) {
	cfg := Default()
	cfg.Forecast.GrowthClipMin = 2.0 // above the max
	require.Error(t, cfg.Validate())
}
