package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Report.MaxRows)
	assert.Equal(t, 30, cfg.Report.MaxCellWidth)
	assert.False(t, cfg.Report.NoTruncate)
	assert.Equal(t, "table", cfg.Report.Format)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 300, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, "datasets", cfg.Storage.Bucket)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("REPORT_MAX_ROWS", "5")
	t.Setenv("REPORT_NO_TRUNCATE", "true")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SERVER_API_KEY", "secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Report.MaxRows)
	assert.True(t, cfg.Report.NoTruncate)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REPORT_MAX_CELL_WIDTH=12\nLOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("REPORT_MAX_CELL_WIDTH")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Report.MaxCellWidth)
	assert.Equal(t, "debug", cfg.Log.Level)
}
