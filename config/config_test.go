package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "db-prs.sqlite", cfg.DB.Path)
	assert.Equal(t, SavedQueriesBackendFile, cfg.SavedQueries.Backend)
	assert.Equal(t, "userQueries", cfg.SavedQueries.Key)
	assert.Equal(t, 10, cfg.Seed.DefaultCount)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nDB_DRIVER=POSTGRES\nDB_NAME=clinic\nSEED_DEFAULT_COUNT=25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "clinic", cfg.DB.Name)
	assert.Equal(t, 25, cfg.Seed.DefaultCount)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_PATH=from-file.sqlite\n"), 0o600))
	t.Setenv("DB_PATH", "from-env.sqlite")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.sqlite", cfg.DB.Path)
}
