package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "timetrack.db"), cfg.Database.Path)
	assert.Equal(t, "default", cfg.User.ID)
	assert.Equal(t, filepath.Join(dir, "exports"), cfg.Export.Dir)
	assert.Equal(t, "EUR", cfg.Export.Currency)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("database:\n  path: /tmp/custom.db\nuser:\n  id: anders\nexport:\n  currency: NOK\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, "anders", cfg.User.ID)
	assert.Equal(t, "NOK", cfg.Export.Currency)
	assert.Equal(t, filepath.Join(dir, "exports"), cfg.Export.Dir, "unset keys keep defaults")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("user:\n  id: anders\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("TIMETRACK_USER_ID", "override")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "override", cfg.User.ID)
}

func TestLoad_MalformedConfigFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
