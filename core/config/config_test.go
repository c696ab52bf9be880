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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3, cfg.DBLP.IntervalSeconds)
	assert.Equal(t, 1000, cfg.DBLP.MaxResults)
	assert.Equal(t, "https://dblp.org/search/publ/api?q={query}&h={max}&format=xml", cfg.DBLP.SearchURL)
	assert.Equal(t, -1, cfg.Clean.MaxRecords)
	assert.Equal(t, 10, cfg.Clean.TooManyThreshold)
	assert.Equal(t, "dblpkey", cfg.Clean.ExternalKeyField)
	assert.True(t, cfg.Clean.DedupeParents)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	env := "CLEAN_MAX_RECORDS=5\nDBLP_INTERVAL_SECONDS=1\nCLEAN_DEDUPE_PARENTS=false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CLEAN_MAX_RECORDS")
		os.Unsetenv("DBLP_INTERVAL_SECONDS")
		os.Unsetenv("CLEAN_DEDUPE_PARENTS")
	})

	t.Setenv("CLEAN_TOO_MANY_THRESHOLD", "20")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Clean.MaxRecords)
	assert.Equal(t, 1, cfg.DBLP.IntervalSeconds)
	assert.False(t, cfg.Clean.DedupeParents)
	assert.Equal(t, 20, cfg.Clean.TooManyThreshold)
}
