package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigOverridesSomeFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[dict]
path = "/tmp/words.txt"
min_length = 5

[server]
max_results = 10
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/words.txt", cfg.Dict.Path)
	assert.Equal(t, 5, cfg.Dict.MinLength)
	assert.Equal(t, 10, cfg.Server.MaxResults)
	assert.Equal(t, DefaultConfig().Board, cfg.Board)
	assert.Equal(t, DefaultConfig().Server.MaxQuery, cfg.Server.MaxQuery)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	// min_length has the wrong type, so the strict decode fails and sections are read one by one
	require.NoError(t, os.WriteFile(path, []byte(`
[dict]
min_length = "seven"
quiet = true

[board]
cache_dir = "cache"
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Dict.Quiet)
	assert.Equal(t, DefaultConfig().Dict.MinLength, cfg.Dict.MinLength)
	assert.Equal(t, "cache", cfg.Board.CacheDir)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[[[ not toml"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriority(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(custom, []byte("[dict]\nmin_length = 4\n"), 0644))
	defaultPath := filepath.Join(dir, "default", FileName)

	cfg, used := LoadConfigWithPriority(custom, defaultPath)
	assert.Equal(t, custom, used)
	assert.Equal(t, 4, cfg.Dict.MinLength)

	cfg, used = LoadConfigWithPriority(filepath.Join(dir, "missing.toml"), defaultPath)
	assert.Equal(t, defaultPath, used)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, defaultPath)

	cfg, used = LoadConfigWithPriority("", "")
	assert.Empty(t, used)
	assert.Equal(t, DefaultConfig(), cfg)
}
