package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/sevens/pkg/config"
	"github.com/bastiangx/sevens/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWorkspace writes a word list and a config pointing at it
func setupWorkspace(t *testing.T) (cfgPath string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("Pickles\nparsley\nplayers\napple\npickles\nreplays\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Dict.Path = words
	cfg.Dict.ChunkSize = 2
	cfg.Dict.Quiet = true
	cfg.Board.CacheDir = filepath.Join(dir, "boards")
	cfgPath = filepath.Join(dir, "config.toml")
	require.NoError(t, config.SaveConfig(cfg, cfgPath))
	return cfgPath
}

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestPackCommand(t *testing.T) {
	cfgPath := setupWorkspace(t)
	outDir := filepath.Join(t.TempDir(), "chunks")

	out := execute(t, "", "--config", cfgPath, "pack", outDir)
	assert.Contains(t, out, "wrote 4 words in 2 chunks")

	chunks, err := dictionary.ListChunks(outDir)
	require.NoError(t, err)
	assert.Len(t, chunks, 2)

	var got []string
	require.NoError(t, dictionary.Open(outDir).Each(func(w string) { got = append(got, w) }))
	assert.Equal(t, []string{"parsley", "pickles", "players", "replays"}, got)
}

func TestPackCommandFlagsOverrideConfig(t *testing.T) {
	cfgPath := setupWorkspace(t)
	outDir := filepath.Join(t.TempDir(), "chunks")

	out := execute(t, "", "--config", cfgPath, "pack", outDir, "-w", "5", "--chunk", "10")
	assert.Contains(t, out, "wrote 5 words in 1 chunks")
}

func TestQueryCommand(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out := execute(t, "yelspar\n:w apple\n", "--config", cfgPath, "query")
	assert.Contains(t, out, "3 words for 'yelspar':\n  parsley  players  replays\n")
	assert.Contains(t, out, `word "apple": false`)
}

func TestMissingWordList(t *testing.T) {
	cfgPath := setupWorkspace(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfgPath, "query", "--dict-path", filepath.Join(t.TempDir(), "nope.txt")})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
