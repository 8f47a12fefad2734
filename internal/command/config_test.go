package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tensorlogic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 4\nformat: yaml\nparallel: false\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Precision)
	assert.Equal(t, "yaml", cfg.Format)
	assert.False(t, cfg.Parallel)
	assert.Equal(t, DefaultConfig().Tokenizer, cfg.Tokenizer, "missing keys keep defaults")
	assert.Equal(t, DefaultConfig().Workers, cfg.Workers)
}

func TestLoadConfig_Default(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("precision: [1"), 0o600))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("precision: -1\n"), 0o600))
	_, err = LoadConfig(negative)
	assert.Error(t, err)
}
