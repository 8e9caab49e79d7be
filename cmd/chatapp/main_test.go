package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatapp", "config.toml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.TryLoad(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInitRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := execute(t, "init", "--config", path)
	require.NoError(t, err)

	_, err = execute(t, "init", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestRunWithMissingConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	_, err := execute(t, "--config", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigMissing)
	assert.Contains(t, err.Error(), "chatapp init")
}
