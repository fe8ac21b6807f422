package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `roots:
  - audittest.4gm
  - orders.4gm

exclude:
  - "**/*.log"
  - "tmp/**"

out: audit.parquet
no_git: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"audittest.4gm", "orders.4gm"}, cfg.Roots)
	assert.Equal(t, []string{"**/*.log", "tmp/**"}, cfg.Exclude)
	assert.Equal(t, "audit.parquet", cfg.Out)
	assert.True(t, cfg.NoGit)
}

func TestLoad_Minimal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("roots: [audittest.4gm]\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"audittest.4gm"}, cfg.Roots)
	assert.Empty(t, cfg.Exclude)
	assert.Empty(t, cfg.Out)
	assert.False(t, cfg.NoGit)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("roots: [unclosed\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigNotFound))
}

func TestRootsFromEnv(t *testing.T) {
	t.Setenv(EnvRoots, "audittest.4gm, orders.4gm,,  ")
	assert.Equal(t, []string{"audittest.4gm", "orders.4gm"}, RootsFromEnv())

	t.Setenv(EnvRoots, "")
	assert.Nil(t, RootsFromEnv())
}

func TestOutFromEnv(t *testing.T) {
	t.Setenv(EnvOut, "  combined.csv ")
	assert.Equal(t, "combined.csv", OutFromEnv())
}
