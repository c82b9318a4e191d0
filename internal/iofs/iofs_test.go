package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/startuplens/entres/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	// idempotent
	for range 3 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "entres"),
		filepath.Join(tmpDir, ".cache", "entres"),
		filepath.Join(tmpDir, ".local", "share", "entres"),
		filepath.Join(tmpDir, ".local", "share", "entres", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "test", "subdir")
	err := touchDir(newDir)
	require.NoError(t, err)
	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// a regular file in the way
	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	err = touchDir(filepath.Join(file, "sub"))
	assert.Error(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	err := EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	path := config.ConfigFilePath(tmpDir)
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(bs))

	// user edits survive
	custom := []byte("log:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, custom, 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	bs, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, bs)
}

func TestEnsureConfigFileNoDir(t *testing.T) {
	err := EnsureConfigFile(filepath.Join(t.TempDir(), "nowhere"))
	assert.Error(t, err)
}

// TestConfigYAMLDefaults checks that the embedded template agrees with
// config.New().
func TestConfigYAMLDefaults(t *testing.T) {
	var cfg config.Config
	err := yaml.Unmarshal([]byte(ConfigYAML), &cfg)
	require.NoError(t, err)

	def := config.New()
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Resolve, cfg.Resolve)
	assert.Equal(t, def.Log, cfg.Log)
}
