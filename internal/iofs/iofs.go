// Package iofs prepares the file system layout of entres: configuration,
// cache, data and log directories, and the default config.yaml.
package iofs

import (
	_ "embed"
	"os"

	"github.com/startuplens/entres/pkg/config"
)

// ConfigYAML is the documented default configuration written on first
// run.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache, data and log directories under
// homeDir when they are missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return HomeDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless the user already
// has one.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return WriteConfigError(configPath, err)
	}
	return nil
}
