// Package ioconfig reads config.yaml and ENTRES_ environment variables
// into a config.Config.
package ioconfig

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/startuplens/entres/internal/iofs"
	"github.com/startuplens/entres/pkg/config"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ENTRES"

// Load returns the configuration found in homeDir: defaults of
// config.New() updated by config.yaml and then by environment variables.
// A missing config.yaml is not an error. HomeDir of the result is set to
// homeDir.
func Load(homeDir string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigType("yaml")
	initEnvVars(v)

	if _, err = os.Stat(cfgPath); err == nil {
		v.SetConfigFile(cfgPath)
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadConfigError(cfgPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	var cfgViper config.Config
	if err = v.Unmarshal(&cfgViper); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	res := config.New()
	res.Update(cfgViper.ToOptions())
	res.Update([]config.Option{config.OptHomeDir(homeDir)})
	return res, nil
}

// initEnvVars binds environment variables one by one, so the list of
// supported variables is explicit. It matches config.ToOptions().
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "ENTRES_DATABASE_DRIVER")
	v.BindEnv("database.host", "ENTRES_DATABASE_HOST")
	v.BindEnv("database.port", "ENTRES_DATABASE_PORT")
	v.BindEnv("database.user", "ENTRES_DATABASE_USER")
	v.BindEnv("database.password", "ENTRES_DATABASE_PASSWORD")
	v.BindEnv("database.database", "ENTRES_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "ENTRES_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "ENTRES_DATABASE_PATH")
	v.BindEnv("database.batch_size", "ENTRES_DATABASE_BATCH_SIZE")

	// Resolve configuration
	v.BindEnv("resolve.confidence_threshold",
		"ENTRES_RESOLVE_CONFIDENCE_THRESHOLD")
	v.BindEnv("resolve.cluster_threshold", "ENTRES_RESOLVE_CLUSTER_THRESHOLD")
	v.BindEnv("resolve.model_path", "ENTRES_RESOLVE_MODEL_PATH")
	v.BindEnv("resolve.bulk_batch_size", "ENTRES_RESOLVE_BULK_BATCH_SIZE")
	v.BindEnv("resolve.commit_every", "ENTRES_RESOLVE_COMMIT_EVERY")
	v.BindEnv("resolve.stamp_merged", "ENTRES_RESOLVE_STAMP_MERGED")

	// Log configuration
	v.BindEnv("log.level", "ENTRES_LOG_LEVEL")
	v.BindEnv("log.format", "ENTRES_LOG_FORMAT")
	v.BindEnv("log.destination", "ENTRES_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "ENTRES_JOBS_NUMBER")

	v.AutomaticEnv()
}
