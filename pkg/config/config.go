// Package config provides configuration management for entres.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     path, batch_size
//   - Resolve: confidence_threshold, cluster_threshold, model_path,
//     bulk_batch_size, commit_every, stamp_merged
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Resolve.Input, Source, Bulk, Probabilistic (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ENTRES_ prefix with underscores for nesting:
//
//	ENTRES_DATABASE_DRIVER=postgres
//	ENTRES_DATABASE_HOST=localhost
//	ENTRES_RESOLVE_CONFIDENCE_THRESHOLD=0.9
//	ENTRES_LOG_LEVEL=info
//	ENTRES_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Database drivers supported by the canonical entity store.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the complete entres configuration.
type Config struct {
	// Database contains canonical entity store settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Resolve contains settings of the resolution pipeline.
	Resolve ResolveConfig `mapstructure:"resolve" yaml:"resolve"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used for scoring
	// candidate pairs during probabilistic matching.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains connection parameters of the entity store.
type DatabaseConfig struct {
	// Driver selects the store implementation: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the SQLite database file. Empty path means
	// ~/.local/share/entres/entres.sqlite.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize is the number of source records read into memory per
	// resolution batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ResolveConfig contains settings of deterministic and probabilistic
// resolution.
type ResolveConfig struct {
	// ConfidenceThreshold is the minimal cluster confidence (0-1) for
	// a candidate pair to be merged.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`

	// ClusterThreshold is the acceptance threshold (0-1) for a pair of
	// entities to be joined into the same similarity cluster.
	ClusterThreshold float64 `mapstructure:"cluster_threshold" yaml:"cluster_threshold"`

	// ModelPath is the location of the persisted probabilistic model.
	// A stored model is reused while the entity population matches its
	// fingerprint. Empty means the model is trained on every run and
	// never saved.
	ModelPath string `mapstructure:"model_path" yaml:"model_path"`

	// BulkBatchSize is the number of rows per multi-row INSERT during
	// bulk entity creation.
	BulkBatchSize int `mapstructure:"bulk_batch_size" yaml:"bulk_batch_size"`

	// CommitEvery is the number of records after which bulk creation
	// commits its transaction.
	CommitEvery int `mapstructure:"commit_every" yaml:"commit_every"`

	// StampMerged marks links moved by a probabilistic merge with the
	// probabilistic method and the merge confidence. By default moved
	// links keep the method and confidence they were created with.
	StampMerged bool `mapstructure:"stamp_merged" yaml:"stamp_merged"`

	// Input is a path to a records file (YAML or JSON).
	// Runtime-only field.
	Input string `mapstructure:"input" yaml:"input"`

	// Source limits resolution to records from one source system.
	// Runtime-only field.
	Source string `mapstructure:"source" yaml:"source"`

	// Bulk skips matching and creates one entity per unseen record.
	// Runtime-only field.
	Bulk bool `mapstructure:"bulk" yaml:"bulk"`

	// Probabilistic enables the probabilistic pass after deterministic
	// resolution. Runtime-only field.
	Probabilistic bool `mapstructure:"probabilistic" yaml:"probabilistic"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    DriverPostgres,
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "entres",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Resolve: ResolveConfig{
			ConfidenceThreshold: 0.85,
			ClusterThreshold:    0.5,
			BulkBatchSize:       500,
			CommitEvery:         5_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
