package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the store implementation.
// Valid values: "postgres", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabasePath sets the SQLite database file.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records read per batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptResolveConfidenceThreshold sets the minimal confidence of a candidate
// pair for a probabilistic merge.
func OptResolveConfidenceThreshold(f float64) Option {
	return func(c *Config) {
		if isValidFraction("Confidence Threshold", f) {
			c.Resolve.ConfidenceThreshold = f
		}
	}
}

// OptResolveClusterThreshold sets the acceptance threshold used to build
// similarity clusters.
func OptResolveClusterThreshold(f float64) Option {
	return func(c *Config) {
		if isValidFraction("Cluster Threshold", f) {
			c.Resolve.ClusterThreshold = f
		}
	}
}

// OptResolveModelPath sets the location of the persisted probabilistic
// model.
func OptResolveModelPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Model Path", s) {
			c.Resolve.ModelPath = s
		}
	}
}

// OptResolveBulkBatchSize sets the number of rows per multi-row INSERT.
// PostgreSQL allows at most 65535 parameters per statement, a link row
// takes 7 of them.
func OptResolveBulkBatchSize(i int) Option {
	return func(c *Config) {
		if !isValidInt("Bulk Batch Size", i) {
			return
		}
		c.Resolve.BulkBatchSize = min(i, 9_000)
	}
}

// OptResolveCommitEvery sets how many records bulk creation writes
// before committing.
func OptResolveCommitEvery(i int) Option {
	return func(c *Config) {
		if isValidInt("Commit Every", i) {
			c.Resolve.CommitEvery = i
		}
	}
}

// OptResolveStampMerged enables marking of links moved by
// probabilistic merges.
func OptResolveStampMerged(b bool) Option {
	return func(c *Config) {
		c.Resolve.StampMerged = b
	}
}

// OptResolveInput sets the records file to resolve.
// Runtime-only field - not in ToOptions().
func OptResolveInput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input File", s) {
			c.Resolve.Input = s
		}
	}
}

// OptResolveSource limits resolution to one source system.
// Runtime-only field - not in ToOptions().
func OptResolveSource(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source", s) {
			c.Resolve.Source = s
		}
	}
}

// OptResolveBulk switches deterministic resolution to bulk creation.
// Runtime-only field - not in ToOptions().
func OptResolveBulk(b bool) Option {
	return func(c *Config) {
		c.Resolve.Bulk = b
	}
}

// OptResolveProbabilistic enables the probabilistic pass.
// Runtime-only field - not in ToOptions().
func OptResolveProbabilistic(b bool) Option {
	return func(c *Config) {
		c.Resolve.Probabilistic = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for candidate
// scoring. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
