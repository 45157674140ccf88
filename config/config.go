package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the core Strive configuration.
// It is loaded once at startup and passed into constructors; nothing
// mutates it afterwards.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Git      GitConfig      `mapstructure:"git"`
	Database DatabaseConfig `mapstructure:"database"`
	Workdir  WorkdirConfig  `mapstructure:"workdir"`
	Log      LogConfig      `mapstructure:"log"`
}

// PipelineConfig configures repository reconstruction jobs
type PipelineConfig struct {
	// Worker concurrency for per-file processing
	Workers int `mapstructure:"workers"` // Number of concurrent file workers (default: 4)

	// Per-stage timeouts
	CloneTimeoutSeconds   int `mapstructure:"clone_timeout_seconds"`   // Clone stage timeout (default: 300)
	PublishTimeoutSeconds int `mapstructure:"publish_timeout_seconds"` // Publish stage timeout (default: 300)
	FileTimeoutSeconds    int `mapstructure:"file_timeout_seconds"`    // Per-file step timeout (default: 30)

	// Optimize: nil = default true, explicit false disables the optimizer pass
	Optimize *bool `mapstructure:"optimize"`
}

// GitConfig configures source-control fetch and publish
type GitConfig struct {
	AuthorName  string `mapstructure:"author_name"`  // Commit author (default: "Strive-Code")
	AuthorEmail string `mapstructure:"author_email"` // Commit email (default: "bot@strive-code.dev")
	Token       string `mapstructure:"token"`        // HTTPS push token, bound to STRIVE_GIT_TOKEN

	CloneDepth         int    `mapstructure:"clone_depth"`           // Shallow clone depth (default: 1, 0 = full)
	RemoteOpsPerMinute int    `mapstructure:"remote_ops_per_minute"` // Rate limit on clone/push (default: 30)
	PublishBase        string `mapstructure:"publish_base"`          // Remote prefix for published repos; empty = local publish only
}

// DatabaseConfig configures the SQLite job-history store
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// WorkdirConfig configures scoped per-job working directories
type WorkdirConfig struct {
	Root string `mapstructure:"root"` // Parent for job workdirs; empty = system temp dir
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json"` // JSON structured output (default: false, console)
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// EffectiveOptimize resolves the optimize default: nil means enabled
func (c *Config) EffectiveOptimize() bool {
	if c.Pipeline.Optimize == nil {
		return true
	}
	return *c.Pipeline.Optimize
}

// EffectiveWorkers returns the worker count with the fallback default applied
func (c *Config) EffectiveWorkers() int {
	if c.Pipeline.Workers <= 0 {
		return 4
	}
	return c.Pipeline.Workers
}

// CloneTimeout returns the clone stage timeout as a duration
func (c *Config) CloneTimeout() time.Duration {
	if c.Pipeline.CloneTimeoutSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.Pipeline.CloneTimeoutSeconds) * time.Second
}

// PublishTimeout returns the publish stage timeout as a duration
func (c *Config) PublishTimeout() time.Duration {
	if c.Pipeline.PublishTimeoutSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.Pipeline.PublishTimeoutSeconds) * time.Second
}

// FileTimeout returns the per-file step timeout as a duration
func (c *Config) FileTimeout() time.Duration {
	if c.Pipeline.FileTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Pipeline.FileTimeoutSeconds) * time.Second
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "strive.db" // Fallback default
	}
	return c.Database.Path
}

// WorkdirRoot returns the parent directory for job workdirs
func (c *Config) WorkdirRoot() string {
	if c.Workdir.Root == "" {
		return os.TempDir()
	}
	return c.Workdir.Root
}

// EffectivePublishBase returns the destination prefix for published
// repositories. Without a configured remote base, published repos land
// in a local directory beside the job workdirs, which outlives workdir
// release.
func (c *Config) EffectivePublishBase() string {
	if c.Git.PublishBase != "" {
		return c.Git.PublishBase
	}
	return filepath.Join(c.WorkdirRoot(), "strive-published")
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Pipeline: {Workers: %d, Optimize: %t}, Git: {Depth: %d}}",
		c.GetDatabasePath(), c.EffectiveWorkers(), c.EffectiveOptimize(), c.Git.CloneDepth)
}
