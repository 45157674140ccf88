package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Pipeline defaults
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.clone_timeout_seconds", 300)
	v.SetDefault("pipeline.publish_timeout_seconds", 300)
	v.SetDefault("pipeline.file_timeout_seconds", 30)
	v.SetDefault("pipeline.optimize", true)

	// Git defaults
	v.SetDefault("git.author_name", "Strive-Code")
	v.SetDefault("git.author_email", "bot@strive-code.dev")
	v.SetDefault("git.clone_depth", 1)            // 0 clones full history
	v.SetDefault("git.remote_ops_per_minute", 30) // <= 0 falls back to the built-in budget
	v.SetDefault("git.publish_base", "")          // Local publish unless a remote prefix is configured

	// Database defaults
	v.SetDefault("database.path", "strive.db")

	// Workdir defaults: empty root means the system temp directory
	v.SetDefault("workdir.root", "")

	// Log defaults
	v.SetDefault("log.json", false)
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	// Git push token
	v.BindEnv("git.token", "STRIVE_GIT_TOKEN")

	// Database path
	v.BindEnv("database.path", "STRIVE_DATABASE_PATH")
}
