package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// systemConfigPath is the machine-wide config, lowest precedence of the files
const systemConfigPath = "/etc/strive/config.toml"

// projectConfigNames are the filenames recognized as project-level
// configuration, in preference order
var projectConfigNames = []string{"strive.toml", "config.toml"}

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the Strive configuration and caches it for the process.
//
// Sources, lowest to highest precedence:
//
//	defaults < /etc/strive/config.toml < ~/.strive/{strive,config}.toml
//	         < project strive.toml or config.toml < STRIVE_* env vars
//
// Setting STRIVE_CONFIG to a file path skips the cascade and loads only
// that file on top of the defaults. Env vars still win.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// LoadWithViper unmarshals configuration from a prepared Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// LoadFromFile loads configuration from a single file, ignoring the
// cascade and environment
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config from %s: %w", configPath, err)
	}

	return &config, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// Get returns a configuration value using dot notation, e.g. "pipeline.workers"
func Get(key string) interface{} {
	return initViper().Get(key)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper builds the shared Viper instance: defaults, then the file
// cascade merged into the config layer, with STRIVE_* env vars bound on top
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("STRIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindSensitiveEnvVars(v)

	SetDefaults(v)

	if explicit := os.Getenv("STRIVE_CONFIG"); explicit != "" {
		mergeFile(v, explicit)
	} else {
		for _, path := range configLayers() {
			mergeFile(v, path)
		}
	}

	viperInstance = v
	return v
}

// configLayers returns the candidate config files from lowest to highest
// precedence. Later files win key by key.
func configLayers() []string {
	layers := []string{systemConfigPath}

	if home, err := os.UserHomeDir(); err == nil {
		striveDir := filepath.Join(home, ".strive")
		os.MkdirAll(striveDir, DefaultDirPermissions)
		for _, name := range projectConfigNames {
			layers = append(layers, filepath.Join(striveDir, name))
		}
	}

	if project := findProjectConfig(); project != "" {
		layers = append(layers, project)
	}

	return layers
}

// findProjectConfig walks from the working directory toward the filesystem
// root and returns the first project config file it finds, or ""
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range projectConfigNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeFile overlays one config file onto v's config layer. The config
// layer sits below env vars in Viper precedence, so merged files never
// shadow STRIVE_* overrides. Missing or unreadable files are skipped so
// a partial cascade still loads.
func mergeFile(v *viper.Viper, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	layer := viper.New()
	layer.SetConfigFile(path)
	layer.SetConfigType("toml")
	if err := layer.ReadInConfig(); err != nil {
		return
	}

	v.MergeConfigMap(layer.AllSettings())
}

// Layer describes one entry in the configuration cascade, for
// introspection by the CLI
type Layer struct {
	Scope  string // "system", "user", "project", or "override"
	Path   string // empty when no candidate file exists for the scope
	Exists bool
}

// Layers reports the file cascade as it would be consulted right now,
// lowest precedence first. When STRIVE_CONFIG is set the cascade
// collapses to that single file.
func Layers() []Layer {
	if explicit := os.Getenv("STRIVE_CONFIG"); explicit != "" {
		return []Layer{fileLayer("override", explicit)}
	}

	layers := []Layer{fileLayer("system", systemConfigPath)}
	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range projectConfigNames {
			layers = append(layers, fileLayer("user", filepath.Join(home, ".strive", name)))
		}
	}
	layers = append(layers, fileLayer("project", findProjectConfig()))
	return layers
}

func fileLayer(scope, path string) Layer {
	if path == "" {
		return Layer{Scope: scope}
	}
	_, err := os.Stat(path)
	return Layer{Scope: scope, Path: path, Exists: err == nil}
}

// GetDatabasePath returns the configured database path
func GetDatabasePath() (string, error) {
	// DB_PATH is the dev-mode override, checked before any config source
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		return dbPath, nil
	}

	config, err := Load()
	if err != nil {
		return "", err
	}
	return config.GetDatabasePath(), nil
}
