package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/strive-code/strive/config"
	"github.com/strive-code/strive/sym"
	"gopkg.in/yaml.v3"
)

// ConfigCmd groups the configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: sym.Config + " Manage Strive configuration",
	Long: sym.Config + ` config - Manage Strive configuration.

Display and manage Strive configuration settings.

Configuration sources (in order of precedence):
1. Environment variables (STRIVE_* prefix)
2. Project config (./strive.toml or ./config.toml, searched upward)
3. User config (~/.strive/strive.toml or ~/.strive/config.toml)
4. System config (/etc/strive/config.toml)
5. Default values

Set STRIVE_CONFIG to a file path to load exactly that file instead of
the cascade. Environment variables still apply.

Examples:
  strive config show                    # Show current configuration
  strive config show --format yaml      # Show configuration in YAML format
  strive config get database.path       # Get specific config value
  strive config where                   # Show which files the cascade found
  strive config validate                # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration",
	Long:  "Render the merged configuration from all sources",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get one configuration value",
	Long:  "Look up a single value by dot notation, e.g. database.path or pipeline.workers",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration comes from",
	Long:  "List the configuration cascade in precedence order and which files exist on this machine.",
	RunE:  runConfigWhere,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for errors",
	Long:  "Check that the merged configuration passes validation",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rendered, err := marshalConfig(cfg, configFormat)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

// marshalConfig renders cfg in the requested format. TOML and YAML get
// a comment header; JSON stays bare so it pipes straight into jq.
func marshalConfig(cfg *config.Config, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal config to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("marshal config to YAML: %w", err)
		}
		return "# Strive configuration\n" + string(data), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("marshal config to TOML: %w", err)
		}
		return "# Strive configuration\n" + string(data), nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: toml, json, yaml)", format)
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !config.GetViper().IsSet(key) {
		return fmt.Errorf("no configuration key %q", key)
	}

	// config.Get keeps the value's native type for display
	fmt.Println(config.Get(key))
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	fmt.Println("Configuration layers, lowest precedence first:")
	fmt.Println("  1. defaults   built in")

	n := 2
	for _, layer := range config.Layers() {
		switch {
		case layer.Path == "":
			fmt.Printf("  %d. %-10s none found\n", n, layer.Scope)
		case layer.Exists:
			fmt.Printf("  %d. %-10s %s\n", n, layer.Scope, layer.Path)
		default:
			fmt.Printf("  %d. %-10s %s (missing)\n", n, layer.Scope, layer.Path)
		}
		n++
	}

	fmt.Printf("  %d. env        STRIVE_* environment variables\n", n)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Println("✓ Configuration valid")
	return nil
}
