package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/strive-code/strive/cmd/strive/commands"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
)

var rootCmd = &cobra.Command{
	Use:   "strive",
	Short: "Strive-Code - Symbolic transpilation and repository reconstruction",
	Long: `Strive-Code - Symbolic transpilation and repository reconstruction.

Strive rewrites source code between languages using ordered rewrite
rules, and reconstructs whole repositories: clone the source, transpile
every code file, optimize the output, apply requested modifications,
and publish the rebuilt repository.

Available commands:
  transpile   - Transpile source code between languages
  optimize    - Strip redundant code from a source file
  reconstruct - Rebuild a repository in another language
  rules       - Inspect the rewrite rule table
  jobs        - Manage reconstruction job history
  config      - Manage Strive configuration
  version     - Show version information

Examples:
  strive transpile --from python --to javascript app.py
  strive reconstruct github.com/user/repo --to javascript
  strive jobs ls               # List reconstruction jobs
  strive config show           # Show current configuration`,
	// Errors are rendered in main so hints print under them
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize global logger before any command runs.
		// Skip for commands that emit machine-readable output on stdout
		// (like 'config show') so nothing pollutes the stream.
		if cmd.Name() != "show" {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			if err := logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity)); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")

	// Add commands
	rootCmd.AddCommand(commands.TranspileCmd)
	rootCmd.AddCommand(commands.OptimizeCmd)
	rootCmd.AddCommand(commands.ReconstructCmd)
	rootCmd.AddCommand(commands.RulesCmd)
	rootCmd.AddCommand(commands.JobsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
