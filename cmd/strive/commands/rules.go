package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strive-code/strive/display"
	"github.com/strive-code/strive/sym"
)

// RulesCmd represents the rules command
var RulesCmd = &cobra.Command{
	Use:   "rules",
	Short: sym.Rules + " Inspect the rewrite rule table",
	Long: sym.Rules + ` rules - Show what the loaded rule table can transpile.

Lists the supported languages and ordered language pairs along with the
ruleset version. A pair must be listed here for transpilation to
succeed; reconstruction jobs targeting an unlisted pair record every
code file as failed.

Examples:
  strive rules                # Show supported pairs
  strive rules --json         # Machine-readable capability report`,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine(nil, nil)
	if err != nil {
		return err
	}

	caps := eng.Capabilities()

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(caps)
	}

	fmt.Printf("%s Rule Table\n", sym.Rules)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Ruleset version: %s\n", caps.RulesetVersion)
	fmt.Printf("Languages:       %d\n", len(caps.Languages))
	fmt.Printf("Pairs:           %d\n", len(caps.Pairs))
	fmt.Println()

	fmt.Println("Supported languages:")
	for _, lang := range caps.Languages {
		fmt.Printf("  %s\n", lang)
	}
	fmt.Println()

	fmt.Println("Supported pairs:")
	for _, pair := range caps.Pairs {
		fmt.Printf("  %s\n", pair)
	}

	return nil
}
