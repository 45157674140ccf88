package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/strive-code/strive/display"
	"github.com/strive-code/strive/engine"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/sym"
)

var (
	optimizeLanguage string
	optimizeOutput   string
)

// OptimizeCmd represents the optimize command
var OptimizeCmd = &cobra.Command{
	Use:   "optimize [file]",
	Short: sym.Optimize + " Strip redundant code from a source file",
	Long: sym.Optimize + ` optimize - Remove redundant code without changing behavior.

Strips unused imports and redundant pass statements from Python, and
rewrites var declarations to let in JavaScript. The pass is idempotent:
optimizing already optimized code changes nothing.

Reads from the given file, or from stdin when no file is given. With
--output the cleaned code goes to a file and a summary of what changed
is printed; otherwise the cleaned code is written to stdout.

Examples:
  strive optimize --language python app.py
  cat app.js | strive optimize --language javascript
  strive optimize --language javascript app.js -o app.clean.js
  strive optimize --language python app.py --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptimize,
}

func init() {
	OptimizeCmd.Flags().StringVarP(&optimizeLanguage, "language", "l", "", "Language of the source code (required)")
	OptimizeCmd.Flags().StringVarP(&optimizeOutput, "output", "o", "", "Write result to file instead of stdout")
	OptimizeCmd.MarkFlagRequired("language")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	code, err := readSource(args)
	if err != nil {
		return err
	}

	eng, _, err := newEngine(nil, nil)
	if err != nil {
		return err
	}

	resp, err := eng.Dispatch(cmd.Context(), engine.ActionOptimize, engine.OptimizeRequest{
		Code:     code,
		Language: optimizeLanguage,
	})
	if err != nil {
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(engine.NewErrorResponse(err))
		}
		return err
	}

	result := resp.(*engine.OptimizeResponse)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(result)
	}

	if optimizeOutput != "" {
		if err := os.WriteFile(optimizeOutput, []byte(result.Code), 0644); err != nil {
			return errors.Wrapf(err, "failed to write output to %s", optimizeOutput)
		}

		if len(result.Improvements) > 0 {
			pterm.Info.Printf("Applied %d improvements (%d characters saved):\n", len(result.Improvements), result.Savings)
			for _, improvement := range result.Improvements {
				pterm.Printf("  %s\n", improvement)
			}
		} else {
			pterm.Info.Println("Nothing to optimize")
		}
		pterm.Success.Printf("Optimized %s written to %s\n", result.Language, optimizeOutput)
		return nil
	}

	fmt.Print(result.Code)
	return nil
}
