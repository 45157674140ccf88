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
	transpileFrom   string
	transpileTo     string
	transpileOutput string
)

// TranspileCmd represents the transpile command
var TranspileCmd = &cobra.Command{
	Use:   "transpile [file]",
	Short: sym.Transpile + " Transpile source code between languages",
	Long: sym.Transpile + ` transpile - Rewrite source code from one language to another.

Applies the ordered rewrite rules for the language pair, then remaps
indentation conventions (Python blocks become braced JavaScript blocks
and back). Rules apply in table order, each rewriting the whole text,
so later rules see the output of earlier ones.

Reads from the given file, or from stdin when no file is given.

Examples:
  strive transpile --from python --to javascript app.py
  cat app.py | strive transpile --from python --to javascript
  strive transpile --from javascript --to python app.js -o app.py
  strive transpile --from python --to javascript app.py --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranspile,
}

func init() {
	TranspileCmd.Flags().StringVar(&transpileFrom, "from", "", "Source language (required)")
	TranspileCmd.Flags().StringVar(&transpileTo, "to", "", "Target language (required)")
	TranspileCmd.Flags().StringVarP(&transpileOutput, "output", "o", "", "Write result to file instead of stdout")
	TranspileCmd.MarkFlagRequired("from")
	TranspileCmd.MarkFlagRequired("to")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	code, err := readSource(args)
	if err != nil {
		return err
	}

	eng, _, err := newEngine(nil, nil)
	if err != nil {
		return err
	}

	resp, err := eng.Dispatch(cmd.Context(), engine.ActionTranspile, engine.TranspileRequest{
		Code: code,
		From: transpileFrom,
		To:   transpileTo,
	})
	if err != nil {
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(engine.NewErrorResponse(err))
		}
		return err
	}

	result := resp.(*engine.TranspileResponse)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(result)
	}

	if transpileOutput != "" {
		if err := os.WriteFile(transpileOutput, []byte(result.Code), 0644); err != nil {
			return errors.Wrapf(err, "failed to write output to %s", transpileOutput)
		}
		pterm.Success.Printf("Transpiled %s to %s: %s\n", result.From, result.To, transpileOutput)
		return nil
	}

	fmt.Print(result.Code)
	return nil
}
