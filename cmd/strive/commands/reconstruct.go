package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/strive-code/strive/display"
	"github.com/strive-code/strive/engine"
	"github.com/strive-code/strive/pipeline"
	"github.com/strive-code/strive/sym"
)

var (
	reconstructTarget   string
	reconstructModify   []string
	reconstructOptimize bool
	reconstructDBPath   string
)

// ReconstructCmd represents the reconstruct command
var ReconstructCmd = &cobra.Command{
	Use:   "reconstruct <source-location>",
	Short: sym.Reconstruct + " Rebuild a repository in another language",
	Long: sym.Reconstruct + ` reconstruct - Clone a repository and rebuild it in another language.

The pipeline clones the source repository, enumerates its files,
transpiles every code file to the target language, optionally optimizes
the output, applies requested modifications, assembles the result as
<name>_strived_in_<language>, and publishes it.

Files the rule table cannot serve are recorded as failed and the job
carries on; only clone and publish failures abort a job.

Source locations:
  github.com/user/repo            Shorthand for the GitHub repository
  https://github.com/user/repo    Any reachable git URL
  /path/to/local/repo             Local working copy or bare repository

Examples:
  strive reconstruct github.com/acme/widget --to javascript
  strive reconstruct /srv/repos/widget --to python --modify "add logging"
  strive reconstruct github.com/acme/widget --to javascript --optimize=false
  strive reconstruct github.com/acme/widget --to javascript --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReconstruct,
}

func init() {
	ReconstructCmd.Flags().StringVar(&reconstructTarget, "to", "", "Target language (required)")
	ReconstructCmd.Flags().StringArrayVar(&reconstructModify, "modify", nil, "Modification trigger to apply (repeatable)")
	ReconstructCmd.Flags().BoolVar(&reconstructOptimize, "optimize", true, "Optimize transpiled files")
	ReconstructCmd.Flags().StringVar(&reconstructDBPath, "db-path", "", "Custom job database path (overrides config)")
	ReconstructCmd.MarkFlagRequired("to")
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	source := args[0]
	verbosity, _ := cmd.Flags().GetCount("verbose")
	useJSON := display.ShouldOutputJSON(cmd)

	// Open job history database
	database, err := openDatabase(reconstructDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	store := pipeline.NewStore(database)

	var emitter pipeline.Emitter
	if useJSON {
		emitter = pipeline.NewJSONEmitter()
	} else {
		emitter = pipeline.NewCLIEmitter(verbosity)
	}

	eng, cfg, err := newEngine(store, emitter)
	if err != nil {
		return err
	}

	if !useJSON {
		dbPath := reconstructDBPath
		if dbPath == "" {
			dbPath = cfg.GetDatabasePath()
		}
		if verbosity > 0 {
			printStartupBanner(verbosity, dbPath)
		} else {
			pterm.DefaultHeader.WithFullWidth().Printf("Strive - Repository Reconstruction")
			pterm.Println()
		}

		pterm.Info.Printf("Source: %s\n", source)
		pterm.Info.Printf("Target language: %s\n", reconstructTarget)
		if len(reconstructModify) > 0 {
			pterm.Info.Printf("Modifications: %v\n", reconstructModify)
		}
		pterm.Println()
	}

	req := engine.ReconstructRequest{
		SourceLocation: source,
		TargetLanguage: reconstructTarget,
		Modifications:  reconstructModify,
	}
	// Only override the configured optimize default when the flag was
	// given explicitly.
	if cmd.Flags().Changed("optimize") {
		req.Optimize = &reconstructOptimize
	}

	startTime := time.Now()

	resp, err := eng.Dispatch(cmd.Context(), engine.ActionReconstruct, req)
	if err != nil {
		if useJSON {
			return display.OutputJSON(engine.NewErrorResponse(err))
		}
		pterm.Error.Printf("Reconstruction failed: %v\n", err)
		return err
	}

	result := resp.(*pipeline.Result)
	processingTime := time.Since(startTime)

	if useJSON {
		return display.OutputJSON(result)
	}

	pterm.Println()
	pterm.Info.Println("Statistics:")
	pterm.Printf("  Job ID: %s\n", result.JobID)
	pterm.Printf("  Files transpiled: %d\n", result.FilesTranspiled)
	pterm.Printf("  Modifications applied: %d\n", len(result.Modifications))
	pterm.Printf("  Processing time: %s\n", processingTime.Round(time.Millisecond))
	pterm.Println()

	pterm.Info.Println("Next steps:")
	pterm.Printf("  Inspect the result: ls %s\n", result.NewLocation)
	pterm.Printf("  Job details: strive jobs status %s\n", result.JobID)
	pterm.Printf("  Job history: strive jobs ls\n")

	return nil
}
