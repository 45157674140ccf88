package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/strive-code/strive/display"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/pipeline"
	"github.com/strive-code/strive/sym"
)

// JobsCmd represents the jobs command - reconstruction job history
var JobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: sym.Jobs + " Manage reconstruction job history",
	Long: sym.Jobs + ` jobs - Reconstruction job management.

Every reconstruction run is recorded in the job history database with
its source, target language, state, and file counts.

Job management commands:
  strive jobs ls              # List all jobs
  strive jobs status <id>     # Show job details
  strive jobs prune           # Remove old finished jobs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// JobsLsCmd lists reconstruction jobs
var JobsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List reconstruction jobs",
	Long: `List reconstruction jobs, optionally filtered by state.

State filters:
  created     - Jobs recorded but not yet started
  cloned      - Source repository cloned
  enumerated  - Repository files enumerated
  processing  - Files being transpiled
  assembled   - Output repository assembled
  published   - Output repository published
  done        - Successfully completed jobs
  failed      - Jobs that failed with errors

Examples:
  strive jobs ls                    # List all jobs
  strive jobs ls --state failed     # List only failed jobs
  strive jobs ls --active           # List only unfinished jobs
  strive jobs ls --limit 50         # Show up to 50 jobs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stateFilter, _ := cmd.Flags().GetString("state")
		limit, _ := cmd.Flags().GetInt("limit")
		activeOnly, _ := cmd.Flags().GetBool("active")
		return runJobsLs(cmd, stateFilter, limit, activeOnly)
	},
}

// JobsStatusCmd shows the status of a reconstruction job
var JobsStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show status of a reconstruction job",
	Long: `Display detailed status information for a reconstruction job:
- Job ID, source, and target language
- Current state and error, if any
- File counts (enumerated, transpiled)
- Published location
- Timestamps (created, started, completed)

Example:
  strive jobs status JB3Kp9pXqT2wF`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJobsStatus(cmd, args[0])
	},
}

// JobsPruneCmd removes old finished jobs from the history
var JobsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old finished jobs from the history",
	Long: `Remove done and failed jobs whose last update is older than the
given duration. Active jobs are never pruned.

Examples:
  strive jobs prune                       # Prune jobs older than 30 days
  strive jobs prune --older-than 168h     # Prune jobs older than a week`,
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		return runJobsPrune(olderThan)
	},
}

func init() {
	JobsLsCmd.Flags().String("state", "", "Filter by state (created, cloned, enumerated, processing, assembled, published, done, failed)")
	JobsLsCmd.Flags().Int("limit", 20, "Maximum number of jobs to display")
	JobsLsCmd.Flags().Bool("active", false, "Show only jobs that have not finished")

	JobsPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Prune finished jobs not updated within this duration")

	JobsCmd.AddCommand(JobsLsCmd)
	JobsCmd.AddCommand(JobsStatusCmd)
	JobsCmd.AddCommand(JobsPruneCmd)
}

// runJobsLs lists reconstruction jobs
func runJobsLs(cmd *cobra.Command, stateFilter string, limit int, activeOnly bool) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store := pipeline.NewStore(database)

	var jobs []*pipeline.Job
	if activeOnly {
		jobs, err = store.ListActiveJobs(limit)
	} else {
		// Convert state filter to pointer (empty string = nil = all jobs)
		var state *pipeline.JobState
		if stateFilter != "" {
			if !pipeline.IsValidState(stateFilter) {
				return errors.Newf("invalid state %q (valid: created, cloned, enumerated, processing, assembled, published, done, failed)", stateFilter)
			}
			s := pipeline.JobState(stateFilter)
			state = &s
		}
		jobs, err = store.ListJobs(state, limit)
	}
	if err != nil {
		return errors.Wrap(err, "failed to list jobs")
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(jobs)
	}

	if len(jobs) == 0 {
		fmt.Printf("%s No jobs found\n", sym.Jobs)
		return nil
	}

	// Print table header
	fmt.Printf("%-15s %-11s %-30s %-11s %-9s %s\n", "JOB ID", "STATE", "SOURCE", "TARGET", "FILES", "CREATED")
	fmt.Printf("%-15s %-11s %-30s %-11s %-9s %s\n", "------", "-----", "------", "------", "-----", "-------")

	// Print jobs
	for _, job := range jobs {
		files := fmt.Sprintf("%d/%d", job.FilesTranspiled, job.FilesEnumerated)

		fmt.Printf("%-15s %-11s %-30s %-11s %-9s %s\n",
			truncate(job.ID, 15),
			job.State,
			truncate(job.Source, 30),
			truncate(job.TargetLanguage, 11),
			files,
			job.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Printf("\nTotal: %d job(s)\n", len(jobs))
	return nil
}

// runJobsStatus displays detailed status for a job
func runJobsStatus(cmd *cobra.Command, jobID string) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store := pipeline.NewStore(database)
	job, err := store.GetJob(jobID)
	if err != nil {
		return errors.Wrap(err, "failed to get job")
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(job)
	}

	// Print job details
	fmt.Printf("%s Job ID: %s\n", sym.Jobs, job.ID)
	fmt.Printf("  Source: %s\n", job.Source)
	if job.SourceName != "" {
		fmt.Printf("  Repository: %s\n", job.SourceName)
	}
	fmt.Printf("  Target language: %s\n", job.TargetLanguage)
	if len(job.Modifications) > 0 {
		fmt.Printf("  Modifications: %v\n", job.Modifications)
	}
	fmt.Printf("  Optimize: %t\n", job.Optimize)
	fmt.Printf("  State: %s\n", job.State)
	if job.Error != "" {
		fmt.Printf("  Error: %s\n", job.Error)
	}
	fmt.Printf("\n")

	// Progress
	fmt.Printf("Files: %d/%d transpiled\n", job.FilesTranspiled, job.FilesEnumerated)
	if job.NewLocation != "" {
		fmt.Printf("New location: %s\n", job.NewLocation)
	}
	fmt.Printf("\n")

	// Timestamps
	fmt.Printf("Created: %s\n", job.CreatedAt.Format("2006-01-02 15:04:05"))

	if job.StartedAt != nil {
		fmt.Printf("Started: %s\n", job.StartedAt.Format("2006-01-02 15:04:05"))
	}

	if job.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", job.CompletedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}

// runJobsPrune removes old finished jobs
func runJobsPrune(olderThan time.Duration) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store := pipeline.NewStore(database)

	removed, err := store.CleanupOldJobs(olderThan)
	if err != nil {
		return errors.Wrap(err, "failed to prune jobs")
	}

	fmt.Printf("%s Pruned %d finished job(s) older than %s\n", sym.Jobs, removed, olderThan)
	return nil
}

// truncate truncates a string to maxLen characters
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
