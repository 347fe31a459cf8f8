package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sonarsheet/sonarsheet/core"
)

// summaryCmd collects metrics and prints only the summary grid.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show only the organization-level summary grid.",
	Long: `Collect quality metrics for every project and print only the summary
grid, skipping the per-project detail table.

The grid counts projects by quality gate status (Passed/Failed/Not
computed), test coverage bucket, rating letter (A-E) for the four rating
metrics, and code duplication bucket. Non-zero counts in danger buckets
are highlighted.

Examples:
  # Quick health check for the organization
  sonarsheet summary --org-key my-org

  # Summary as JSON for dashboards
  sonarsheet summary --org-key my-org --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteSummary, "Cannot run summary")
	},
}
