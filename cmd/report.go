package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sonarsheet/sonarsheet/core"
)

// reportCmd collects metrics and prints the full report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the per-project detail table and the organization summary.",
	Long: `Collect quality metrics for every project in the organization and print
the full report: a per-project detail table followed by a summary grid.

The detail table has one row per project with raw metric values, letter
ratings (A-E) and the last analysis date. Projects with no usable metrics
at all are highlighted for attention. The summary grid counts projects by
quality gate status, coverage bucket, rating letter and duplication bucket.

Examples:
  # Report for a SonarCloud organization
  sonarsheet report --org-key my-org

  # Private organization with a token from the environment
  SONARSHEET_TOKEN=squ_... sonarsheet report --org-key my-org

  # Export the detail rows to CSV for tracking
  sonarsheet report --org-key my-org --output csv --output-file metrics.csv

  # Columnar output for DuckDB/pandas (detail table only)
  sonarsheet report --org-key my-org --output parquet --output-file metrics.parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteReport, "Cannot run report")
	},
}
