package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sonarsheet/sonarsheet/core"
)

// exportCmd collects metrics and writes the two-sheet Excel workbook.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the metrics report as a two-sheet Excel workbook.",
	Long: `Collect quality metrics for every project and write them to an Excel
workbook with two sheets:

  Sonar Metrics - one row per project with a striped, frozen-header table;
                  projects with no usable metrics get a light red fill
  Summary       - the organization summary grid with conditional
                  highlighting of non-zero counts in danger buckets

Examples:
  # Write SonarMetrics.xlsx in the current directory
  sonarsheet export --org-key my-org

  # Pick the workbook path
  sonarsheet export --org-key my-org --workbook-file reports/acme.xlsx`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteExport, "Cannot export workbook")
	},
}
