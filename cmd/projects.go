package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sonarsheet/sonarsheet/core"
)

// projectsCmd lists the organization's projects without fetching metrics.
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects in the organization.",
	Long: `List every project in the organization without fetching any metrics.

This is a quick way to verify credentials and organization access before
running a full report, or to feed project keys into other tooling.

Examples:
  # List projects as a table
  sonarsheet projects --org-key my-org

  # Machine-readable listing
  sonarsheet projects --org-key my-org --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteProjects, "Cannot list projects")
	},
}
