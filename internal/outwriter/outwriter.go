// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"golang.org/x/term"
)

// LogReportHeader prints the run header before collection starts.
func LogReportHeader(cfg *contract.Config) {
	fmt.Printf("Collecting metrics for organization %s from %s (%d workers)\n",
		cfg.OrgKey, cfg.ServerURL, cfg.Workers)
}

// GetMaxTableNameWidth calculates the maximum width for project names in
// table output based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the metric, rating and date columns with borders
	// and padding. The remainder goes to the name column.
	const baseWidth = 120

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 60 {
		// Maximum name width to keep the table compact on wide terminals
		return 60
	}
	return available
}
