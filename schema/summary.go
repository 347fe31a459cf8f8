package schema

// SummaryReport holds the organization-wide distributions derived from a
// collection of project records. It is recomputed from scratch on every
// aggregation; there is no incremental update path.
type SummaryReport struct {
	OrgName       string `json:"org_name"`
	TotalProjects int    `json:"total_projects"`

	QualityGate Distribution `json:"quality_gate"`
	Coverage    Distribution `json:"coverage"`
	Duplication Distribution `json:"duplication"`

	Reliability     Distribution `json:"reliability"`
	Security        Distribution `json:"security"`
	Maintainability Distribution `json:"maintainability"`
	SecurityHotspot Distribution `json:"security_hotspot"`
}

// RatingDistributions returns the four rating dimensions with their display
// names, in summary-grid order.
func (s SummaryReport) RatingDistributions() []NamedDistribution {
	return []NamedDistribution{
		{Name: "Reliability Rating (Bugs)", Distribution: s.Reliability},
		{Name: "Security Rating (Vulnerabilities)", Distribution: s.Security},
		{Name: "Maintainability Rating (Code Smells)", Distribution: s.Maintainability},
		{Name: "Security Hotspot Rating", Distribution: s.SecurityHotspot},
	}
}

// NamedDistribution pairs a distribution with its display name.
type NamedDistribution struct {
	Name         string       `json:"name"`
	Distribution Distribution `json:"distribution"`
}

// DetailRow is one assembled detail-table row. Cells follow the detail
// header order. NeedsAttention marks rows whose every cell from the third
// column through the second-to-last column is "N/A".
type DetailRow struct {
	Cells          []FieldValue `json:"cells"`
	NeedsAttention bool         `json:"needs_attention"`
}

// DetailTable is the per-project table: one row per project, sorted by
// project name. ColWidths carries rendered-width sizing metadata per column.
type DetailTable struct {
	Header    []string    `json:"header"`
	Rows      []DetailRow `json:"rows"`
	ColWidths []int       `json:"col_widths"`
}

// SummaryCell is one cell of the assembled summary grid. Problem marks
// counts the per-dimension highlighting rule flags; HeaderRow marks bucket
// label rows; LabelCol marks the leading dimension-name column.
type SummaryCell struct {
	Value     FieldValue `json:"value"`
	Problem   bool       `json:"problem"`
	HeaderRow bool       `json:"header_row"`
	LabelCol  bool       `json:"label_col"`
}

// SummaryTable is the fixed 13-row summary grid (org name, totals, quality
// gate, coverage, four rating dimensions, duplication). Rows are ragged;
// ColWidths spans the widest row.
type SummaryTable struct {
	Rows      [][]SummaryCell `json:"rows"`
	ColWidths []int           `json:"col_widths"`
}
