package core

import (
	"github.com/sonarsheet/sonarsheet/schema"
)

// Aggregate derives the organization-wide summary from a set of project
// records. Every record lands in exactly one bucket per dimension, so each
// distribution total equals the record count.
func Aggregate(orgName string, records []schema.ProjectRecord, metricKeys []string) schema.SummaryReport {
	report := schema.SummaryReport{
		OrgName:       orgName,
		TotalProjects: len(records),

		QualityGate: schema.NewDistribution(schema.GateLabels...),
		Coverage:    schema.NewDistribution(schema.BucketLabels(schema.CoverageBuckets)...),
		Duplication: schema.NewDistribution(schema.BucketLabels(schema.DuplicationBuckets)...),

		Reliability:     schema.NewDistribution(schema.RatingLetters...),
		Security:        schema.NewDistribution(schema.RatingLetters...),
		Maintainability: schema.NewDistribution(schema.RatingLetters...),
		SecurityHotspot: schema.NewDistribution(schema.RatingLetters...),
	}

	for _, r := range records {
		report.QualityGate.Add(classifyGate(r.Field(metricKeys, "alert_status")))
		report.Coverage.Add(schema.ClassifyNumeric(r.Field(metricKeys, "coverage"), schema.CoverageBuckets))
		report.Duplication.Add(schema.ClassifyNumeric(r.Field(metricKeys, "duplicated_lines_density"), schema.DuplicationBuckets))

		report.Reliability.Add(r.Ratings.Reliability)
		report.Security.Add(r.Ratings.Security)
		report.Maintainability.Add(r.Ratings.Maintainability)
		report.SecurityHotspot.Add(r.Ratings.SecurityHotspot)
	}

	return report
}

// classifyGate maps a raw gate status to its display bucket. Anything other
// than the two known statuses counts as not computed.
func classifyGate(v schema.FieldValue) string {
	switch v.String() {
	case schema.GatePassed:
		return schema.GatePassedLabel
	case schema.GateFailed:
		return schema.GateFailedLabel
	default:
		return schema.GateNotComputedLabel
	}
}
