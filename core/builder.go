package core

import (
	"github.com/sonarsheet/sonarsheet/schema"
)

// BuildProjectRecord normalizes one project's raw measures into a record.
// Fields is parallel to metricKeys; missing samples normalize to the
// unavailable sentinel. The letter ratings are translated from the RAW grade
// codes, not from the normalized integer fields, so a source-side format
// change surfaces as "N/A" instead of a silently wrong letter.
func BuildProjectRecord(project schema.Project, samples []schema.RawMetricSample, lastAnalysis *string, metricKeys []string) schema.ProjectRecord {
	sampleMap := make(map[string]*string, len(samples))
	for _, s := range samples {
		sampleMap[s.Metric] = s.Value
	}

	fields := make([]schema.FieldValue, len(metricKeys))
	for i, key := range metricKeys {
		fields[i] = schema.Normalize(sampleMap[key], schema.FieldTypeFor(key), schema.FloatPrecision)
	}

	last := schema.NotAvailable
	if lastAnalysis != nil {
		last = *lastAnalysis
	}

	return schema.ProjectRecord{
		Name:   project.Name,
		Key:    project.Key,
		Fields: fields,
		Ratings: schema.RatingSet{
			Reliability:     translateRawRating(sampleMap["reliability_rating"]),
			Security:        translateRawRating(sampleMap["security_rating"]),
			Maintainability: translateRawRating(sampleMap["sqale_rating"]),
			SecurityHotspot: translateRawRating(sampleMap["security_review_rating"]),
		},
		LastAnalysis: last,
	}
}

// UnavailableRecord builds a record with every field unavailable. Used when a
// project's metric fetch fails so the project still appears in the report.
func UnavailableRecord(project schema.Project, metricKeys []string) schema.ProjectRecord {
	fields := make([]schema.FieldValue, len(metricKeys))
	for i := range fields {
		fields[i] = schema.Unavailable()
	}
	return schema.ProjectRecord{
		Name:   project.Name,
		Key:    project.Key,
		Fields: fields,
		Ratings: schema.RatingSet{
			Reliability:     schema.NotAvailable,
			Security:        schema.NotAvailable,
			Maintainability: schema.NotAvailable,
			SecurityHotspot: schema.NotAvailable,
		},
		LastAnalysis: schema.NotAvailable,
	}
}

// translateRawRating translates an optional raw grade code to a letter.
func translateRawRating(raw *string) string {
	if raw == nil {
		return schema.NotAvailable
	}
	return schema.TranslateRating(*raw)
}
