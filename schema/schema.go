// Package schema has configs, models and typed values for all parts of sonarsheet.
package schema

// Project identifies one project in the organization, as returned by the
// metrics source's project listing.
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// RawMetricSample is one raw measure for a project as emitted by the metrics
// source. Value is nil when the source has no value for the metric.
type RawMetricSample struct {
	Metric string  `json:"metric"`
	Value  *string `json:"value"`
}

// RatingSet holds the four letter ratings (A-E or "N/A") derived from the raw
// numeric grade codes.
type RatingSet struct {
	Reliability     string `json:"reliability"`
	Security        string `json:"security"`
	Maintainability string `json:"maintainability"`
	SecurityHotspot string `json:"security_hotspot"`
}

// ProjectRecord is the normalized per-project row. Fields is parallel to the
// requested metric-key list: Fields[i] is the normalized value for the i-th
// metric key. Records are immutable once built.
type ProjectRecord struct {
	Name         string       `json:"name"`
	Key          string       `json:"key"`
	Fields       []FieldValue `json:"fields"`
	Ratings      RatingSet    `json:"ratings"`
	LastAnalysis string       `json:"last_analysis_date"`
}

// Field returns the normalized value for the given metric key, resolved
// against the key list the record was built with.
func (r ProjectRecord) Field(metricKeys []string, key string) FieldValue {
	for i, k := range metricKeys {
		if k == key && i < len(r.Fields) {
			return r.Fields[i]
		}
	}
	return Unavailable()
}

// NeedsAttention reports whether every metric field and every rating renders
// as "N/A". The identity columns and the analysis date do not count, so a
// never-analyzed project with a known date still flags.
func (r ProjectRecord) NeedsAttention() bool {
	for _, f := range r.Fields {
		if f.String() != NotAvailable {
			return false
		}
	}
	for _, letter := range []string{
		r.Ratings.Reliability, r.Ratings.Security,
		r.Ratings.Maintainability, r.Ratings.SecurityHotspot,
	} {
		if letter != NotAvailable {
			return false
		}
	}
	return true
}
