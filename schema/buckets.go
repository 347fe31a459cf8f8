package schema

import "math"

// BucketRange is one named half-open numeric range [Lo, Hi) used for
// distribution counting. The top bucket of a table has Hi = +Inf.
type BucketRange struct {
	Label string
	Lo    float64
	Hi    float64
}

// CoverageBuckets classifies test coverage percentages.
var CoverageBuckets = []BucketRange{
	{Label: "< 10%", Lo: 0, Hi: 10},
	{Label: "10% - 30%", Lo: 10, Hi: 30},
	{Label: "30% - 50%", Lo: 30, Hi: 50},
	{Label: "50% - 80%", Lo: 50, Hi: 80},
	{Label: "> 80%", Lo: 80, Hi: math.Inf(1)},
}

// DuplicationBuckets classifies duplicated-line density percentages.
var DuplicationBuckets = []BucketRange{
	{Label: "< 3%", Lo: 0, Hi: 3},
	{Label: "3% - 5%", Lo: 3, Hi: 5},
	{Label: "5% - 10%", Lo: 5, Hi: 10},
	{Label: "10% - 20%", Lo: 10, Hi: 20},
	{Label: "> 20%", Lo: 20, Hi: math.Inf(1)},
}

// Quality gate display buckets.
const (
	GatePassedLabel      = "Passed"
	GateFailedLabel      = "Failed"
	GateNotComputedLabel = "Not computed"
)

// Quality gate bucket labels in display order.
var GateLabels = []string{GatePassedLabel, GateFailedLabel, GateNotComputedLabel}

// Distribution is an ordered set of bucket labels with non-negative counts.
// Labels preserves display order; Counts holds the tallies.
type Distribution struct {
	Labels []string       `json:"labels"`
	Counts map[string]int `json:"counts"`
}

// NewDistribution builds an empty distribution over the given labels.
func NewDistribution(labels ...string) Distribution {
	counts := make(map[string]int, len(labels))
	for _, l := range labels {
		counts[l] = 0
	}
	return Distribution{Labels: labels, Counts: counts}
}

// Add increments the count for the given label. Unknown labels fall into the
// N/A bucket so every record lands somewhere.
func (d Distribution) Add(label string) {
	if _, ok := d.Counts[label]; !ok {
		label = NotAvailable
	}
	d.Counts[label]++
}

// Count returns the tally for one label.
func (d Distribution) Count(label string) int {
	return d.Counts[label]
}

// Total returns the sum of all bucket counts.
func (d Distribution) Total() int {
	total := 0
	for _, n := range d.Counts {
		total += n
	}
	return total
}

// BucketLabels returns the range labels followed by the N/A bucket.
func BucketLabels(buckets []BucketRange) []string {
	labels := make([]string, 0, len(buckets)+1)
	for _, b := range buckets {
		labels = append(labels, b.Label)
	}
	return append(labels, NotAvailable)
}

// ClassifyNumeric resolves a normalized value to a bucket label. Text and
// unavailable values always classify as N/A, never into a numeric bucket.
func ClassifyNumeric(v FieldValue, buckets []BucketRange) string {
	f, ok := v.Numeric()
	if !ok {
		return NotAvailable
	}
	for _, b := range buckets {
		if f >= b.Lo && f < b.Hi {
			return b.Label
		}
	}
	// Values below the lowest bound (negative input) land in the first bucket
	// to keep the per-dimension totals equal to the record count.
	if len(buckets) > 0 && f < buckets[0].Lo {
		return buckets[0].Label
	}
	return NotAvailable
}
