package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNumeric(t *testing.T) {
	tests := []struct {
		name    string
		value   FieldValue
		buckets []BucketRange
		want    string
	}{
		{"zero coverage in lowest bucket", FloatValue(0, 1), CoverageBuckets, "< 10%"},
		{"lower bound is inclusive", FloatValue(10, 1), CoverageBuckets, "10% - 30%"},
		{"upper bound is exclusive", FloatValue(29.9, 1), CoverageBuckets, "10% - 30%"},
		{"top bucket is unbounded", FloatValue(99.5, 1), CoverageBuckets, "> 80%"},
		{"exactly 80 lands in top bucket", FloatValue(80, 1), CoverageBuckets, "> 80%"},
		{"duplication boundary", FloatValue(3, 1), DuplicationBuckets, "3% - 5%"},
		{"int values classify too", IntValue(4), DuplicationBuckets, "3% - 5%"},
		{"text is N/A", TextValue("high"), CoverageBuckets, NotAvailable},
		{"unavailable is N/A", Unavailable(), CoverageBuckets, NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyNumeric(tt.value, tt.buckets))
		})
	}
}

func TestDistribution(t *testing.T) {
	d := NewDistribution(BucketLabels(CoverageBuckets)...)
	assert.Equal(t, 0, d.Total())

	d.Add("< 10%")
	d.Add("< 10%")
	d.Add("> 80%")
	d.Add("no such bucket") // falls into N/A

	assert.Equal(t, 2, d.Count("< 10%"))
	assert.Equal(t, 1, d.Count("> 80%"))
	assert.Equal(t, 1, d.Count(NotAvailable))
	assert.Equal(t, 4, d.Total())
}

func TestBucketLabels(t *testing.T) {
	labels := BucketLabels(DuplicationBuckets)
	assert.Equal(t, []string{"< 3%", "3% - 5%", "5% - 10%", "10% - 20%", "> 20%", NotAvailable}, labels)
}
