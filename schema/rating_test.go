package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateRating(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"1.0", "A"},
		{"2.0", "B"},
		{"3.0", "C"},
		{"4.0", "D"},
		{"5.0", "E"},
		{"1", "A"},      // integer form normalizes
		{"2.00", "B"},   // extra precision normalizes
		{" 3.0 ", "C"},  // whitespace trimmed
		{"6.0", NotAvailable},
		{"0.0", NotAvailable},
		{"2.5", NotAvailable}, // off-grid codes stay untranslated
		{"A", NotAvailable},
		{"", NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateRating(tt.code))
		})
	}
}
