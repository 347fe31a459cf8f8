package schema

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a FieldValue.
type ValueKind int

// All value kinds.
const (
	UnavailableKind ValueKind = iota
	IntKind
	FloatKind
	TextKind
)

// FieldValue is a normalized metric value: an integer, a rounded float, a
// passthrough string, or the unavailable sentinel.
type FieldValue struct {
	Kind      ValueKind `json:"kind"`
	Int       int64     `json:"int,omitempty"`
	Float     float64   `json:"float,omitempty"`
	Precision int       `json:"precision,omitempty"`
	Text      string    `json:"text,omitempty"`
}

// IntValue builds an integer field value.
func IntValue(n int64) FieldValue {
	return FieldValue{Kind: IntKind, Int: n}
}

// FloatValue builds a float field value rounded to the given precision.
func FloatValue(f float64, precision int) FieldValue {
	return FieldValue{Kind: FloatKind, Float: roundTo(f, precision), Precision: precision}
}

// TextValue builds a passthrough string field value.
func TextValue(s string) FieldValue {
	return FieldValue{Kind: TextKind, Text: s}
}

// Unavailable builds the missing-value sentinel.
func Unavailable() FieldValue {
	return FieldValue{Kind: UnavailableKind}
}

// IsUnavailable reports whether the value is the missing-value sentinel.
func (v FieldValue) IsUnavailable() bool {
	return v.Kind == UnavailableKind
}

// String renders the value for display. Unavailable renders as "N/A".
func (v FieldValue) String() string {
	switch v.Kind {
	case IntKind:
		return strconv.FormatInt(v.Int, 10)
	case FloatKind:
		return strconv.FormatFloat(v.Float, 'f', v.Precision, 64)
	case TextKind:
		return v.Text
	default:
		return NotAvailable
	}
}

// Cell returns the typed value for workbook cells: int64, float64, or string.
// Unavailable yields the "N/A" string so empty cells stay visible.
func (v FieldValue) Cell() any {
	switch v.Kind {
	case IntKind:
		return v.Int
	case FloatKind:
		return v.Float
	case TextKind:
		return v.Text
	default:
		return NotAvailable
	}
}

// Numeric returns the value as a float64 for bucket classification. The
// second return is false for text and unavailable values.
func (v FieldValue) Numeric() (float64, bool) {
	switch v.Kind {
	case IntKind:
		return float64(v.Int), true
	case FloatKind:
		return v.Float, true
	default:
		return 0, false
	}
}

// Normalize converts a raw, possibly-missing metric value into a typed field
// value. A nil pointer, the literal "N/A" (case-insensitive, trimmed), and
// any failed numeric coercion all resolve to Unavailable. Numeric inputs are
// trimmed before parsing; text passes through untouched. It never fails.
func Normalize(raw *string, ft FieldType, precision int) FieldValue {
	if raw == nil {
		return Unavailable()
	}
	trimmed := strings.TrimSpace(*raw)
	if strings.EqualFold(trimmed, NotAvailable) {
		return Unavailable()
	}

	switch ft {
	case IntField:
		// Parse as float first so inputs like "3.0" coerce cleanly.
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Unavailable()
		}
		return IntValue(int64(f))
	case FloatField:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Unavailable()
		}
		return FloatValue(f, precision)
	default:
		return TextValue(*raw)
	}
}

// roundTo rounds f to the given number of decimal places.
func roundTo(f float64, precision int) float64 {
	shift := math.Pow(10, float64(precision))
	return math.Round(f*shift) / shift
}
