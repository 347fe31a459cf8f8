package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Letter ratings ordered best to worst, plus the N/A bucket.
var RatingLetters = []string{"A", "B", "C", "D", "E", NotAvailable}

// ratingMap translates the source's floating-point grade codes to letters.
var ratingMap = map[string]string{
	"1.0": "A",
	"2.0": "B",
	"3.0": "C",
	"4.0": "D",
	"5.0": "E",
}

// TranslateRating maps a numeric grade code to a letter grade. Codes are
// normalized before lookup: the input is trimmed and, when it parses as a
// float, reformatted to one decimal place, so "1", "1.00" and "1.0" all map
// to "A". Anything outside the 1-5 grade range translates to "N/A".
func TranslateRating(code string) string {
	code = strings.TrimSpace(code)
	if f, err := strconv.ParseFloat(code, 64); err == nil {
		code = fmt.Sprintf("%.1f", f)
	}
	if letter, ok := ratingMap[code]; ok {
		return letter
	}
	return NotAvailable
}
