package f1

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts a query or data value to a float. Blank input is 0.
// Non-numeric input yields NaN and false; NaN never satisfies a comparison,
// so a filter built from it matches nothing.
func ParseNumber(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n, true
		}
		return math.NaN(), false
	}
	return n, true
}
