// README: Shared amount helpers and IDs used across modules.
package types

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// ID identifies saved trips and hotel stays.
type ID = string

// NewID returns a random identifier.
func NewID() ID {
	return uuid.NewString()
}

// Sum adds every element of v.
func Sum(v []float64) float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}

// FormatAmount renders an amount with two decimals. Rounding happens only here,
// at display/export time.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatWhole renders an amount rounded to the unit.
func FormatWhole(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
