package aiusage

import "errors"

// ErrQuotaExhausted is returned when the monthly generation allowance is used up.
var ErrQuotaExhausted = errors.New("monthly advisory quota exhausted")

// DefaultAllowance is the number of generations granted per month.
const DefaultAllowance = 100

// DefaultScope is the single quota bucket of a one-operator install.
const DefaultScope = "operator"

// Usage is the state of one quota bucket.
type Usage struct {
	Scope     string `json:"scope"`
	Remaining int    `json:"remaining"`
	Month     string `json:"month"`
}
