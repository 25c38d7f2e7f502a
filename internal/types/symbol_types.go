package types

import "fmt"

// Search methods recorded in the Search_Method column
const (
	MethodKnownStock = "Known Stock"
	MethodProviderA  = "External Provider A"
	MethodProviderB  = "External Provider B"
)

// NotFound is the default sentinel written when no strategy resolves a symbol
const NotFound = "not found"

// OutcomeStatus tags the result of a single lookup attempt
type OutcomeStatus int

const (
	StatusNotFound OutcomeStatus = iota
	StatusFound
	StatusFault
)

// String returns the lowercase label used in logs and metrics
func (s OutcomeStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusFault:
		return "fault"
	default:
		return "not_found"
	}
}

// Outcome is what a lookup source returns for one company name.
// Faults keep their cause so callers can log it before treating
// the attempt as a miss.
type Outcome struct {
	Status OutcomeStatus
	Symbol string
	Err    error
}

// Found builds a successful outcome
func Found(symbol string) Outcome {
	return Outcome{Status: StatusFound, Symbol: symbol}
}

// Miss builds a lookup-miss outcome
func Miss() Outcome {
	return Outcome{Status: StatusNotFound}
}

// Fault builds a provider-fault outcome
func Fault(err error) Outcome {
	return Outcome{Status: StatusFault, Err: err}
}

// Faultf builds a provider-fault outcome from a format string
func Faultf(format string, args ...any) Outcome {
	return Fault(fmt.Errorf(format, args...))
}

// IsFound reports whether the outcome carries a symbol
func (o Outcome) IsFound() bool {
	return o.Status == StatusFound && o.Symbol != ""
}

// Resolution is the (symbol, method) pair the policy produces for one row.
// Both fields are always set together.
type Resolution struct {
	Symbol string `json:"symbol"`
	Method string `json:"search_method"`
}

// Unresolved returns a resolution carrying the sentinel in both fields
func Unresolved(label string) Resolution {
	if label == "" {
		label = NotFound
	}
	return Resolution{Symbol: label, Method: label}
}
