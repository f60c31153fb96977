// Package errs defines the typed failure kinds shared by the comps and DCF
// engines. Undefined metrics are not errors: they travel as missing values
// (NaN markers) and are excluded from aggregates instead of aborting a run.
package errs

import "fmt"

// ValidationError reports malformed or missing input before any numeric work.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: field %q: %s", e.Field, e.Reason)
}

// ConfigurationError reports an inconsistent engine configuration, such as
// capital-structure weights not summing to 1 or percentile bounds out of order.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// TerminalValueError reports a discount rate at or below the terminal growth
// rate, which leaves the Gordon Growth perpetuity undefined.
type TerminalValueError struct {
	WACC   float64
	Growth float64
}

func (e *TerminalValueError) Error() string {
	return fmt.Sprintf("terminal value undefined: WACC %.4f must exceed terminal growth %.4f", e.WACC, e.Growth)
}
