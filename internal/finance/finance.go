// Package finance implements the calculators behind the dashboard: loan
// EMI with amortization, compound-interest projections, simple interest,
// federal income tax, retirement, mortgage, and savings-goal planning.
//
// All functions are pure: they take plain numeric inputs, round monetary
// outputs to 2 decimal places, and report out-of-domain inputs with a
// *DomainError instead of computing nonsense.
package finance

import (
	"fmt"
	"math"
)

// DomainError reports an input outside a calculator's domain, such as a
// non-positive principal or a retirement age below the current age.
type DomainError struct {
	Calc   string // calculator name, e.g. "emi"
	Reason string // human-readable explanation
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Calc, e.Reason)
}

func domainErr(calc, format string, args ...any) error {
	return &DomainError{Calc: calc, Reason: fmt.Sprintf(format, args...)}
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// monthlyRate converts an annual percentage rate to a monthly fraction.
func monthlyRate(annualRate float64) float64 {
	return annualRate / (12 * 100)
}
