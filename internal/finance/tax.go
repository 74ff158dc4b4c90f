package finance

import "math"

// Filing statuses recognized by IncomeTax.
const (
	FilingSingle         = "Single"
	FilingMarriedJointly = "Married Filing Jointly"
)

// TaxResult is the outcome of a federal income tax calculation.
type TaxResult struct {
	AnnualIncome    float64
	TotalDeductions float64
	TaxableIncome   float64
	FederalTax      float64
	AfterTaxIncome  float64
	EffectiveRate   float64 // percent of gross income
}

// bracket is one slice of the progressive schedule: the rate applies to
// income up to the bound, beyond the previous bracket's bound.
type bracket struct {
	upTo float64
	rate float64
}

// 2023 federal brackets for single filers. Married-filing-jointly doubles
// every finite bound.
var federalBrackets = []bracket{
	{10275, 0.10},
	{41775, 0.12},
	{89450, 0.22},
	{190750, 0.24},
	{364200, 0.32},
	{462550, 0.35},
	{math.Inf(1), 0.37},
}

// IncomeTax computes federal income tax using the fixed 2023 schedule.
// Deductions reduce income to the taxable base, clamped at zero, and the
// effective rate is the tax as a share of gross income.
func IncomeTax(income float64, filingStatus string, standardDeduction, otherDeductions float64) (TaxResult, error) {
	if income < 0 {
		return TaxResult{}, domainErr("tax", "income must not be negative, got %.2f", income)
	}
	if standardDeduction < 0 || otherDeductions < 0 {
		return TaxResult{}, domainErr("tax", "deductions must not be negative")
	}
	if filingStatus != FilingSingle && filingStatus != FilingMarriedJointly {
		return TaxResult{}, domainErr("tax", "unknown filing status %q", filingStatus)
	}

	deductions := standardDeduction + otherDeductions
	taxable := math.Max(0, income-deductions)

	double := filingStatus == FilingMarriedJointly
	var tax, lower float64
	for _, b := range federalBrackets {
		upper := b.upTo
		if double && !math.IsInf(upper, 1) {
			upper *= 2
		}
		if taxable <= lower {
			break
		}
		portion := math.Min(taxable, upper) - lower
		tax += portion * b.rate
		lower = upper
	}

	effective := 0.0
	if income > 0 {
		effective = tax / income * 100
	}

	return TaxResult{
		AnnualIncome:    round2(income),
		TotalDeductions: round2(deductions),
		TaxableIncome:   round2(taxable),
		FederalTax:      round2(tax),
		AfterTaxIncome:  round2(income - tax),
		EffectiveRate:   round2(effective),
	}, nil
}
