package finance

// GrowthResult is the outcome of a compound-growth projection.
type GrowthResult struct {
	FinalAmount   float64
	TotalInvested float64
	TotalReturns  float64
}

// GrowthPoint is one month of a growth projection.
type GrowthPoint struct {
	Month    int
	Value    float64
	Invested float64
	Returns  float64
}

// RetirementResult is the outcome of a retirement projection: the growth of
// the nest egg plus the sustainable monthly withdrawal under the 4% rule.
type RetirementResult struct {
	YearsToRetirement int
	GrowthResult
	MonthlyWithdrawal float64
}

// SimpleInterestResult is the outcome of a simple-interest calculation.
type SimpleInterestResult struct {
	Interest float64
	Total    float64
}

func checkGrowthInputs(calc string, principal, monthlyContribution, annualReturn float64, years int) error {
	if principal < 0 {
		return domainErr(calc, "principal must not be negative, got %.2f", principal)
	}
	if monthlyContribution < 0 {
		return domainErr(calc, "monthly contribution must not be negative, got %.2f", monthlyContribution)
	}
	if annualReturn < 0 {
		return domainErr(calc, "annual return must not be negative, got %.2f", annualReturn)
	}
	if years <= 0 {
		return domainErr(calc, "period must be at least one year, got %d", years)
	}
	return nil
}

// CompoundGrowth projects an investment with monthly compounding and a
// fixed monthly contribution. Each month the balance grows by the monthly
// rate first and the contribution is added afterwards, so contributions
// start earning in the following month.
func CompoundGrowth(principal, monthlyContribution, annualReturn float64, years int) (GrowthResult, error) {
	if err := checkGrowthInputs("growth", principal, monthlyContribution, annualReturn, years); err != nil {
		return GrowthResult{}, err
	}

	m := monthlyRate(annualReturn)
	amount := principal
	invested := principal

	for month := 0; month < years*12; month++ {
		amount = amount * (1 + m)
		amount += monthlyContribution
		invested += monthlyContribution
	}

	return GrowthResult{
		FinalAmount:   round2(amount),
		TotalInvested: round2(invested),
		TotalReturns:  round2(amount - invested),
	}, nil
}

// GrowthSeries is CompoundGrowth with the intermediate months kept: one
// point per month carrying the running value, the cumulative amount put in,
// and the gain between the two.
func GrowthSeries(principal, monthlyContribution, annualReturn float64, years int) ([]GrowthPoint, error) {
	if err := checkGrowthInputs("growth", principal, monthlyContribution, annualReturn, years); err != nil {
		return nil, err
	}

	m := monthlyRate(annualReturn)
	amount := principal
	invested := principal
	months := years * 12

	series := make([]GrowthPoint, 0, months)
	for month := 1; month <= months; month++ {
		amount = amount*(1+m) + monthlyContribution
		invested += monthlyContribution

		series = append(series, GrowthPoint{
			Month:    month,
			Value:    round2(amount),
			Invested: round2(invested),
			Returns:  round2(amount - invested),
		})
	}
	return series, nil
}

// RetirementProjection grows the current savings until retirement age and
// reports the monthly withdrawal a 4% annual drawdown would sustain.
func RetirementProjection(currentAge, retirementAge int, savings, monthlyContribution, annualReturn float64) (RetirementResult, error) {
	if currentAge <= 0 {
		return RetirementResult{}, domainErr("retirement", "current age must be positive, got %d", currentAge)
	}
	if retirementAge <= currentAge {
		return RetirementResult{}, domainErr("retirement", "retirement age must be greater than current age")
	}

	years := retirementAge - currentAge
	growth, err := CompoundGrowth(savings, monthlyContribution, annualReturn, years)
	if err != nil {
		return RetirementResult{}, err
	}

	return RetirementResult{
		YearsToRetirement: years,
		GrowthResult:      growth,
		MonthlyWithdrawal: round2(growth.FinalAmount * 0.04 / 12),
	}, nil
}

// SimpleInterest computes non-compounding interest: P * r * t / 100.
// The period may be fractional.
func SimpleInterest(principal, rate, years float64) (SimpleInterestResult, error) {
	if principal <= 0 {
		return SimpleInterestResult{}, domainErr("simple-interest", "principal must be positive, got %.2f", principal)
	}
	if rate < 0 {
		return SimpleInterestResult{}, domainErr("simple-interest", "interest rate must not be negative, got %.2f", rate)
	}
	if years <= 0 {
		return SimpleInterestResult{}, domainErr("simple-interest", "period must be positive, got %.2f", years)
	}

	interest := principal * rate * years / 100
	return SimpleInterestResult{
		Interest: round2(interest),
		Total:    round2(principal + interest),
	}, nil
}
