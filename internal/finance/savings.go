package finance

import "math"

// SavingsGoalResult is the outcome of a savings-goal calculation.
type SavingsGoalResult struct {
	TargetAmount    float64
	CurrentSavings  float64
	Remaining       float64 // target minus current, zero once achieved
	MonthlyRequired float64
	Achieved        bool
}

// SavingsGoal solves for the monthly saving needed to reach a target.
// Current savings keep compounding at the expected return; the sinking-fund
// formula covers whatever that growth leaves uncovered. A target already
// reached short-circuits to an achieved result without consulting the
// period.
func SavingsGoal(target, current, annualReturn float64, years int) (SavingsGoalResult, error) {
	if target <= 0 {
		return SavingsGoalResult{}, domainErr("savings-goal", "target must be positive, got %.2f", target)
	}
	if current < 0 {
		return SavingsGoalResult{}, domainErr("savings-goal", "current savings must not be negative, got %.2f", current)
	}
	if annualReturn < 0 {
		return SavingsGoalResult{}, domainErr("savings-goal", "annual return must not be negative, got %.2f", annualReturn)
	}

	if current >= target {
		return SavingsGoalResult{
			TargetAmount:   round2(target),
			CurrentSavings: round2(current),
			Achieved:       true,
		}, nil
	}

	if years <= 0 {
		return SavingsGoalResult{}, domainErr("savings-goal", "period must be at least one year, got %d", years)
	}

	m := monthlyRate(annualReturn)
	months := float64(years * 12)

	// What the current savings alone will grow into.
	futureValue := current * math.Pow(1+m, months)
	needed := target - futureValue

	var monthly float64
	switch {
	case needed <= 0:
		monthly = 0
	case m == 0:
		monthly = needed / months
	default:
		monthly = needed * m / (math.Pow(1+m, months) - 1)
	}

	return SavingsGoalResult{
		TargetAmount:    round2(target),
		CurrentSavings:  round2(current),
		Remaining:       round2(target - current),
		MonthlyRequired: round2(monthly),
	}, nil
}
