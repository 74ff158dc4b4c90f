package finance

import "math"

// LoanResult is the outcome of an EMI calculation.
type LoanResult struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
}

// ScheduleRow is one month of an amortization schedule.
type ScheduleRow struct {
	Month     int
	Principal float64
	Interest  float64
	Balance   float64
}

// MortgageResult is the outcome of a mortgage calculation: the underlying
// loan figures plus the financed amount and down-payment share.
type MortgageResult struct {
	LoanAmount         float64
	DownPaymentPercent float64 // share of the home price, 1 decimal place
	LoanResult
}

// EMI computes the equated monthly installment for a loan.
//
//	EMI = P * m * (1+m)^n / ((1+m)^n - 1)
//
// where m is the monthly rate and n the number of months. A zero rate
// degenerates to straight division of the principal over the term.
func EMI(principal, annualRate float64, years int) (LoanResult, error) {
	if principal <= 0 {
		return LoanResult{}, domainErr("emi", "principal must be positive, got %.2f", principal)
	}
	if annualRate < 0 {
		return LoanResult{}, domainErr("emi", "interest rate must not be negative, got %.2f", annualRate)
	}
	if years <= 0 {
		return LoanResult{}, domainErr("emi", "term must be at least one year, got %d", years)
	}

	m := monthlyRate(annualRate)
	months := float64(years * 12)

	var emi float64
	if m == 0 {
		emi = principal / months
	} else {
		pow := math.Pow(1+m, months)
		emi = principal * m * pow / (pow - 1)
	}

	total := emi * months
	return LoanResult{
		MonthlyPayment: round2(emi),
		TotalPayment:   round2(total),
		TotalInterest:  round2(total - principal),
	}, nil
}

// AmortizationSchedule derives the month-by-month split of each payment
// into principal and interest. The rounded EMI is applied every month, so
// the final balance lands within a cent of zero rather than exactly on it.
func AmortizationSchedule(principal, annualRate float64, years int) ([]ScheduleRow, error) {
	loan, err := EMI(principal, annualRate, years)
	if err != nil {
		return nil, err
	}

	m := monthlyRate(annualRate)
	months := years * 12
	balance := principal

	schedule := make([]ScheduleRow, 0, months)
	for month := 1; month <= months; month++ {
		interest := balance * m
		principalPart := loan.MonthlyPayment - interest
		balance -= principalPart

		schedule = append(schedule, ScheduleRow{
			Month:     month,
			Principal: round2(principalPart),
			Interest:  round2(interest),
			Balance:   round2(math.Max(0, balance)),
		})
	}
	return schedule, nil
}

// MortgagePayment computes the monthly payment for a home purchase. The
// financed amount is the home price minus the down payment, which must be
// strictly smaller than the price.
func MortgagePayment(homePrice, downPayment, annualRate float64, years int) (MortgageResult, error) {
	if homePrice <= 0 {
		return MortgageResult{}, domainErr("mortgage", "home price must be positive, got %.2f", homePrice)
	}
	if downPayment < 0 {
		return MortgageResult{}, domainErr("mortgage", "down payment must not be negative, got %.2f", downPayment)
	}
	if downPayment >= homePrice {
		return MortgageResult{}, domainErr("mortgage", "down payment must be less than the home price")
	}

	loanAmount := homePrice - downPayment
	loan, err := EMI(loanAmount, annualRate, years)
	if err != nil {
		return MortgageResult{}, err
	}

	return MortgageResult{
		LoanAmount:         round2(loanAmount),
		DownPaymentPercent: round1(downPayment / homePrice * 100),
		LoanResult:         loan,
	}, nil
}
