// Calculator endpoints. Each one maps a JSON request onto the pure
// functions in internal/finance and flattens the result back out; inputs
// outside a calculator's domain come back as 422 with the reason.
package server

import (
	"errors"
	"net/http"

	"github.com/cofferhq/coffer/internal/finance"
)

// failCalc maps calculator domain errors to 422. Anything else would be a
// bug in the calculators, which never touch storage or the network.
func (s *Server) failCalc(w http.ResponseWriter, err error) {
	var derr *finance.DomainError
	if errors.As(err, &derr) {
		s.fail(w, http.StatusUnprocessableEntity, derr.Error())
		return
	}
	s.log.Errorw("calculating", "error", err)
	s.fail(w, http.StatusInternalServerError, "calculation failed")
}

type emiRequest struct {
	Principal       float64 `json:"principal"`
	AnnualRate      float64 `json:"annual_rate"`
	Years           int     `json:"years"`
	IncludeSchedule bool    `json:"include_schedule"`
}

type scheduleRowJSON struct {
	Month     int     `json:"month"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type emiResponse struct {
	MonthlyPayment float64           `json:"monthly_payment"`
	TotalPayment   float64           `json:"total_payment"`
	TotalInterest  float64           `json:"total_interest"`
	Schedule       []scheduleRowJSON `json:"schedule,omitempty"`
}

func (s *Server) handleEMI(w http.ResponseWriter, r *http.Request) {
	var req emiRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := finance.EMI(req.Principal, req.AnnualRate, req.Years)
	if err != nil {
		s.failCalc(w, err)
		return
	}
	resp := emiResponse{
		MonthlyPayment: result.MonthlyPayment,
		TotalPayment:   result.TotalPayment,
		TotalInterest:  result.TotalInterest,
	}
	if req.IncludeSchedule {
		rows, err := finance.AmortizationSchedule(req.Principal, req.AnnualRate, req.Years)
		if err != nil {
			s.failCalc(w, err)
			return
		}
		resp.Schedule = make([]scheduleRowJSON, 0, len(rows))
		for _, row := range rows {
			resp.Schedule = append(resp.Schedule, scheduleRowJSON{
				Month:     row.Month,
				Principal: row.Principal,
				Interest:  row.Interest,
				Balance:   row.Balance,
			})
		}
	}
	s.respond(w, http.StatusOK, resp)
}

type investmentRequest struct {
	Principal           float64 `json:"principal"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualReturn        float64 `json:"annual_return"`
	Years               int     `json:"years"`
	IncludeSeries       bool    `json:"include_series"`
}

type growthPointJSON struct {
	Month    int     `json:"month"`
	Value    float64 `json:"value"`
	Invested float64 `json:"invested"`
	Returns  float64 `json:"returns"`
}

type investmentResponse struct {
	FinalAmount   float64           `json:"final_amount"`
	TotalInvested float64           `json:"total_invested"`
	TotalReturns  float64           `json:"total_returns"`
	Series        []growthPointJSON `json:"series,omitempty"`
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := finance.CompoundGrowth(req.Principal, req.MonthlyContribution, req.AnnualReturn, req.Years)
	if err != nil {
		s.failCalc(w, err)
		return
	}
	resp := investmentResponse{
		FinalAmount:   result.FinalAmount,
		TotalInvested: result.TotalInvested,
		TotalReturns:  result.TotalReturns,
	}
	if req.IncludeSeries {
		points, err := finance.GrowthSeries(req.Principal, req.MonthlyContribution, req.AnnualReturn, req.Years)
		if err != nil {
			s.failCalc(w, err)
			return
		}
		resp.Series = make([]growthPointJSON, 0, len(points))
		for _, p := range points {
			resp.Series = append(resp.Series, growthPointJSON{
				Month:    p.Month,
				Value:    p.Value,
				Invested: p.Invested,
				Returns:  p.Returns,
			})
		}
	}
	s.respond(w, http.StatusOK, resp)
}

type taxRequest struct {
	AnnualIncome      float64 `json:"annual_income"`
	FilingStatus      string  `json:"filing_status"`
	StandardDeduction float64 `json:"standard_deduction"`
	OtherDeductions   float64 `json:"other_deductions"`
}

type taxResponse struct {
	AnnualIncome    float64 `json:"annual_income"`
	TotalDeductions float64 `json:"total_deductions"`
	TaxableIncome   float64 `json:"taxable_income"`
	FederalTax      float64 `json:"federal_tax"`
	AfterTaxIncome  float64 `json:"after_tax_income"`
	EffectiveRate   float64 `json:"effective_rate"`
}

func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := finance.IncomeTax(req.AnnualIncome, req.FilingStatus, req.StandardDeduction, req.OtherDeductions)
	if err != nil {
		s.failCalc(w, err)
		return
	}
	s.respond(w, http.StatusOK, taxResponse{
		AnnualIncome:    result.AnnualIncome,
		TotalDeductions: result.TotalDeductions,
		TaxableIncome:   result.TaxableIncome,
		FederalTax:      result.FederalTax,
		AfterTaxIncome:  result.AfterTaxIncome,
		EffectiveRate:   result.EffectiveRate,
	})
}

type mortgageRequest struct {
	HomePrice   float64 `json:"home_price"`
	DownPayment float64 `json:"down_payment"`
	AnnualRate  float64 `json:"annual_rate"`
	Years       int     `json:"years"`
}

type mortgageResponse struct {
	LoanAmount         float64 `json:"loan_amount"`
	DownPaymentPercent float64 `json:"down_payment_percent"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	TotalPayment       float64 `json:"total_payment"`
	TotalInterest      float64 `json:"total_interest"`
}

func (s *Server) handleMortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := finance.MortgagePayment(req.HomePrice, req.DownPayment, req.AnnualRate, req.Years)
	if err != nil {
		s.failCalc(w, err)
		return
	}
	s.respond(w, http.StatusOK, mortgageResponse{
		LoanAmount:         result.LoanAmount,
		DownPaymentPercent: result.DownPaymentPercent,
		MonthlyPayment:     result.MonthlyPayment,
		TotalPayment:       result.TotalPayment,
		TotalInterest:      result.TotalInterest,
	})
}

type retirementRequest struct {
	CurrentAge          int     `json:"current_age"`
	RetirementAge       int     `json:"retirement_age"`
	CurrentSavings      float64 `json:"current_savings"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualReturn        float64 `json:"annual_return"`
}

type retirementResponse struct {
	YearsToRetirement int     `json:"years_to_retirement"`
	FinalAmount       float64 `json:"final_amount"`
	TotalInvested     float64 `json:"total_invested"`
	TotalReturns      float64 `json:"total_returns"`
	MonthlyWithdrawal float64 `json:"monthly_withdrawal"`
}

func (s *Server) handleRetirement(w http.ResponseWriter, r *http.Request) {
	var req retirementRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := finance.RetirementProjection(req.CurrentAge, req.RetirementAge, req.CurrentSavings, req.MonthlyContribution, req.AnnualReturn)
	if err != nil {
		s.failCalc(w, err)
		return
	}
	s.respond(w, http.StatusOK, retirementResponse{
		YearsToRetirement: result.YearsToRetirement,
		FinalAmount:       result.FinalAmount,
		TotalInvested:     result.TotalInvested,
		TotalReturns:      result.TotalReturns,
		MonthlyWithdrawal: result.MonthlyWithdrawal,
	})
}

type savingsGoalRequest struct {
	TargetAmount   float64 `json:"target_amount"`
	CurrentSavings float64 `json:"current_savings"`
	AnnualReturn   float64 `json:"annual_return"`
	Years          int     `json:"years"`
}

type savingsGoalResponse struct {
	TargetAmount    float64 `json:"target_amount"`
	CurrentSavings  float64 `json:"current_savings"`
	Remaining       float64 `json:"remaining"`
	MonthlyRequired float64 `json:"monthly_required"`
	Achieved        bool    `json:"achieved"`
}

func (s *Server) handleSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var req savingsGoalRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := finance.SavingsGoal(req.TargetAmount, req.CurrentSavings, req.AnnualReturn, req.Years)
	if err != nil {
		s.failCalc(w, err)
		return
	}
	s.respond(w, http.StatusOK, savingsGoalResponse{
		TargetAmount:    result.TargetAmount,
		CurrentSavings:  result.CurrentSavings,
		Remaining:       result.Remaining,
		MonthlyRequired: result.MonthlyRequired,
		Achieved:        result.Achieved,
	})
}

type simpleInterestRequest struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Years     float64 `json:"years"`
}

type simpleInterestResponse struct {
	Interest float64 `json:"interest"`
	Total    float64 `json:"total"`
}

func (s *Server) handleSimpleInterest(w http.ResponseWriter, r *http.Request) {
	var req simpleInterestRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := finance.SimpleInterest(req.Principal, req.Rate, req.Years)
	if err != nil {
		s.failCalc(w, err)
		return
	}
	s.respond(w, http.StatusOK, simpleInterestResponse{
		Interest: result.Interest,
		Total:    result.Total,
	})
}
