package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/cofferhq/coffer/internal/finance"
)

func TestCalcEMI(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/emi", token, map[string]any{
		"principal":   100000,
		"annual_rate": 8.5,
		"years":       15,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got emiResponse
	decodeBody(t, w, &got)

	want, err := finance.EMI(100000, 8.5, 15)
	if err != nil {
		t.Fatalf("EMI: %v", err)
	}
	if got.MonthlyPayment != want.MonthlyPayment {
		t.Errorf("got monthly payment %v, want %v", got.MonthlyPayment, want.MonthlyPayment)
	}
	if got.TotalInterest != want.TotalInterest {
		t.Errorf("got total interest %v, want %v", got.TotalInterest, want.TotalInterest)
	}
	if got.Schedule != nil {
		t.Errorf("got %d schedule rows without asking", len(got.Schedule))
	}
}

func TestCalcEMI_WithSchedule(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/emi", token, map[string]any{
		"principal":        12000,
		"annual_rate":      6,
		"years":            2,
		"include_schedule": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got emiResponse
	decodeBody(t, w, &got)
	if len(got.Schedule) != 24 {
		t.Fatalf("got %d schedule rows, want 24", len(got.Schedule))
	}
	if got.Schedule[23].Balance != 0 {
		t.Errorf("got final balance %v, want 0", got.Schedule[23].Balance)
	}
}

func TestCalcEMI_DomainError(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/emi", token, map[string]any{
		"principal":   0,
		"annual_rate": 8.5,
		"years":       15,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", w.Code)
	}
	var body errorBody
	decodeBody(t, w, &body)
	if !strings.Contains(body.Error, "principal") {
		t.Errorf("got error %q", body.Error)
	}
}

func TestCalcInvestment(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/investment", token, map[string]any{
		"principal":            10000,
		"monthly_contribution": 500,
		"annual_return":        7,
		"years":                3,
		"include_series":       true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got investmentResponse
	decodeBody(t, w, &got)

	want, err := finance.CompoundGrowth(10000, 500, 7, 3)
	if err != nil {
		t.Fatalf("CompoundGrowth: %v", err)
	}
	if got.FinalAmount != want.FinalAmount {
		t.Errorf("got final %v, want %v", got.FinalAmount, want.FinalAmount)
	}
	if got.TotalInvested != want.TotalInvested {
		t.Errorf("got invested %v, want %v", got.TotalInvested, want.TotalInvested)
	}
	if len(got.Series) != 36 {
		t.Errorf("got %d series points, want 36", len(got.Series))
	}
}

func TestCalcTax(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/tax", token, map[string]any{
		"annual_income":      85000,
		"filing_status":      "Single",
		"standard_deduction": 13850,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got taxResponse
	decodeBody(t, w, &got)

	want, err := finance.IncomeTax(85000, "Single", 13850, 0)
	if err != nil {
		t.Fatalf("IncomeTax: %v", err)
	}
	if got.FederalTax != want.FederalTax {
		t.Errorf("got federal tax %v, want %v", got.FederalTax, want.FederalTax)
	}
	if got.EffectiveRate != want.EffectiveRate {
		t.Errorf("got effective rate %v, want %v", got.EffectiveRate, want.EffectiveRate)
	}
}

func TestCalcMortgage(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/mortgage", token, map[string]any{
		"home_price":   400000,
		"down_payment": 80000,
		"annual_rate":  6.5,
		"years":        30,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got mortgageResponse
	decodeBody(t, w, &got)
	if got.LoanAmount != 320000 {
		t.Errorf("got loan amount %v, want 320000", got.LoanAmount)
	}
	if got.DownPaymentPercent != 20 {
		t.Errorf("got down payment percent %v, want 20", got.DownPaymentPercent)
	}

	want, err := finance.MortgagePayment(400000, 80000, 6.5, 30)
	if err != nil {
		t.Fatalf("MortgagePayment: %v", err)
	}
	if got.MonthlyPayment != want.MonthlyPayment {
		t.Errorf("got monthly payment %v, want %v", got.MonthlyPayment, want.MonthlyPayment)
	}
}

func TestCalcRetirement(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/retirement", token, map[string]any{
		"current_age":          30,
		"retirement_age":       65,
		"current_savings":      25000,
		"monthly_contribution": 500,
		"annual_return":        7,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got retirementResponse
	decodeBody(t, w, &got)
	if got.YearsToRetirement != 35 {
		t.Errorf("got %d years to retirement, want 35", got.YearsToRetirement)
	}

	want, err := finance.RetirementProjection(30, 65, 25000, 500, 7)
	if err != nil {
		t.Fatalf("RetirementProjection: %v", err)
	}
	if got.MonthlyWithdrawal != want.MonthlyWithdrawal {
		t.Errorf("got withdrawal %v, want %v", got.MonthlyWithdrawal, want.MonthlyWithdrawal)
	}

	w = do(t, srv, http.MethodPost, "/api/calc/retirement", token, map[string]any{
		"current_age":    65,
		"retirement_age": 30,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("backwards ages: got status %d, want 422", w.Code)
	}
}

func TestCalcSavingsGoal(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/savings-goal", token, map[string]any{
		"target_amount":   10000,
		"current_savings": 12000,
		"annual_return":   5,
		"years":           2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got savingsGoalResponse
	decodeBody(t, w, &got)
	if !got.Achieved {
		t.Error("goal should be achieved already")
	}
	if got.MonthlyRequired != 0 {
		t.Errorf("got monthly required %v, want 0", got.MonthlyRequired)
	}

	w = do(t, srv, http.MethodPost, "/api/calc/savings-goal", token, map[string]any{
		"target_amount":   10000,
		"current_savings": 2000,
		"annual_return":   5,
		"years":           2,
	})
	var partway savingsGoalResponse
	decodeBody(t, w, &partway)
	want, err := finance.SavingsGoal(10000, 2000, 5, 2)
	if err != nil {
		t.Fatalf("SavingsGoal: %v", err)
	}
	if partway.MonthlyRequired != want.MonthlyRequired {
		t.Errorf("got monthly required %v, want %v", partway.MonthlyRequired, want.MonthlyRequired)
	}
}

func TestCalcSimpleInterest(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/calc/simple-interest", token, map[string]any{
		"principal": 1000,
		"rate":      5,
		"years":     2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got simpleInterestResponse
	decodeBody(t, w, &got)
	if got.Interest != 100 {
		t.Errorf("got interest %v, want 100", got.Interest)
	}
	if got.Total != 1100 {
		t.Errorf("got total %v, want 1100", got.Total)
	}
}
