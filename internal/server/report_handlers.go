// Dashboard and analytics endpoints, serving the aggregates behind the
// overview page and its charts.
package server

import (
	"net/http"

	"github.com/cofferhq/coffer/internal/report"
)

// recentCount is how many transactions the dashboard shows.
const recentCount = 5

type dashboardResponse struct {
	report.Summary
	Recent []expenseJSON `json:"recent_transactions"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	expenses, err := s.store.ExpensesFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "loading dashboard", err)
		return
	}
	tasks, err := s.store.TasksFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "loading dashboard", err)
		return
	}

	s.respond(w, http.StatusOK, dashboardResponse{
		Summary: report.Summarize(expenses, tasks, s.now()),
		Recent:  expensesToJSON(report.Recent(expenses, recentCount)),
	})
}

// handleDailySeries returns one point per day with spending, thirty days
// back unless the days parameter says otherwise. A non-positive window
// covers the whole history.
func (s *Server) handleDailySeries(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	days, ok := s.intParam(w, r.URL.Query(), "days", 30)
	if !ok {
		return
	}

	expenses, err := s.store.ExpensesFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "loading daily series", err)
		return
	}

	series := report.DailySeries(expenses, days, s.now())
	if series == nil {
		series = make([]report.DailyTotal, 0)
	}
	s.respond(w, http.StatusOK, series)
}

func (s *Server) handleCategoryTotals(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	expenses, err := s.store.ExpensesFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "loading category totals", err)
		return
	}

	totals := report.CategoryTotals(expenses)
	if totals == nil {
		totals = make([]report.CategoryTotal, 0)
	}
	s.respond(w, http.StatusOK, totals)
}

func (s *Server) handlePaymentMethodTotals(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	expenses, err := s.store.ExpensesFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "loading payment method totals", err)
		return
	}

	totals := report.PaymentMethodTotals(expenses)
	if totals == nil {
		totals = make([]report.PaymentMethodTotal, 0)
	}
	s.respond(w, http.StatusOK, totals)
}
