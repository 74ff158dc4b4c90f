// Expense endpoints: CRUD, filtered listing, CSV export, and the
// per-category summary.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/internal/report"
	"github.com/cofferhq/coffer/pkg/types"
)

type expenseJSON struct {
	ExpenseID     int64           `json:"expense_id"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	CreatedAt     string          `json:"created_at"`
}

func expenseToJSON(e *types.Expense) expenseJSON {
	return expenseJSON{
		ExpenseID:     e.ExpenseID,
		Date:          e.Date.Format(types.DateLayout),
		Amount:        e.Amount,
		Category:      e.Category,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt.Format(types.TimestampLayout),
	}
}

func expensesToJSON(expenses []types.Expense) []expenseJSON {
	out := make([]expenseJSON, 0, len(expenses))
	for i := range expenses {
		out = append(out, expenseToJSON(&expenses[i]))
	}
	return out
}

type expensePayload struct {
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req expensePayload
	if !s.decode(w, r, &req) {
		return
	}

	expense := types.Expense{
		UserID:        claims.UserID,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   strings.TrimSpace(req.Description),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.Date != "" {
		date, err := time.Parse(types.DateLayout, req.Date)
		if err != nil {
			s.failValidation(w, []string{"Date must be in YYYY-MM-DD format"})
			return
		}
		expense.Date = date
	}
	if problems := expense.Problems(); len(problems) > 0 {
		s.failValidation(w, problems)
		return
	}

	if err := s.store.AddExpense(&expense); err != nil {
		s.storageFail(w, "adding expense", err)
		return
	}
	s.respond(w, http.StatusCreated, expenseToJSON(&expense))
}

// handleListExpenses returns the caller's expenses, optionally narrowed
// by from/to dates and a category, in one of the four sort modes. The
// default order is newest date first.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	expenses, err := s.store.ExpensesFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "listing expenses", err)
		return
	}

	q := r.URL.Query()
	from, ok := s.dateParam(w, q, "from")
	if !ok {
		return
	}
	to, ok := s.dateParam(w, q, "to")
	if !ok {
		return
	}
	expenses = report.FilterExpenses(expenses, from, to, q.Get("category"))

	mode := q.Get("sort")
	if mode == "" {
		mode = report.SortDateDesc
	}
	report.SortExpenses(expenses, mode)

	s.respond(w, http.StatusOK, expensesToJSON(expenses))
}

type expenseUpdate struct {
	Date          *string          `json:"date"`
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	PaymentMethod *string          `json:"payment_method"`
	Notes         *string          `json:"notes"`
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	var req expenseUpdate
	if !s.decode(w, r, &req) {
		return
	}

	var problems []string
	changes := types.ExpenseChanges{
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		date, err := time.Parse(types.DateLayout, *req.Date)
		if err != nil {
			problems = append(problems, "Date must be in YYYY-MM-DD format")
		} else {
			changes.Date = &date
		}
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		problems = append(problems, "Amount must be greater than 0")
	}
	if req.Category != nil && !types.ValidExpenseCategory(*req.Category) {
		problems = append(problems, "Category is not recognized")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		problems = append(problems, "Description is required")
	}
	if req.PaymentMethod != nil && !types.ValidPaymentMethod(*req.PaymentMethod) {
		problems = append(problems, "Payment method is not recognized")
	}
	if len(problems) > 0 {
		s.failValidation(w, problems)
		return
	}

	err := s.store.UpdateExpense(id, claims.UserID, changes)
	if errors.Is(err, types.ErrRecordNotFound) {
		s.fail(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.storageFail(w, "updating expense", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}

	err := s.store.DeleteExpense(id, claims.UserID)
	if errors.Is(err, types.ErrRecordNotFound) {
		s.fail(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.storageFail(w, "deleting expense", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportExpenses streams the caller's rows as a CSV attachment with
// the same columns as the table file.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	doc, err := s.store.ExportExpenses(claims.UserID)
	if err != nil {
		s.storageFail(w, "exporting expenses", err)
		return
	}

	filename := fmt.Sprintf("user_%d_expenses_%s.csv", claims.UserID, s.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(doc); err != nil {
		s.log.Errorw("writing export", "error", err)
	}
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	expenses, err := s.store.ExpensesFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "summarizing expenses", err)
		return
	}

	totals := report.CategoryTotals(expenses)
	if totals == nil {
		totals = make([]report.CategoryTotal, 0)
	}
	s.respond(w, http.StatusOK, totals)
}
