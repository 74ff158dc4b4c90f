package server

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/internal/report"
)

func TestCreateExpense(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{
		"date":           "2025-03-15",
		"amount":         "42.5",
		"category":       "Food & Dining",
		"description":    "groceries",
		"payment_method": "Cash",
		"notes":          "weekly run",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var e expenseJSON
	decodeBody(t, w, &e)
	if e.ExpenseID != 1 {
		t.Errorf("got expense_id %d, want 1", e.ExpenseID)
	}
	if e.Date != "2025-03-15" {
		t.Errorf("got date %q", e.Date)
	}
	if !e.Amount.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("got amount %s", e.Amount)
	}
	if e.Notes != "weekly run" {
		t.Errorf("got notes %q", e.Notes)
	}
	if e.CreatedAt == "" {
		t.Error("created_at is empty")
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")

	w := do(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	var body problemsBody
	decodeBody(t, w, &body)
	if len(body.Errors) != 5 {
		t.Errorf("got %d problems %v, want 5", len(body.Errors), body.Errors)
	}

	w = do(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{
		"date": "15/03/2025",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: got status %d, want 400", w.Code)
	}
	body = problemsBody{}
	decodeBody(t, w, &body)
	if len(body.Errors) != 1 || body.Errors[0] != "Date must be in YYYY-MM-DD format" {
		t.Errorf("got problems %v", body.Errors)
	}
}

func TestListExpenses(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")
	addExpense(t, srv, token, "2025-03-10", "20", "Food & Dining", "Cash")
	addExpense(t, srv, token, "2025-03-12", "80", "Travel", "Credit Card")
	addExpense(t, srv, token, "2025-02-01", "5", "Food & Dining", "Cash")

	// Default order is newest date first.
	w := do(t, srv, http.MethodGet, "/api/expenses", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var got []expenseJSON
	decodeBody(t, w, &got)
	if len(got) != 3 {
		t.Fatalf("got %d expenses, want 3", len(got))
	}
	if got[0].Date != "2025-03-12" || got[2].Date != "2025-02-01" {
		t.Errorf("got order %s, %s, %s", got[0].Date, got[1].Date, got[2].Date)
	}

	// Category filter.
	w = do(t, srv, http.MethodGet, "/api/expenses?category="+url.QueryEscape("Food & Dining"), token, nil)
	got = nil
	decodeBody(t, w, &got)
	if len(got) != 2 {
		t.Errorf("category filter: got %d expenses, want 2", len(got))
	}

	// Period filter, inclusive on both ends.
	w = do(t, srv, http.MethodGet, "/api/expenses?from=2025-03-10&to=2025-03-12", token, nil)
	got = nil
	decodeBody(t, w, &got)
	if len(got) != 2 {
		t.Errorf("period filter: got %d expenses, want 2", len(got))
	}

	// Amount sort.
	w = do(t, srv, http.MethodGet, "/api/expenses?sort=amount_asc", token, nil)
	got = nil
	decodeBody(t, w, &got)
	if !got[0].Amount.Equal(decimal.NewFromInt(5)) || !got[2].Amount.Equal(decimal.NewFromInt(80)) {
		t.Errorf("amount sort: got %s, %s, %s", got[0].Amount, got[1].Amount, got[2].Amount)
	}

	// Malformed bounds are rejected.
	w = do(t, srv, http.MethodGet, "/api/expenses?from=March", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad bound: got status %d, want 400", w.Code)
	}
}

func TestUpdateExpense(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")
	created := addExpense(t, srv, token, "2025-03-10", "20", "Food & Dining", "Cash")

	w := do(t, srv, http.MethodPatch, "/api/expenses/1", token, map[string]any{
		"amount": "35.5",
		"notes":  "corrected",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}

	w = do(t, srv, http.MethodGet, "/api/expenses", token, nil)
	var got []expenseJSON
	decodeBody(t, w, &got)
	if !got[0].Amount.Equal(decimal.RequireFromString("35.5")) {
		t.Errorf("got amount %s, want 35.5", got[0].Amount)
	}
	if got[0].Notes != "corrected" {
		t.Errorf("got notes %q", got[0].Notes)
	}
	if got[0].Date != created.Date {
		t.Errorf("date changed to %q", got[0].Date)
	}

	// Invalid changes are rejected before touching the store.
	w = do(t, srv, http.MethodPatch, "/api/expenses/1", token, map[string]any{
		"amount": "-5",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative amount: got status %d, want 400", w.Code)
	}

	w = do(t, srv, http.MethodPatch, "/api/expenses/99", token, map[string]any{
		"notes": "nothing here",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: got status %d, want 404", w.Code)
	}
}

func TestDeleteExpense(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")
	addExpense(t, srv, token, "2025-03-10", "20", "Food & Dining", "Cash")

	w := do(t, srv, http.MethodDelete, "/api/expenses/1", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}

	w = do(t, srv, http.MethodGet, "/api/expenses", token, nil)
	var got []expenseJSON
	decodeBody(t, w, &got)
	if len(got) != 0 {
		t.Errorf("got %d expenses after delete", len(got))
	}

	w = do(t, srv, http.MethodDelete, "/api/expenses/1", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: got status %d, want 404", w.Code)
	}
}

func TestExpenseOwnership(t *testing.T) {
	srv := newTestServer(t)
	frank := registerAndLogin(t, srv, "frank")
	georgia := registerAndLogin(t, srv, "georgia")
	addExpense(t, srv, frank, "2025-03-10", "20", "Food & Dining", "Cash")

	w := do(t, srv, http.MethodGet, "/api/expenses", georgia, nil)
	var got []expenseJSON
	decodeBody(t, w, &got)
	if len(got) != 0 {
		t.Errorf("georgia sees %d of frank's expenses", len(got))
	}

	// Foreign records look exactly like missing ones.
	w = do(t, srv, http.MethodPatch, "/api/expenses/1", georgia, map[string]any{"notes": "mine now"})
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign update: got status %d, want 404", w.Code)
	}
	w = do(t, srv, http.MethodDelete, "/api/expenses/1", georgia, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign delete: got status %d, want 404", w.Code)
	}
}

func TestExportExpenses(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")
	addExpense(t, srv, token, "2025-03-10", "20", "Food & Dining", "Cash")
	addExpense(t, srv, token, "2025-03-12", "80", "Travel", "Credit Card")

	w := do(t, srv, http.MethodGet, "/api/expenses/export", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("got Content-Type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "user_1_expenses_") {
		t.Errorf("got Content-Disposition %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "expense_id,user_id,date,amount") {
		t.Errorf("got header %q", lines[0])
	}
	// Rows come newest date first.
	if !strings.Contains(lines[1], "2025-03-12") {
		t.Errorf("got first row %q", lines[1])
	}
}

func TestExpenseSummary(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "frank")
	addExpense(t, srv, token, "2025-03-10", "10", "Food & Dining", "Cash")
	addExpense(t, srv, token, "2025-03-11", "20", "Food & Dining", "Cash")
	addExpense(t, srv, token, "2025-03-12", "40", "Travel", "Credit Card")

	w := do(t, srv, http.MethodGet, "/api/expenses/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var totals []report.CategoryTotal
	decodeBody(t, w, &totals)
	if len(totals) != 2 {
		t.Fatalf("got %d categories, want 2", len(totals))
	}
	if totals[0].Category != "Travel" || !totals[0].Total.Equal(decimal.NewFromInt(40)) {
		t.Errorf("got top category %+v", totals[0])
	}
	if totals[1].Count != 2 || !totals[1].Average.Equal(decimal.NewFromInt(15)) {
		t.Errorf("got second category %+v", totals[1])
	}
}
