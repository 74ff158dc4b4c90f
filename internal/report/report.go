// Package report computes dashboard summaries and spending analytics over
// a user's records. Everything here is a pure function: callers pass the
// loaded records and, where windows matter, the reference day.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/pkg/types"
)

// Summary is the dashboard headline: lifetime totals, rolling 7 and 30
// day windows, and task counts.
type Summary struct {
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	MonthlyExpenses  decimal.Decimal `json:"monthly_expenses"`
	WeeklyExpenses   decimal.Decimal `json:"weekly_expenses"`
	AverageDaily     decimal.Decimal `json:"average_daily"`
	TransactionCount int             `json:"transaction_count"`
	CategoriesUsed   int             `json:"categories_used"`
	TotalTasks       int             `json:"total_tasks"`
	PendingTasks     int             `json:"pending_tasks"`
	CompletedTasks   int             `json:"completed_tasks"`
}

// Summarize aggregates a user's expenses and tasks as of the given day.
// The 30 and 7 day windows include their boundary days; the daily average
// is the 30 day total over 30, zero when nothing was spent.
func Summarize(expenses []types.Expense, tasks []types.BacklogTask, today time.Time) Summary {
	monthCutoff := dayString(today.AddDate(0, 0, -30))
	weekCutoff := dayString(today.AddDate(0, 0, -7))

	s := Summary{
		TransactionCount: len(expenses),
		TotalTasks:       len(tasks),
	}

	categories := make(map[string]struct{})
	for i := range expenses {
		e := &expenses[i]
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		day := dayString(e.Date)
		if day >= monthCutoff {
			s.MonthlyExpenses = s.MonthlyExpenses.Add(e.Amount)
		}
		if day >= weekCutoff {
			s.WeeklyExpenses = s.WeeklyExpenses.Add(e.Amount)
		}
		categories[e.Category] = struct{}{}
	}
	s.CategoriesUsed = len(categories)
	if s.MonthlyExpenses.IsPositive() {
		s.AverageDaily = s.MonthlyExpenses.Div(decimal.NewFromInt(30)).Round(2)
	}

	for i := range tasks {
		switch tasks[i].Status {
		case types.StatusPending:
			s.PendingTasks++
		case types.StatusCompleted:
			s.CompletedTasks++
		}
	}
	return s
}

// Recent returns the n newest expenses by date, leaving the input
// untouched. Records sharing a date keep their relative order.
func Recent(expenses []types.Expense, n int) []types.Expense {
	out := make([]types.Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// dayString compares and groups at day granularity. Date strings order
// lexicographically the same way the days do.
func dayString(t time.Time) string {
	return t.Format(types.DateLayout)
}
