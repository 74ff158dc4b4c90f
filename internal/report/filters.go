// Record filtering and the sort modes the list views offer.
package report

import (
	"sort"
	"time"

	"github.com/cofferhq/coffer/pkg/types"
)

// Expense sort modes.
const (
	SortDateDesc   = "date_desc"
	SortDateAsc    = "date_asc"
	SortAmountDesc = "amount_desc"
	SortAmountAsc  = "amount_asc"
)

// Task sort modes.
const (
	TaskSortDueDate  = "due_date"
	TaskSortPriority = "priority"
	TaskSortCreated  = "created"
	TaskSortTitle    = "title"
)

// FilterExpenses keeps expenses within the day range and category. A zero
// from or to leaves that side unbounded; an empty category matches all.
// Both boundary days are included.
func FilterExpenses(expenses []types.Expense, from, to time.Time, category string) []types.Expense {
	fromDay, toDay := "", ""
	if !from.IsZero() {
		fromDay = dayString(from)
	}
	if !to.IsZero() {
		toDay = dayString(to)
	}

	out := make([]types.Expense, 0, len(expenses))
	for i := range expenses {
		day := dayString(expenses[i].Date)
		if fromDay != "" && day < fromDay {
			continue
		}
		if toDay != "" && day > toDay {
			continue
		}
		if category != "" && expenses[i].Category != category {
			continue
		}
		out = append(out, expenses[i])
	}
	return out
}

// SortExpenses orders the slice in place. Sorts are stable; an unknown
// mode leaves the order unchanged.
func SortExpenses(expenses []types.Expense, mode string) {
	switch mode {
	case SortDateDesc:
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].Date.After(expenses[j].Date)
		})
	case SortDateAsc:
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].Date.Before(expenses[j].Date)
		})
	case SortAmountDesc:
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].Amount.GreaterThan(expenses[j].Amount)
		})
	case SortAmountAsc:
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].Amount.LessThan(expenses[j].Amount)
		})
	}
}

// FilterTasks keeps tasks matching the given status, category, and
// priority. Empty selectors match all.
func FilterTasks(tasks []types.BacklogTask, status, category, priority string) []types.BacklogTask {
	out := make([]types.BacklogTask, 0, len(tasks))
	for i := range tasks {
		if status != "" && tasks[i].Status != status {
			continue
		}
		if category != "" && tasks[i].Category != category {
			continue
		}
		if priority != "" && tasks[i].Priority != priority {
			continue
		}
		out = append(out, tasks[i])
	}
	return out
}

// SortTasks orders the slice in place. Sorts are stable; an unknown mode
// leaves the order unchanged. Due date sorting puts tasks without a due
// date last; priority sorting puts Urgent first.
func SortTasks(tasks []types.BacklogTask, mode string) {
	switch mode {
	case TaskSortDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if a.IsZero() {
				return false
			}
			if b.IsZero() {
				return true
			}
			return a.Before(b)
		})
	case TaskSortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return types.PriorityRank(tasks[i].Priority) < types.PriorityRank(tasks[j].Priority)
		})
	case TaskSortCreated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	case TaskSortTitle:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Title < tasks[j].Title
		})
	}
}

// Overdue returns tasks whose due date has passed and are not completed.
func Overdue(tasks []types.BacklogTask, today time.Time) []types.BacklogTask {
	out := make([]types.BacklogTask, 0)
	for i := range tasks {
		if tasks[i].Overdue(today) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// DueSoon returns incomplete tasks due between today and today+days,
// inclusive on both ends.
func DueSoon(tasks []types.BacklogTask, today time.Time, days int) []types.BacklogTask {
	out := make([]types.BacklogTask, 0)
	for i := range tasks {
		if tasks[i].DueWithin(today, days) {
			out = append(out, tasks[i])
		}
	}
	return out
}
