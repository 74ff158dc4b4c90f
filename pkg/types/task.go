package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Task statuses. A task progresses through these during its lifecycle.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// TaskCategories lists the recognized planning categories, in display order.
var TaskCategories = []string{
	"Budget Planning",
	"Investment",
	"Tax Planning",
	"Insurance",
	"Debt Management",
	"Savings Goal",
	"Bill Payment",
	"Financial Review",
	"Other",
}

// validPriorities is the set of recognized priority values.
var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// validStatuses is the set of recognized status values.
var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

var validTaskCategories = toSet(TaskCategories)

// priorityRank orders priorities for sorting, most urgent first.
var priorityRank = map[string]int{
	PriorityUrgent: 0,
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

// PriorityRank returns the sort rank of a priority, most urgent first.
// Unknown priorities sort last.
func PriorityRank(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return len(priorityRank)
}

// ValidPriority reports whether the priority is recognized.
func ValidPriority(priority string) bool {
	return validPriorities[priority]
}

// ValidStatus reports whether the status is recognized.
func ValidStatus(status string) bool {
	return validStatuses[status]
}

// ValidTaskCategory reports whether the category is recognized.
func ValidTaskCategory(category string) bool {
	return validTaskCategories[category]
}

// BacklogTask is a planned financial action owned by one user.
type BacklogTask struct {
	TaskID          int64
	UserID          int64
	Title           string
	Description     string
	Category        string
	Priority        string // one of the Priority constants
	Status          string // one of the Status constants
	DueDate         time.Time           // zero when the task has no deadline
	EstimatedAmount decimal.NullDecimal // optional cost estimate
	Notes           string              // optional
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TaskChanges selects task fields to modify. Nil fields are left untouched.
// Pointing DueDate at the zero time clears the deadline.
type TaskChanges struct {
	Title           *string
	Description     *string
	Category        *string
	Priority        *string
	Status          *string
	DueDate         *time.Time
	EstimatedAmount *decimal.NullDecimal
	Notes           *string
}

// SetStatus moves the task to the given status and refreshes UpdatedAt.
// Returns ErrInvalidStatus if the status is not recognized.
// Idempotent: setting the current status succeeds without error.
func (t *BacklogTask) SetStatus(status string) error {
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

// SetPriority changes the task priority and refreshes UpdatedAt.
// Returns ErrInvalidPriority if the priority is not recognized.
func (t *BacklogTask) SetPriority(priority string) error {
	if !validPriorities[priority] {
		return ErrInvalidPriority
	}
	t.Priority = priority
	t.UpdatedAt = time.Now()
	return nil
}

// Overdue reports whether the task has a deadline before today and is not
// completed. The comparison is at calendar-day granularity.
func (t *BacklogTask) Overdue(today time.Time) bool {
	if t.DueDate.IsZero() || t.Status == StatusCompleted {
		return false
	}
	return t.DueDate.Format(DateLayout) < today.Format(DateLayout)
}

// DueWithin reports whether the task is due between today and today+days
// inclusive and is not completed.
func (t *BacklogTask) DueWithin(today time.Time, days int) bool {
	if t.DueDate.IsZero() || t.Status == StatusCompleted {
		return false
	}
	due := t.DueDate.Format(DateLayout)
	return due >= today.Format(DateLayout) && due <= today.AddDate(0, 0, days).Format(DateLayout)
}

// Problems validates the task and returns one human-readable message per
// violated rule. An empty slice means the task is acceptable.
func (t *BacklogTask) Problems() []string {
	var problems []string
	if strings.TrimSpace(t.Title) == "" {
		problems = append(problems, "Task title is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		problems = append(problems, "Task description is required")
	}
	if !validTaskCategories[t.Category] {
		problems = append(problems, "Category is not recognized")
	}
	if !validPriorities[t.Priority] {
		problems = append(problems, "Priority is not recognized")
	}
	if !validStatuses[t.Status] {
		problems = append(problems, "Status is not recognized")
	}
	if t.EstimatedAmount.Valid && !t.EstimatedAmount.Decimal.IsPositive() {
		problems = append(problems, "Estimated amount must be greater than 0")
	}
	return problems
}
