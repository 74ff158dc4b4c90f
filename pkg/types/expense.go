package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategories lists the recognized spending categories, in display
// order.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	"Groceries",
	"Other",
}

// PaymentMethods lists the recognized payment methods.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Bank Transfer",
	"Digital Wallet",
}

var (
	validExpenseCategories = toSet(ExpenseCategories)
	validPaymentMethods    = toSet(PaymentMethods)
)

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Expense is a single spending record owned by one user.
type Expense struct {
	ExpenseID     int64
	UserID        int64
	Date          time.Time // calendar date of the spend
	Amount        decimal.Decimal
	Category      string
	Description   string
	PaymentMethod string
	Notes         string // optional
	CreatedAt     time.Time
}

// ExpenseChanges selects expense fields to modify. Nil fields are left
// untouched.
type ExpenseChanges struct {
	Date          *time.Time
	Amount        *decimal.Decimal
	Category      *string
	Description   *string
	PaymentMethod *string
	Notes         *string
}

// ValidExpenseCategory reports whether the category is recognized.
func ValidExpenseCategory(category string) bool {
	return validExpenseCategories[category]
}

// ValidPaymentMethod reports whether the payment method is recognized.
func ValidPaymentMethod(method string) bool {
	return validPaymentMethods[method]
}

// Problems validates the expense and returns one human-readable message per
// violated rule. An empty slice means the expense is acceptable.
func (e *Expense) Problems() []string {
	var problems []string
	if !e.Amount.IsPositive() {
		problems = append(problems, "Amount must be greater than 0")
	}
	if strings.TrimSpace(e.Description) == "" {
		problems = append(problems, "Description is required")
	}
	if e.Date.IsZero() {
		problems = append(problems, "Date is required")
	}
	if !validExpenseCategories[e.Category] {
		problems = append(problems, "Category is not recognized")
	}
	if !validPaymentMethods[e.PaymentMethod] {
		problems = append(problems, "Payment method is not recognized")
	}
	return problems
}
