// Spending breakdowns behind the analytics endpoints.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/pkg/types"
)

// CategoryTotal aggregates one expense category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Average  decimal.Decimal `json:"average"`
}

// PaymentMethodTotal aggregates one payment method.
type PaymentMethodTotal struct {
	Method  string          `json:"method"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// DailyTotal is one point of a spending series.
type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTotals groups expenses by category with count, sum, and mean,
// ordered by total spent descending. Equal totals order by category name.
func CategoryTotals(expenses []types.Expense) []CategoryTotal {
	byCategory := make(map[string]*CategoryTotal)
	for i := range expenses {
		e := &expenses[i]
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		ct.Average = ct.Total.Div(decimal.NewFromInt(int64(ct.Count))).Round(2)
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// PaymentMethodTotals groups expenses by payment method with count, sum,
// and mean, ordered by total spent descending. Equal totals order by
// method name.
func PaymentMethodTotals(expenses []types.Expense) []PaymentMethodTotal {
	byMethod := make(map[string]*PaymentMethodTotal)
	for i := range expenses {
		e := &expenses[i]
		pt, ok := byMethod[e.PaymentMethod]
		if !ok {
			pt = &PaymentMethodTotal{Method: e.PaymentMethod}
			byMethod[e.PaymentMethod] = pt
		}
		pt.Count++
		pt.Total = pt.Total.Add(e.Amount)
	}

	out := make([]PaymentMethodTotal, 0, len(byMethod))
	for _, pt := range byMethod {
		pt.Average = pt.Total.Div(decimal.NewFromInt(int64(pt.Count))).Round(2)
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// DailySeries sums spending per day over the trailing window, oldest day
// first. Days without spending do not appear. A non-positive window means
// no cutoff.
func DailySeries(expenses []types.Expense, days int, today time.Time) []DailyTotal {
	cutoff := ""
	if days > 0 {
		cutoff = dayString(today.AddDate(0, 0, -days))
	}

	byDay := make(map[string]decimal.Decimal)
	for i := range expenses {
		day := dayString(expenses[i].Date)
		if cutoff != "" && day < cutoff {
			continue
		}
		byDay[day] = byDay[day].Add(expenses[i].Amount)
	}

	out := make([]DailyTotal, 0, len(byDay))
	for day, total := range byDay {
		out = append(out, DailyTotal{Date: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
