package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		rate        float64
		years       int
		wantMonthly float64
		wantErr     bool
	}{
		{
			name:        "standard loan",
			principal:   100000,
			rate:        7.5,
			years:       15,
			wantMonthly: 927.01,
		},
		{
			name:        "zero rate divides principal evenly",
			principal:   12000,
			rate:        0,
			years:       1,
			wantMonthly: 1000,
		},
		{
			name:        "one year high rate",
			principal:   10000,
			rate:        12,
			years:       1,
			wantMonthly: 888.49,
		},
		{
			name:      "zero principal rejected",
			principal: 0,
			rate:      5,
			years:     10,
			wantErr:   true,
		},
		{
			name:      "negative principal rejected",
			principal: -5000,
			rate:      5,
			years:     10,
			wantErr:   true,
		},
		{
			name:      "negative rate rejected",
			principal: 100000,
			rate:      -1,
			years:     10,
			wantErr:   true,
		},
		{
			name:      "zero term rejected",
			principal: 100000,
			rate:      5,
			years:     0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EMI(tt.principal, tt.rate, tt.years)

			if tt.wantErr {
				var derr *DomainError
				assert.ErrorAs(t, err, &derr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantMonthly, got.MonthlyPayment, 0.01)
			assert.InDelta(t, tt.principal, got.TotalPayment-got.TotalInterest, 0.011,
				"principal must equal payments minus interest")
		})
	}
}

func TestAmortizationScheduleRunsToZero(t *testing.T) {
	schedule, err := AmortizationSchedule(100000, 7.5, 15)
	require.NoError(t, err)
	require.Len(t, schedule, 180)

	last := schedule[len(schedule)-1]
	assert.Equal(t, 180, last.Month)
	assert.InDelta(t, 0, last.Balance, 1.0,
		"balance should land within rounding drift of zero")

	// Balances never go negative and only ever decrease.
	prev := math.Inf(1)
	for _, row := range schedule {
		assert.GreaterOrEqual(t, row.Balance, 0.0, "month %d", row.Month)
		assert.LessOrEqual(t, row.Balance, prev, "month %d", row.Month)
		prev = row.Balance
	}

	// Early payments are interest-heavy, late ones principal-heavy.
	first := schedule[0]
	assert.Greater(t, first.Interest, first.Principal)
	assert.Greater(t, last.Principal, last.Interest)
}

func TestAmortizationScheduleZeroRate(t *testing.T) {
	schedule, err := AmortizationSchedule(12000, 0, 1)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	for _, row := range schedule {
		assert.Equal(t, 0.0, row.Interest)
		assert.Equal(t, 1000.0, row.Principal)
	}
	assert.Equal(t, 0.0, schedule[11].Balance)
}

func TestMortgagePayment(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		down    float64
		rate    float64
		years   int
		wantErr bool
	}{
		{
			name:  "typical purchase",
			price: 400000,
			down:  80000,
			rate:  6.5,
			years: 30,
		},
		{
			name:  "no down payment",
			price: 250000,
			down:  0,
			rate:  7,
			years: 30,
		},
		{
			name:    "down payment equals price",
			price:   300000,
			down:    300000,
			rate:    6,
			years:   30,
			wantErr: true,
		},
		{
			name:    "down payment above price",
			price:   300000,
			down:    350000,
			rate:    6,
			years:   30,
			wantErr: true,
		},
		{
			name:    "negative down payment",
			price:   300000,
			down:    -1,
			rate:    6,
			years:   30,
			wantErr: true,
		},
		{
			name:    "zero price",
			price:   0,
			down:    0,
			rate:    6,
			years:   30,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MortgagePayment(tt.price, tt.down, tt.rate, tt.years)

			if tt.wantErr {
				var derr *DomainError
				assert.ErrorAs(t, err, &derr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.price-tt.down, got.LoanAmount, 0.001)

			want, err := EMI(tt.price-tt.down, tt.rate, tt.years)
			require.NoError(t, err)
			assert.Equal(t, want, got.LoanResult, "mortgage must compose the loan calculation")
		})
	}
}

func TestMortgageDownPaymentPercent(t *testing.T) {
	got, err := MortgagePayment(400000, 80000, 6.5, 30)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.DownPaymentPercent)

	got, err = MortgagePayment(300000, 40000, 6.5, 30)
	require.NoError(t, err)
	assert.Equal(t, 13.3, got.DownPaymentPercent, "percentage is kept to one decimal")
}
