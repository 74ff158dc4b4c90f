package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundGrowthZeroReturnIsPureSummation(t *testing.T) {
	got, err := CompoundGrowth(0, 100, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, got.FinalAmount)
	assert.Equal(t, 1200.0, got.TotalInvested)
	assert.Equal(t, 0.0, got.TotalReturns)
}

func TestCompoundGrowth(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		monthly   float64
		rate      float64
		years     int
		wantErr   bool
	}{
		{
			name:      "principal only",
			principal: 10000,
			monthly:   0,
			rate:      6,
			years:     10,
		},
		{
			name:      "contributions only",
			principal: 0,
			monthly:   500,
			rate:      7,
			years:     20,
		},
		{
			name:      "zero everything except years",
			principal: 0,
			monthly:   0,
			rate:      0,
			years:     1,
		},
		{
			name:      "negative principal rejected",
			principal: -1,
			monthly:   100,
			rate:      5,
			years:     10,
			wantErr:   true,
		},
		{
			name:      "negative contribution rejected",
			principal: 1000,
			monthly:   -100,
			rate:      5,
			years:     10,
			wantErr:   true,
		},
		{
			name:      "negative rate rejected",
			principal: 1000,
			monthly:   100,
			rate:      -5,
			years:     10,
			wantErr:   true,
		},
		{
			name:      "zero years rejected",
			principal: 1000,
			monthly:   100,
			rate:      5,
			years:     0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompoundGrowth(tt.principal, tt.monthly, tt.rate, tt.years)

			if tt.wantErr {
				var derr *DomainError
				assert.ErrorAs(t, err, &derr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.principal+tt.monthly*float64(tt.years*12), got.TotalInvested, 0.01)
			assert.InDelta(t, got.FinalAmount-got.TotalInvested, got.TotalReturns, 0.011)
			assert.GreaterOrEqual(t, got.FinalAmount, got.TotalInvested,
				"non-negative return can never shrink the balance")
		})
	}
}

func TestCompoundGrowthAppliesGrowthBeforeContribution(t *testing.T) {
	// One year at 12% annual = 1% monthly, starting from 1000 with 100/month.
	// Month 1 must be 1000*1.01 + 100, not (1000+100)*1.01: contributions
	// start earning only in the following month.
	got, err := CompoundGrowth(1000, 100, 12, 1)
	require.NoError(t, err)

	amount := 1000.0
	for i := 0; i < 12; i++ {
		amount = amount*1.01 + 100
	}
	assert.InDelta(t, amount, got.FinalAmount, 0.01)
}

func TestGrowthSeries(t *testing.T) {
	series, err := GrowthSeries(1000, 100, 12, 2)
	require.NoError(t, err)
	require.Len(t, series, 24)

	assert.Equal(t, 1, series[0].Month)
	assert.InDelta(t, 1000*1.01+100, series[0].Value, 0.01)
	assert.InDelta(t, 1100, series[0].Invested, 0.01)

	// The series must agree with the aggregate calculation at the end.
	total, err := CompoundGrowth(1000, 100, 12, 2)
	require.NoError(t, err)
	last := series[len(series)-1]
	assert.InDelta(t, total.FinalAmount, last.Value, 0.01)
	assert.InDelta(t, total.TotalInvested, last.Invested, 0.01)
	assert.InDelta(t, total.TotalReturns, last.Returns, 0.011)
}

func TestGrowthSeriesRejectsBadInputs(t *testing.T) {
	_, err := GrowthSeries(-1, 100, 5, 10)
	var derr *DomainError
	assert.ErrorAs(t, err, &derr)

	_, err = GrowthSeries(1000, 100, 5, 0)
	assert.ErrorAs(t, err, &derr)
}

func TestRetirementProjection(t *testing.T) {
	got, err := RetirementProjection(30, 65, 50000, 500, 7)
	require.NoError(t, err)

	assert.Equal(t, 35, got.YearsToRetirement)

	want, err := CompoundGrowth(50000, 500, 7, 35)
	require.NoError(t, err)
	assert.Equal(t, want, got.GrowthResult, "projection must compose compound growth")
	assert.InDelta(t, want.FinalAmount*0.04/12, got.MonthlyWithdrawal, 0.01,
		"withdrawal follows the 4 percent rule")
}

func TestRetirementProjectionRejectsBadAges(t *testing.T) {
	tests := []struct {
		name       string
		currentAge int
		retireAge  int
	}{
		{name: "retirement age equals current age", currentAge: 65, retireAge: 65},
		{name: "retirement age below current age", currentAge: 65, retireAge: 60},
		{name: "zero current age", currentAge: 0, retireAge: 65},
		{name: "negative current age", currentAge: -1, retireAge: 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RetirementProjection(tt.currentAge, tt.retireAge, 10000, 100, 5)
			var derr *DomainError
			assert.ErrorAs(t, err, &derr)
		})
	}
}

func TestSimpleInterest(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		rate         float64
		years        float64
		wantInterest float64
		wantErr      bool
	}{
		{
			name:         "whole years",
			principal:    10000,
			rate:         5,
			years:        3,
			wantInterest: 1500,
		},
		{
			name:         "fractional period",
			principal:    1000,
			rate:         6,
			years:        0.5,
			wantInterest: 30,
		},
		{
			name:      "zero principal rejected",
			principal: 0,
			rate:      5,
			years:     1,
			wantErr:   true,
		},
		{
			name:      "negative rate rejected",
			principal: 1000,
			rate:      -5,
			years:     1,
			wantErr:   true,
		},
		{
			name:      "zero period rejected",
			principal: 1000,
			rate:      5,
			years:     0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SimpleInterest(tt.principal, tt.rate, tt.years)

			if tt.wantErr {
				var derr *DomainError
				assert.ErrorAs(t, err, &derr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantInterest, got.Interest, 0.01)
			assert.InDelta(t, tt.principal+tt.wantInterest, got.Total, 0.01)
		})
	}
}
