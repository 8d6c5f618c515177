package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestResolveRate(t *testing.T) {
	tests := []struct {
		name     string
		emp      employee.Employee
		eligible bool
	}{
		{"hourly only", employee.Employee{HourlyRate: dec("50")}, true},
		{"daily only", employee.Employee{DailyRate: dec("400")}, true},
		{"both", employee.Employee{HourlyRate: dec("50"), DailyRate: dec("400")}, true},
		{"zero hourly still counts as set", employee.Employee{HourlyRate: dec("0")}, true},
		{"none", employee.Employee{Role: auth.RoleEmployee}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := ResolveRate(tt.emp)
			assert.Equal(t, tt.eligible, rates.Eligible)
			assert.Equal(t, tt.emp.HourlyRate, rates.HourlyRate)
			assert.Equal(t, tt.emp.DailyRate, rates.DailyRate)
		})
	}
}

func TestComputePay_HourlyOnly(t *testing.T) {
	agg := HoursAggregate{TotalHours: decimal.RequireFromString("9.5"), SessionCount: 2}
	pay, ok := ComputePay(agg, Rates{HourlyRate: dec("50"), Eligible: true})
	require.True(t, ok)

	assert.Equal(t, payroll.RateTypeHourly, pay.RateType)
	assert.Equal(t, "475.00", pay.BasePay.StringFixed(2))
	assert.True(t, pay.NetPay.Equal(pay.BasePay))
}

func TestComputePay_DailyOnly(t *testing.T) {
	agg := HoursAggregate{TotalHours: decimal.RequireFromString("21.75"), SessionCount: 3}
	pay, ok := ComputePay(agg, Rates{DailyRate: dec("333.335"), Eligible: true})
	require.True(t, ok)

	assert.Equal(t, payroll.RateTypeDaily, pay.RateType)
	// 3 x 333.335 = 1000.005 -> 1000.01
	assert.Equal(t, "1000.01", pay.BasePay.StringFixed(2))
}

func TestComputePay_HourlyWinsWhenBothSet(t *testing.T) {
	agg := HoursAggregate{TotalHours: decimal.RequireFromString("8"), SessionCount: 1}
	pay, ok := ComputePay(agg, Rates{HourlyRate: dec("20"), DailyRate: dec("500"), Eligible: true})
	require.True(t, ok)

	assert.Equal(t, payroll.RateTypeHourly, pay.RateType)
	assert.Equal(t, "20", pay.Rate.String())
	assert.Equal(t, "160.00", pay.BasePay.StringFixed(2))
}

func TestComputePay_RoundsHalfUp(t *testing.T) {
	// 1.5 h x 10.333 = 15.4995 -> 15.50
	agg := HoursAggregate{TotalHours: decimal.RequireFromString("1.5"), SessionCount: 1}
	pay, ok := ComputePay(agg, Rates{HourlyRate: dec("10.333"), Eligible: true})
	require.True(t, ok)
	assert.Equal(t, "15.50", pay.BasePay.StringFixed(2))

	// 0.33 h x 12.5 = 4.125 -> 4.13
	agg = HoursAggregate{TotalHours: decimal.RequireFromString("0.33"), SessionCount: 1}
	pay, _ = ComputePay(agg, Rates{HourlyRate: dec("12.5"), Eligible: true})
	assert.Equal(t, "4.13", pay.BasePay.StringFixed(2))
}

func TestComputePay_NoRate(t *testing.T) {
	_, ok := ComputePay(HoursAggregate{TotalHours: decimal.NewFromInt(8), SessionCount: 1}, Rates{})
	assert.False(t, ok)
}

func TestComputePay_ZeroSessions(t *testing.T) {
	pay, ok := ComputePay(HoursAggregate{TotalHours: decimal.Zero}, Rates{DailyRate: dec("400"), Eligible: true})
	require.True(t, ok)
	assert.True(t, pay.BasePay.IsZero())
}

func TestComputePay_FromAggregatedEntries(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}

	// three 20 minute sessions sum to exactly one hour before rounding
	entries := []timeentry.TimeEntry{
		entry("e1", start.Add(8*time.Hour), 20*time.Minute, 0),
		entry("e1", start.Add(10*time.Hour), 20*time.Minute, 0),
		entry("e1", start.Add(12*time.Hour), 20*time.Minute, 0),
	}
	agg := AggregateEntries(entries, w)
	assert.Equal(t, "1.00", agg.TotalHours.StringFixed(2))

	pay, ok := ComputePay(agg, Rates{HourlyRate: dec("30"), Eligible: true})
	require.True(t, ok)
	assert.Equal(t, "30.00", pay.BasePay.StringFixed(2))
}

func TestComputePay_HoursAreNotRoundedBeforeRate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}

	agg := AggregateEntries([]timeentry.TimeEntry{
		entry("e1", start.Add(8*time.Hour), time.Hour+20*time.Second, 0),
	}, w)
	assert.Equal(t, "1.01", agg.TotalHours.StringFixed(2))

	pay, ok := ComputePay(agg, Rates{HourlyRate: dec("1000"), Eligible: true})
	require.True(t, ok)
	// 1.005555...h x 1000
	assert.Equal(t, "1005.56", pay.BasePay.StringFixed(2))
	assert.Equal(t, "1005.56", pay.NetPay.StringFixed(2))
}

func TestComputePay_ShortSessionsKeepFullPrecision(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}

	entries := make([]timeentry.TimeEntry, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, entry("e1", start.Add(time.Duration(i)*time.Minute), 17*time.Second, 0))
	}
	agg := AggregateEntries(entries, w)
	assert.Equal(t, 30, agg.SessionCount)

	// 510s = 0.141666...h
	pay, ok := ComputePay(agg, Rates{HourlyRate: dec("100"), Eligible: true})
	require.True(t, ok)
	assert.Equal(t, "14.17", pay.BasePay.StringFixed(2))
}
