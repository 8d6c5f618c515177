package payroll

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type Pay struct {
	RateType payroll.RateType
	Rate     decimal.Decimal
	BasePay  decimal.Decimal
	NetPay   decimal.Decimal
}

// ComputePay applies the employee's rate to the aggregate. The hourly rate wins
// whenever it is set; otherwise each session is paid at the daily rate.
// Only the amounts are rounded, half-up to two places. ok is false for
// ineligible rates.
func ComputePay(agg HoursAggregate, rates Rates) (pay Pay, ok bool) {
	switch {
	case rates.HourlyRate != nil:
		pay.RateType = payroll.RateTypeHourly
		pay.Rate = *rates.HourlyRate
		pay.BasePay = agg.TotalHours.Mul(pay.Rate).Round(2)
	case rates.DailyRate != nil:
		pay.RateType = payroll.RateTypeDaily
		pay.Rate = *rates.DailyRate
		pay.BasePay = decimal.NewFromInt(int64(agg.SessionCount)).Mul(pay.Rate).Round(2)
	default:
		return Pay{}, false
	}

	// no deductions
	pay.NetPay = pay.BasePay
	return pay, true
}
