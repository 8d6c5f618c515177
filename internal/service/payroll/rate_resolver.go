package payroll

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Rates holds the pay rates that apply to one employee.
type Rates struct {
	HourlyRate *decimal.Decimal
	DailyRate  *decimal.Decimal
	Eligible   bool
}

// ResolveRate reads the employee's rates. An employee without any rate is not eligible.
func ResolveRate(emp employee.Employee) Rates {
	return Rates{
		HourlyRate: emp.HourlyRate,
		DailyRate:  emp.DailyRate,
		Eligible:   emp.HourlyRate != nil || emp.DailyRate != nil,
	}
}
