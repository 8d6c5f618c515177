package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type CycleStatus string

const (
	StatusDraft  CycleStatus = "draft"
	StatusActive CycleStatus = "active"
	StatusClosed CycleStatus = "closed"
)

func (s CycleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo allows only draft -> active -> closed.
func (s CycleStatus) CanTransitionTo(next CycleStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusActive
	case StatusActive:
		return next == StatusClosed
	}
	return false
}

type PayrollCycle struct {
	ID           string
	Name         string
	StartDate    time.Time // date only, UTC midnight
	EndDate      time.Time // date only, UTC midnight
	Status       CycleStatus
	CalculatedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	DetailCount int
}

// Window returns the inclusive instant range covered by the cycle: start_date
// 00:00 through the last nanosecond of end_date, both in loc.
func (c PayrollCycle) Window(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(c.StartDate.Year(), c.StartDate.Month(), c.StartDate.Day(), 0, 0, 0, 0, loc)
	end := time.Date(c.EndDate.Year(), c.EndDate.Month(), c.EndDate.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// Deletable reports whether the cycle may be removed together with its details.
func (c PayrollCycle) Deletable() bool {
	return c.Status == StatusDraft || c.Status == StatusClosed
}

type RateType string

const (
	RateTypeHourly RateType = "hourly"
	RateTypeDaily  RateType = "daily"
)

// PayrollDetail is one employee's computed pay for one cycle.
type PayrollDetail struct {
	ID             string
	PayrollCycleID string
	EmployeeID     string
	TotalHours     decimal.Decimal
	SessionCount   int
	RateType       RateType
	Rate           decimal.Decimal
	BasePay        decimal.Decimal
	NetPay         decimal.Decimal
	CreatedAt      time.Time

	// DTO
	EmployeeName *string
}

type SkipReason string

const SkipReasonMissingRate SkipReason = "missing_rate"

type SkippedEmployee struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Reason       SkipReason `json:"reason"`
}
