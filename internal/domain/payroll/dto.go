package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CYCLE DTOs ==========

type CreateCycleRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD

	start time.Time
	end   time.Time
}

func (r *CreateCycleRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	r.start, r.end = start, end
	return nil
}

// Dates returns the parsed dates; valid only after Validate succeeds.
func (r CreateCycleRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

type CycleFilter struct {
	Status *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *CycleFilter) Validate() error {
	errs := validator.NormalizePagination(&f.Page, &f.Limit)
	if f.Status != nil && !CycleStatus(*f.Status).Valid() {
		errs.Add("status", "status must be one of: draft, active, closed")
	}
	return errs.Err()
}

type CycleResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       string  `json:"status"`
	CalculatedAt *string `json:"calculated_at,omitempty"`
	DetailCount  int     `json:"detail_count"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (c PayrollCycle) ToResponse() CycleResponse {
	resp := CycleResponse{
		ID:          c.ID,
		Name:        c.Name,
		StartDate:   c.StartDate.Format("2006-01-02"),
		EndDate:     c.EndDate.Format("2006-01-02"),
		Status:      string(c.Status),
		DetailCount: c.DetailCount,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	if c.CalculatedAt != nil {
		at := c.CalculatedAt.Format(time.RFC3339)
		resp.CalculatedAt = &at
	}
	return resp
}

type ListCycleResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Cycles     []CycleResponse `json:"cycles"`
}

// ========== DETAIL DTOs ==========

type DetailResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	SessionCount int             `json:"session_count"`
	RateType     string          `json:"rate_type"`
	Rate         decimal.Decimal `json:"rate"`
	BasePay      decimal.Decimal `json:"base_pay"`
	NetPay       decimal.Decimal `json:"net_pay"`
}

func (d PayrollDetail) ToResponse() DetailResponse {
	return DetailResponse{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		TotalHours:   d.TotalHours,
		SessionCount: d.SessionCount,
		RateType:     string(d.RateType),
		Rate:         d.Rate,
		BasePay:      d.BasePay,
		NetPay:       d.NetPay,
	}
}

// CalculationSummary is returned by a successful calculation run.
type CalculationSummary struct {
	CycleID       string            `json:"cycle_id"`
	EmployeeCount int               `json:"employee_count"`
	TotalHours    decimal.Decimal   `json:"total_hours"`
	TotalBasePay  decimal.Decimal   `json:"total_base_pay"`
	TotalNetPay   decimal.Decimal   `json:"total_net_pay"`
	Details       []DetailResponse  `json:"details"`
	Skipped       []SkippedEmployee `json:"skipped"`
	CalculatedAt  string            `json:"calculated_at"`
}

type ResetResult struct {
	CycleID      string `json:"cycle_id"`
	DeletedCount int64  `json:"deleted_count"`
}
