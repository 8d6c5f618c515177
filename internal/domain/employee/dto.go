package employee

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName   string           `json:"full_name"`
	Email      string           `json:"email"`
	Password   string           `json:"password"`
	Role       string           `json:"role"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
	BranchID   *string          `json:"branch_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	} else if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not exceed 255 characters"})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if r.Role == "" {
		r.Role = string(auth.RoleEmployee)
	}
	if !auth.Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: employee, admin"})
	}

	errs = append(errs, validateRates(r.HourlyRate, r.DailyRate)...)

	if r.BranchID != nil && !validator.IsValidUUID(*r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "branch_id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest is a partial update. Nil fields are left unchanged;
// ClearHourlyRate and ClearDailyRate set the rate back to null.
type UpdateEmployeeRequest struct {
	ID              string           `json:"-"`
	FullName        *string          `json:"full_name,omitempty"`
	Role            *string          `json:"role,omitempty"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate,omitempty"`
	DailyRate       *decimal.Decimal `json:"daily_rate,omitempty"`
	ClearHourlyRate bool             `json:"clear_hourly_rate,omitempty"`
	ClearDailyRate  bool             `json:"clear_daily_rate,omitempty"`
	BranchID        *string          `json:"branch_id,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.FullName != nil {
		name := strings.TrimSpace(*r.FullName)
		r.FullName = &name
		if name == "" {
			errs.Add("full_name", "full_name cannot be empty")
		}
	}
	if r.Role != nil && !auth.Role(*r.Role).Valid() {
		errs.Add("role", "role must be one of: employee, admin")
	}
	if r.ClearHourlyRate && r.HourlyRate != nil {
		errs.Add("hourly_rate", "cannot set and clear hourly_rate together")
	}
	if r.ClearDailyRate && r.DailyRate != nil {
		errs.Add("daily_rate", "cannot set and clear daily_rate together")
	}
	errs = append(errs, validateRates(r.HourlyRate, r.DailyRate)...)
	if r.BranchID != nil && *r.BranchID != "" && !validator.IsValidUUID(*r.BranchID) {
		errs.Add("branch_id", "branch_id must be a valid UUID")
	}

	return errs.Err()
}

func validateRates(hourly, daily *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if hourly != nil && hourly.IsNegative() {
		errs.Add("hourly_rate", "hourly_rate must be non-negative")
	}
	if daily != nil && daily.IsNegative() {
		errs.Add("daily_rate", "daily_rate must be non-negative")
	}
	return errs
}

type EmployeeFilter struct {
	Search   *string `json:"search,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	BranchID *string `json:"branch_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	errs := validator.NormalizePagination(&f.Page, &f.Limit)

	if f.Role != nil && !auth.Role(*f.Role).Valid() {
		errs.Add("role", "role must be one of: employee, admin")
	}
	if f.BranchID != nil && !validator.IsValidUUID(*f.BranchID) {
		errs.Add("branch_id", "branch_id must be a valid UUID")
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID         string           `json:"id"`
	FullName   string           `json:"full_name"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	DailyRate  *decimal.Decimal `json:"daily_rate"`
	IsActive   bool             `json:"is_active"`
	BranchID   *string          `json:"branch_id,omitempty"`
	BranchName *string          `json:"branch_name,omitempty"`
	CreatedAt  string           `json:"created_at"`
	UpdatedAt  string           `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}
