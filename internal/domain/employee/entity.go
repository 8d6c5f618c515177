package employee

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         auth.Role
	HourlyRate   *decimal.Decimal
	DailyRate    *decimal.Decimal
	IsActive     bool
	BranchID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	BranchName *string
}

// Payable reports whether the employee takes part in payroll runs.
func (e Employee) Payable() bool {
	return e.Role == auth.RoleEmployee && e.IsActive
}

func (e Employee) ToResponse() EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       string(e.Role),
		HourlyRate: e.HourlyRate,
		DailyRate:  e.DailyRate,
		IsActive:   e.IsActive,
		BranchID:   e.BranchID,
		BranchName: e.BranchName,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
	return resp
}
