package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

func validateID(id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return nil
}

// passThrough reports domain errors that reach the caller unwrapped.
func passThrough(err error) bool {
	return errors.Is(err, employee.ErrEmployeeNotFound) ||
		errors.Is(err, employee.ErrEmailExists) ||
		errors.Is(err, employee.ErrBranchNotFound)
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, actor auth.AuthContext, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         auth.Role(req.Role),
		HourlyRate:   req.HourlyRate,
		DailyRate:    req.DailyRate,
		IsActive:     true,
		BranchID:     req.BranchID,
	})
	if err != nil {
		if passThrough(err) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.InfoContext(ctx, "employee created", "employee_id", created.ID, "actor", actor.UserID)
	return s.reload(ctx, created.ID)
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, actor auth.AuthContext, id string) (employee.EmployeeResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := validateID(id); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.reload(ctx, id)
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, actor auth.AuthContext, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, actor auth.AuthContext, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if passThrough(err) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.IsActive != nil && !*req.IsActive && current.ID == actor.EmployeeID {
		return employee.EmployeeResponse{}, employee.ErrCannotDeactivateSelf
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.Role != nil {
		current.Role = auth.Role(*req.Role)
	}
	switch {
	case req.ClearHourlyRate:
		current.HourlyRate = nil
	case req.HourlyRate != nil:
		current.HourlyRate = req.HourlyRate
	}
	switch {
	case req.ClearDailyRate:
		current.DailyRate = nil
	case req.DailyRate != nil:
		current.DailyRate = req.DailyRate
	}
	if req.BranchID != nil {
		if *req.BranchID == "" {
			current.BranchID = nil
		} else {
			current.BranchID = req.BranchID
		}
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if _, err := s.employeeRepo.Update(ctx, current); err != nil {
		if passThrough(err) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	slog.InfoContext(ctx, "employee updated", "employee_id", current.ID, "actor", actor.UserID)
	return s.reload(ctx, current.ID)
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, actor auth.AuthContext, id string) (employee.EmployeeResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := validateID(id); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if id == actor.EmployeeID {
		return employee.EmployeeResponse{}, employee.ErrCannotDeactivateSelf
	}

	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if passThrough(err) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !current.IsActive {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	current.IsActive = false
	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		if passThrough(err) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to deactivate employee: %w", err)
	}

	slog.InfoContext(ctx, "employee deactivated", "employee_id", id, "actor", actor.UserID)
	return updated.ToResponse(), nil
}

func (s *EmployeeServiceImpl) reload(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if passThrough(err) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e.ToResponse(), nil
}
