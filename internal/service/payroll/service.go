package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PayableEmployeeLister is the slice of the employee store a calculation reads.
type PayableEmployeeLister interface {
	ListPayable(ctx context.Context) ([]employee.Employee, error)
}

// CompletedEntryLister is the slice of the time entry store a calculation reads.
type CompletedEntryLister interface {
	ListCompletedInRange(ctx context.Context, r timeentry.Range, employeeIDs []string) ([]timeentry.TimeEntry, error)
}

type PayrollServiceImpl struct {
	cycleRepo     payroll.CycleRepository
	detailRepo    payroll.DetailRepository
	employeeRepo  PayableEmployeeLister
	timeEntryRepo CompletedEntryLister
	locker        payroll.CycleLocker
	loc           *time.Location
	now           func() time.Time
}

func NewPayrollService(
	cycleRepo payroll.CycleRepository,
	detailRepo payroll.DetailRepository,
	employeeRepo PayableEmployeeLister,
	timeEntryRepo CompletedEntryLister,
	locker payroll.CycleLocker,
	loc *time.Location,
) *PayrollServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		cycleRepo:     cycleRepo,
		detailRepo:    detailRepo,
		employeeRepo:  employeeRepo,
		timeEntryRepo: timeEntryRepo,
		locker:        locker,
		loc:           loc,
		now:           time.Now,
	}
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

func validateCycleID(id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return nil
}

// classify passes domain errors through untouched and turns anything else into
// a logged persistence failure.
func (s *PayrollServiceImpl) classify(ctx context.Context, op, cycleID string, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, auth.ErrAdminRequired),
		errors.Is(err, payroll.ErrCycleNotFound),
		errors.Is(err, payroll.ErrInvalidState),
		errors.Is(err, payroll.ErrAlreadyCalculated),
		errors.Is(err, payroll.ErrConcurrentModification):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	slog.ErrorContext(ctx, "payroll operation failed", "op", op, "cycle_id", cycleID, "error", err)
	if errors.Is(err, payroll.ErrPersistenceFailure) {
		return err
	}
	return payroll.Persistence(op, err)
}

// ========== CYCLES ==========

func (s *PayrollServiceImpl) CreateCycle(ctx context.Context, actor auth.AuthContext, req payroll.CreateCycleRequest) (payroll.CycleResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return payroll.CycleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.CycleResponse{}, err
	}

	start, end := req.Dates()
	created, err := s.cycleRepo.Create(ctx, payroll.PayrollCycle{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Status:    payroll.StatusDraft,
	})
	if err != nil {
		return payroll.CycleResponse{}, s.classify(ctx, "create cycle", "", err)
	}

	slog.InfoContext(ctx, "payroll cycle created", "cycle_id", created.ID, "by", actor.UserID)
	return created.ToResponse(), nil
}

func (s *PayrollServiceImpl) GetCycle(ctx context.Context, actor auth.AuthContext, id string) (payroll.CycleResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return payroll.CycleResponse{}, err
	}
	if err := validateCycleID(id); err != nil {
		return payroll.CycleResponse{}, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.CycleResponse{}, s.classify(ctx, "get cycle", id, err)
	}
	return cycle.ToResponse(), nil
}

func (s *PayrollServiceImpl) ListCycles(ctx context.Context, actor auth.AuthContext, filter payroll.CycleFilter) (payroll.ListCycleResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return payroll.ListCycleResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListCycleResponse{}, err
	}

	cycles, total, err := s.cycleRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListCycleResponse{}, s.classify(ctx, "list cycles", "", err)
	}

	responses := make([]payroll.CycleResponse, 0, len(cycles))
	for _, c := range cycles {
		responses = append(responses, c.ToResponse())
	}

	return payroll.ListCycleResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Cycles:     responses,
	}, nil
}

func (s *PayrollServiceImpl) ActivateCycle(ctx context.Context, actor auth.AuthContext, id string) (payroll.CycleResponse, error) {
	return s.transition(ctx, actor, id, "activate", payroll.StatusActive)
}

func (s *PayrollServiceImpl) CloseCycle(ctx context.Context, actor auth.AuthContext, id string) (payroll.CycleResponse, error) {
	return s.transition(ctx, actor, id, "close", payroll.StatusClosed)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, actor auth.AuthContext, id, op string, next payroll.CycleStatus) (payroll.CycleResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return payroll.CycleResponse{}, err
	}
	if err := validateCycleID(id); err != nil {
		return payroll.CycleResponse{}, err
	}

	var updated payroll.PayrollCycle
	err := s.locker.WithCycleLock(ctx, id, func(ctx context.Context) error {
		cycle, err := s.cycleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := cycle.Transition(op, next); err != nil {
			return err
		}
		updated, err = s.cycleRepo.UpdateStatus(ctx, id, next)
		return err
	})
	if err != nil {
		return payroll.CycleResponse{}, s.classify(ctx, op+" cycle", id, err)
	}

	slog.InfoContext(ctx, "payroll cycle status changed", "cycle_id", id, "status", next, "by", actor.UserID)
	return updated.ToResponse(), nil
}

// DeleteCycle removes a draft or closed cycle together with its details.
func (s *PayrollServiceImpl) DeleteCycle(ctx context.Context, actor auth.AuthContext, id string) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if err := validateCycleID(id); err != nil {
		return err
	}

	err := s.locker.WithCycleLock(ctx, id, func(ctx context.Context) error {
		cycle, err := s.cycleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !cycle.Deletable() {
			return &payroll.StateError{Op: "delete", Current: cycle.Status}
		}
		return s.cycleRepo.Delete(ctx, id)
	})
	if err != nil {
		return s.classify(ctx, "delete cycle", id, err)
	}

	slog.InfoContext(ctx, "payroll cycle deleted", "cycle_id", id, "by", actor.UserID)
	return nil
}

func (s *PayrollServiceImpl) ListDetails(ctx context.Context, actor auth.AuthContext, cycleID string) ([]payroll.DetailResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := validateCycleID(cycleID); err != nil {
		return nil, err
	}

	if _, err := s.cycleRepo.GetByID(ctx, cycleID); err != nil {
		return nil, s.classify(ctx, "list details", cycleID, err)
	}
	details, err := s.detailRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, s.classify(ctx, "list details", cycleID, err)
	}

	responses := make([]payroll.DetailResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, d.ToResponse())
	}
	return responses, nil
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) Calculate(ctx context.Context, actor auth.AuthContext, cycleID string) (payroll.CalculationSummary, error) {
	if err := actor.RequireAdmin(); err != nil {
		return payroll.CalculationSummary{}, err
	}
	if err := validateCycleID(cycleID); err != nil {
		return payroll.CalculationSummary{}, err
	}

	var summary payroll.CalculationSummary
	err := s.locker.WithCycleLock(ctx, cycleID, func(ctx context.Context) error {
		cycle, err := s.cycleRepo.GetForUpdate(ctx, cycleID)
		if err != nil {
			return err
		}
		if err := cycle.RequireStatus("calculate", payroll.StatusActive); err != nil {
			return err
		}

		existing, err := s.detailRepo.CountByCycle(ctx, cycleID)
		if err != nil {
			return fmt.Errorf("failed to count details: %w", err)
		}
		if existing > 0 {
			return payroll.ErrAlreadyCalculated
		}

		details, skipped, err := s.computeDetails(ctx, cycle)
		if err != nil {
			return err
		}

		if len(details) > 0 {
			details, err = s.detailRepo.CreateBatch(ctx, details)
			if err != nil {
				return err
			}
		}

		calculatedAt := s.now().UTC()
		if err := s.cycleRepo.SetCalculatedAt(ctx, cycleID, &calculatedAt); err != nil {
			return fmt.Errorf("failed to stamp calculated_at: %w", err)
		}

		summary = buildSummary(cycleID, details, skipped, calculatedAt)
		return nil
	})
	if err != nil {
		return payroll.CalculationSummary{}, s.classify(ctx, "calculate", cycleID, err)
	}

	slog.InfoContext(ctx, "payroll cycle calculated",
		"cycle_id", cycleID,
		"employee_count", summary.EmployeeCount,
		"skipped", len(summary.Skipped),
		"total_base_pay", summary.TotalBasePay.StringFixed(2),
		"by", actor.UserID,
	)
	return summary, nil
}

// computeDetails builds one unsaved detail per eligible payable employee, in
// the order the employee store returns them.
func (s *PayrollServiceImpl) computeDetails(ctx context.Context, cycle payroll.PayrollCycle) ([]payroll.PayrollDetail, []payroll.SkippedEmployee, error) {
	employees, err := s.employeeRepo.ListPayable(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payable employees: %w", err)
	}

	skipped := make([]payroll.SkippedEmployee, 0)
	eligible := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		if !emp.Payable() {
			continue
		}
		if !ResolveRate(emp).Eligible {
			skipped = append(skipped, payroll.SkippedEmployee{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Reason:       payroll.SkipReasonMissingRate,
			})
			continue
		}
		eligible = append(eligible, emp)
	}
	if len(eligible) == 0 {
		return nil, skipped, nil
	}

	ids := make([]string, 0, len(eligible))
	for _, emp := range eligible {
		ids = append(ids, emp.ID)
	}

	start, end := cycle.Window(s.loc)
	entries, err := s.timeEntryRepo.ListCompletedInRange(ctx, timeentry.Range{From: start, To: end}, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	aggregates := AggregateByEmployee(entries, Window{Start: start, End: end})

	details := make([]payroll.PayrollDetail, 0, len(eligible))
	for _, emp := range eligible {
		agg, ok := aggregates[emp.ID]
		if !ok {
			agg = HoursAggregate{TotalHours: decimal.Zero}
		}
		pay, _ := ComputePay(agg, ResolveRate(emp))

		name := emp.FullName
		details = append(details, payroll.PayrollDetail{
			PayrollCycleID: cycle.ID,
			EmployeeID:     emp.ID,
			TotalHours:     agg.TotalHours.Round(2),
			SessionCount:   agg.SessionCount,
			RateType:       pay.RateType,
			Rate:           pay.Rate,
			BasePay:        pay.BasePay,
			NetPay:         pay.NetPay,
			EmployeeName:   &name,
		})
	}
	return details, skipped, nil
}

func buildSummary(cycleID string, details []payroll.PayrollDetail, skipped []payroll.SkippedEmployee, at time.Time) payroll.CalculationSummary {
	summary := payroll.CalculationSummary{
		CycleID:       cycleID,
		EmployeeCount: len(details),
		TotalHours:    decimal.Zero,
		TotalBasePay:  decimal.Zero,
		TotalNetPay:   decimal.Zero,
		Details:       make([]payroll.DetailResponse, 0, len(details)),
		Skipped:       skipped,
		CalculatedAt:  at.Format(time.RFC3339),
	}
	if summary.Skipped == nil {
		summary.Skipped = []payroll.SkippedEmployee{}
	}
	for _, d := range details {
		summary.TotalHours = summary.TotalHours.Add(d.TotalHours)
		summary.TotalBasePay = summary.TotalBasePay.Add(d.BasePay)
		summary.TotalNetPay = summary.TotalNetPay.Add(d.NetPay)
		summary.Details = append(summary.Details, d.ToResponse())
	}
	return summary
}

// Reset deletes every detail row of an active cycle so it can be recalculated.
func (s *PayrollServiceImpl) Reset(ctx context.Context, actor auth.AuthContext, cycleID string) (payroll.ResetResult, error) {
	if err := actor.RequireAdmin(); err != nil {
		return payroll.ResetResult{}, err
	}
	if err := validateCycleID(cycleID); err != nil {
		return payroll.ResetResult{}, err
	}

	var deleted int64
	err := s.locker.WithCycleLock(ctx, cycleID, func(ctx context.Context) error {
		cycle, err := s.cycleRepo.GetForUpdate(ctx, cycleID)
		if err != nil {
			return err
		}
		if err := cycle.RequireStatus("reset", payroll.StatusActive); err != nil {
			return err
		}

		deleted, err = s.detailRepo.DeleteByCycle(ctx, cycleID)
		if err != nil {
			return fmt.Errorf("failed to delete details: %w", err)
		}
		return s.cycleRepo.SetCalculatedAt(ctx, cycleID, nil)
	})
	if err != nil {
		return payroll.ResetResult{}, s.classify(ctx, "reset", cycleID, err)
	}

	slog.InfoContext(ctx, "payroll cycle reset", "cycle_id", cycleID, "deleted", deleted, "by", actor.UserID)
	return payroll.ResetResult{CycleID: cycleID, DeletedCount: deleted}, nil
}
