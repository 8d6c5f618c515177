package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/file"
)

type EmployeeGetter interface {
	GetByID(ctx context.Context, id string) (employee.Employee, error)
}

type BranchGetter interface {
	GetByID(ctx context.Context, id string) (branch.Branch, error)
}

type TimeEntryServiceImpl struct {
	timeentry.TimeEntryRepository
	employees   EmployeeGetter
	branches    BranchGetter
	fileService file.FileService
	loc         *time.Location
	now         func() time.Time
}

func NewTimeEntryService(
	repo timeentry.TimeEntryRepository,
	employees EmployeeGetter,
	branches BranchGetter,
	fileService file.FileService,
	loc *time.Location,
) *TimeEntryServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeEntryServiceImpl{
		TimeEntryRepository: repo,
		employees:           employees,
		branches:            branches,
		fileService:         fileService,
		loc:                 loc,
		now:                 time.Now,
	}
}

var _ timeentry.TimeEntryService = (*TimeEntryServiceImpl)(nil)

// CheckIn implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) CheckIn(ctx context.Context, actor auth.AuthContext, req timeentry.CheckInRequest) (timeentry.TimeEntryResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if err := s.requireActive(ctx, actor.EmployeeID); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	_, err := s.TimeEntryRepository.GetOpenByEmployee(ctx, actor.EmployeeID)
	if err == nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, timeentry.ErrTimeEntryNotFound) {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to get open time entry: %w", err)
	}

	b, err := s.branches.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return timeentry.TimeEntryResponse{}, err
		}
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to get branch: %w", err)
	}

	position := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if !geo.WithinRadius(b.Location(), position, float64(b.RadiusMeters)) {
		return timeentry.TimeEntryResponse{}, timeentry.ErrOutsideAllowedRadius
	}

	now := s.now().UTC()
	selfie, err := s.fileService.UploadSelfie(ctx, actor.EmployeeID, now.In(s.loc), req.File, req.FileHeader.Filename, file.SelfieCheckIn)
	if err != nil {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to upload selfie: %w", err)
	}

	created, err := s.TimeEntryRepository.Create(ctx, timeentry.TimeEntry{
		EmployeeID:       actor.EmployeeID,
		BranchID:         b.ID,
		CheckInTime:      now,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInSelfie:    &selfie,
		Notes:            req.Notes,
	})
	if err != nil {
		s.discardSelfie(ctx, selfie)
		if errors.Is(err, timeentry.ErrAlreadyCheckedIn) {
			return timeentry.TimeEntryResponse{}, err
		}
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	slog.InfoContext(ctx, "employee checked in", "employee_id", actor.EmployeeID, "branch_id", b.ID, "time_entry_id", created.ID)
	return created.ToResponse(), nil
}

// CheckOut implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) CheckOut(ctx context.Context, actor auth.AuthContext, req timeentry.CheckOutRequest) (timeentry.TimeEntryResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry, err := s.openEntry(ctx, actor.EmployeeID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	now := s.now().UTC()
	if time.Duration(req.BreakMinutes)*time.Minute > now.Sub(entry.CheckInTime) {
		return timeentry.TimeEntryResponse{}, timeentry.ErrBreakExceedsDuration
	}

	selfie, err := s.fileService.UploadSelfie(ctx, actor.EmployeeID, now.In(s.loc), req.File, req.FileHeader.Filename, file.SelfieCheckOut)
	if err != nil {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to upload selfie: %w", err)
	}

	entry.CheckOutTime = &now
	entry.BreakMinutes = req.BreakMinutes
	entry.CheckOutLatitude = req.Latitude
	entry.CheckOutLongitude = req.Longitude
	entry.CheckOutSelfie = &selfie
	if req.Notes != nil {
		entry.Notes = req.Notes
	}
	hours := entry.WorkedHours()
	entry.TotalHours = &hours

	closed, err := s.TimeEntryRepository.CloseEntry(ctx, entry)
	if err != nil {
		s.discardSelfie(ctx, selfie)
		if errors.Is(err, timeentry.ErrNotCheckedIn) {
			return timeentry.TimeEntryResponse{}, err
		}
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to close time entry: %w", err)
	}

	slog.InfoContext(ctx, "employee checked out", "employee_id", actor.EmployeeID, "time_entry_id", closed.ID, "total_hours", hours.StringFixed(2))
	return closed.ToResponse(), nil
}

// GetOpenEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) GetOpenEntry(ctx context.Context, actor auth.AuthContext) (timeentry.TimeEntryResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry, err := s.openEntry(ctx, actor.EmployeeID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return entry.ToResponse(), nil
}

// ListMine implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListMine(ctx context.Context, actor auth.AuthContext, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntryResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}

	filter.EmployeeID = &actor.EmployeeID
	return s.list(ctx, filter)
}

// List implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) List(ctx context.Context, actor auth.AuthContext, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntryResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}
	return s.list(ctx, filter)
}

func (s *TimeEntryServiceImpl) list(ctx context.Context, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeentry.ListTimeEntryResponse{}, err
	}

	entries, total, err := s.TimeEntryRepository.List(ctx, filter, s.resolveRange(filter))
	if err != nil {
		return timeentry.ListTimeEntryResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, e.ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return timeentry.ListTimeEntryResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		TimeEntries: responses,
	}, nil
}

// resolveRange turns the filter's from/to dates into check-in bounds in the
// payroll time zone. Both ends are inclusive whole days.
func (s *TimeEntryServiceImpl) resolveRange(filter timeentry.TimeEntryFilter) *timeentry.Range {
	if filter.From == nil && filter.To == nil {
		return nil
	}

	r := &timeentry.Range{
		From: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	if filter.From != nil {
		if d, err := time.ParseInLocation("2006-01-02", *filter.From, s.loc); err == nil {
			r.From = d
		}
	}
	if filter.To != nil {
		if d, err := time.ParseInLocation("2006-01-02", *filter.To, s.loc); err == nil {
			r.To = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}
	return r
}

func (s *TimeEntryServiceImpl) requireActive(ctx context.Context, employeeID string) error {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return timeentry.ErrEmployeeInactive
	}
	return nil
}

func (s *TimeEntryServiceImpl) openEntry(ctx context.Context, employeeID string) (timeentry.TimeEntry, error) {
	entry, err := s.TimeEntryRepository.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, timeentry.ErrTimeEntryNotFound) {
			return timeentry.TimeEntry{}, timeentry.ErrNotCheckedIn
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get open time entry: %w", err)
	}
	return entry, nil
}

func (s *TimeEntryServiceImpl) discardSelfie(ctx context.Context, path string) {
	if err := s.fileService.DeleteFile(ctx, path); err != nil {
		slog.WarnContext(ctx, "failed to remove orphaned selfie", "path", path, "error", err)
	}
}
