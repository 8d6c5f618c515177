package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/dashboard"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) *DashboardServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// resolveRange defaults to the current month up to today, in the payroll time zone.
func (s *DashboardServiceImpl) resolveRange(req dashboard.DashboardRequest) (time.Time, time.Time) {
	now := s.now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	if d, err := time.ParseInLocation("2006-01-02", req.From, s.loc); err == nil {
		from = d
	}
	if d, err := time.ParseInLocation("2006-01-02", req.To, s.loc); err == nil {
		to = d
	}
	return from, to.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// GetDashboard fans the four dashboard queries out in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, actor auth.AuthContext, req dashboard.DashboardRequest) (*dashboard.DashboardResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, to := s.resolveRange(req)
	resp := &dashboard.DashboardResponse{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Active employees
	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx)
		if err != nil {
			return err
		}
		resp.ActiveEmployees = n
		return nil
	})

	// 2. Currently checked in
	g.Go(func() error {
		n, err := s.CountOpenEntries(gCtx)
		if err != nil {
			return err
		}
		resp.CheckedInNow = n
		return nil
	})

	// 3. Completed sessions and hours in range
	g.Go(func() error {
		totals, err := s.GetSessionTotals(gCtx, from, to)
		if err != nil {
			return err
		}
		resp.CompletedSessions = totals.Sessions
		resp.TotalHours = totals.TotalHours
		return nil
	})

	// 4. Hours per branch
	g.Go(func() error {
		rows, err := s.GetHoursByBranch(gCtx, from, to)
		if err != nil {
			return err
		}
		resp.HoursByBranch = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get dashboard data: %w", err)
	}

	return resp, nil
}
