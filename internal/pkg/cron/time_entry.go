package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
)

const openEntryPageSize = 100

// OpenEntryLister is the slice of the time entry repository the jobs read.
type OpenEntryLister interface {
	List(ctx context.Context, filter timeentry.TimeEntryFilter, r *timeentry.Range) ([]timeentry.TimeEntry, int64, error)
}

// TimeEntryJobs reports sessions that were never checked out. Entries are
// only logged; closing them is left to the employee or an administrator.
type TimeEntryJobs struct {
	entries    OpenEntryLister
	staleAfter time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

func NewTimeEntryJobs(entries OpenEntryLister, staleAfter time.Duration, logger *slog.Logger) *TimeEntryJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimeEntryJobs{
		entries:    entries,
		staleAfter: staleAfter,
		logger:     logger,
		now:        time.Now,
	}
}

func (j *TimeEntryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_stale_open_entries", time.Hour, j.ReportStaleOpenEntries)
}

// ReportStaleOpenEntries logs every open entry checked in longer than
// staleAfter ago.
func (j *TimeEntryJobs) ReportStaleOpenEntries(ctx context.Context) error {
	_, err := j.findStale(ctx)
	return err
}

func (j *TimeEntryJobs) findStale(ctx context.Context) ([]timeentry.TimeEntry, error) {
	cutoff := j.now().Add(-j.staleAfter)
	stale := make([]timeentry.TimeEntry, 0)

	for page := 1; ; page++ {
		entries, total, err := j.entries.List(ctx, timeentry.TimeEntryFilter{
			OpenOnly: true,
			Page:     page,
			Limit:    openEntryPageSize,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list open entries: %w", err)
		}

		for _, e := range entries {
			if e.CheckInTime.Before(cutoff) {
				stale = append(stale, e)
				j.logger.Warn("open time entry exceeds threshold",
					"entry_id", e.ID,
					"employee_id", e.EmployeeID,
					"check_in_time", e.CheckInTime.Format(time.RFC3339),
					"open_for", j.now().Sub(e.CheckInTime).Round(time.Minute).String(),
				)
			}
		}

		if len(entries) < openEntryPageSize || int64(page*openEntryPageSize) >= total {
			break
		}
	}

	if len(stale) > 0 {
		j.logger.Info("stale open entries found", "count", len(stale), "threshold", j.staleAfter.String())
	}
	return stale, nil
}
