package cron

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpenEntries struct {
	entries []timeentry.TimeEntry
	err     error
	filters []timeentry.TimeEntryFilter
}

func (f *fakeOpenEntries) List(_ context.Context, filter timeentry.TimeEntryFilter, _ *timeentry.Range) ([]timeentry.TimeEntry, int64, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, 0, f.err
	}
	start := (filter.Page - 1) * filter.Limit
	if start >= len(f.entries) {
		return nil, int64(len(f.entries)), nil
	}
	end := min(start+filter.Limit, len(f.entries))
	return f.entries[start:end], int64(len(f.entries)), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTimeEntryJobs_FindStale(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	entries := make([]timeentry.TimeEntry, 0, 150)
	for i := 0; i < 150; i++ {
		checkIn := now.Add(-time.Hour)
		if i%50 == 0 {
			checkIn = now.Add(-20 * time.Hour)
		}
		entries = append(entries, timeentry.TimeEntry{ID: fmt.Sprintf("entry-%d", i), CheckInTime: checkIn})
	}
	repo := &fakeOpenEntries{entries: entries}

	jobs := NewTimeEntryJobs(repo, 16*time.Hour, discardLogger())
	jobs.now = func() time.Time { return now }

	stale, err := jobs.findStale(context.Background())
	require.NoError(t, err)
	assert.Len(t, stale, 3)

	require.Len(t, repo.filters, 2)
	for _, f := range repo.filters {
		assert.True(t, f.OpenOnly)
		assert.Equal(t, openEntryPageSize, f.Limit)
	}
}

func TestTimeEntryJobs_ListError(t *testing.T) {
	jobs := NewTimeEntryJobs(&fakeOpenEntries{err: errors.New("db down")}, time.Hour, discardLogger())
	assert.Error(t, jobs.ReportStaleOpenEntries(context.Background()))
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	var runs atomic.Int32
	ran := make(chan struct{}, 1)

	s := NewScheduler(discardLogger())
	s.AddJob("probe", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), runs.Load())
}
