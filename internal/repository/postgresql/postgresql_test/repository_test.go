package postgresqltest

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBranch(t *testing.T, setup *TestDatabaseSetup, name string) branch.Branch {
	t.Helper()
	b, err := postgresql.NewBranchRepository(setup.DB).Create(context.Background(), branch.Branch{
		Name:         name,
		Latitude:     -6.2,
		Longitude:    106.8,
		RadiusMeters: 100,
	})
	require.NoError(t, err)
	return b
}

func seedEmployee(t *testing.T, setup *TestDatabaseSetup, email string, branchID *string) employee.Employee {
	t.Helper()
	rate := decimal.NewFromInt(20)
	e, err := postgresql.NewEmployeeRepository(setup.DB).Create(context.Background(), employee.Employee{
		FullName:     "Test " + email,
		Email:        email,
		PasswordHash: "hash",
		Role:         auth.RoleEmployee,
		HourlyRate:   &rate,
		IsActive:     true,
		BranchID:     branchID,
	})
	require.NoError(t, err)
	return e
}

func TestBranchRepository_NameAndReferences(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewBranchRepository(setup.DB)

	b := seedBranch(t, setup, "HQ")
	assert.NotEmpty(t, b.ID)

	_, err := repo.Create(ctx, branch.Branch{Name: "HQ", Latitude: 1, Longitude: 1, RadiusMeters: 50})
	assert.ErrorIs(t, err, branch.ErrBranchNameExists)

	seedEmployee(t, setup, "alice@example.com", &b.ID)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), branch.ErrBranchInUse)
}

func TestEmployeeRepository_DuplicateEmail(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(setup.DB)

	seedEmployee(t, setup, "bob@example.com", nil)

	_, err := repo.Create(context.Background(), employee.Employee{
		FullName:     "Bob Again",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		Role:         auth.RoleEmployee,
		IsActive:     true,
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestTimeEntryRepository_OneOpenEntryPerEmployee(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewTimeEntryRepository(setup.DB)

	b := seedBranch(t, setup, "Warehouse")
	e := seedEmployee(t, setup, "carol@example.com", &b.ID)

	checkIn := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	entry, err := repo.Create(ctx, timeentry.TimeEntry{EmployeeID: e.ID, BranchID: b.ID, CheckInTime: checkIn})
	require.NoError(t, err)

	_, err = repo.Create(ctx, timeentry.TimeEntry{EmployeeID: e.ID, BranchID: b.ID, CheckInTime: checkIn.Add(time.Hour)})
	assert.ErrorIs(t, err, timeentry.ErrAlreadyCheckedIn)

	open, err := repo.GetOpenByEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, open.ID)

	checkOut := checkIn.Add(8 * time.Hour)
	hours := decimal.NewFromFloat(7.5)
	entry.CheckOutTime = &checkOut
	entry.BreakMinutes = 30
	entry.TotalHours = &hours
	_, err = repo.CloseEntry(ctx, entry)
	require.NoError(t, err)

	_, err = repo.CloseEntry(ctx, entry)
	assert.ErrorIs(t, err, timeentry.ErrNotCheckedIn)

	_, err = repo.GetOpenByEmployee(ctx, e.ID)
	assert.ErrorIs(t, err, timeentry.ErrTimeEntryNotFound)

	completed, err := repo.ListCompletedInRange(ctx, timeentry.Range{
		From: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC),
	}, []string{e.ID})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, 30, completed[0].BreakMinutes)
}

func TestPayrollRepositories_DetailsAndLock(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	cycles := postgresql.NewPayrollCycleRepository(setup.DB)
	details := postgresql.NewPayrollDetailRepository(setup.DB)
	locker := postgresql.NewCycleLocker(setup.DB)

	e := seedEmployee(t, setup, "dave@example.com", nil)

	cycle, err := cycles.Create(ctx, payroll.PayrollCycle{
		Name:      "March",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    payroll.StatusActive,
	})
	require.NoError(t, err)

	detail := payroll.PayrollDetail{
		PayrollCycleID: cycle.ID,
		EmployeeID:     e.ID,
		TotalHours:     decimal.NewFromInt(8),
		SessionCount:   1,
		RateType:       payroll.RateTypeHourly,
		Rate:           decimal.NewFromInt(20),
		BasePay:        decimal.NewFromInt(160),
		NetPay:         decimal.NewFromInt(160),
	}

	created, err := details.CreateBatch(ctx, []payroll.PayrollDetail{detail})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.NotEmpty(t, created[0].ID)

	_, err = details.CreateBatch(ctx, []payroll.PayrollDetail{detail})
	assert.ErrorIs(t, err, payroll.ErrAlreadyCalculated)

	count, err := details.CountByCycle(ctx, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- locker.WithCycleLock(ctx, cycle.ID, func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()

	<-held
	err = locker.WithCycleLock(ctx, cycle.ID, func(ctx context.Context) error {
		t.Error("second holder must not run")
		return nil
	})
	assert.ErrorIs(t, err, payroll.ErrConcurrentModification)

	close(release)
	require.NoError(t, <-done)

	deleted, err := details.DeleteByCycle(ctx, cycle.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}
