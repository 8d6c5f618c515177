package payroll

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/google/uuid"
)

// memStore backs both cycle and detail repositories. memLocker snapshots it on
// entry and restores the snapshot when fn fails, mimicking a rolled back transaction.
type memStore struct {
	mu      sync.Mutex
	cycles  map[string]payroll.PayrollCycle
	details map[string][]payroll.PayrollDetail

	failCreateBatch error
	failDelete      error
}

func newMemStore() *memStore {
	return &memStore{
		cycles:  make(map[string]payroll.PayrollCycle),
		details: make(map[string][]payroll.PayrollDetail),
	}
}

func (m *memStore) addCycle(c payroll.PayrollCycle) payroll.PayrollCycle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.cycles[c.ID] = c
	return c
}

func (m *memStore) Create(ctx context.Context, c payroll.PayrollCycle) (payroll.PayrollCycle, error) {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	return m.addCycle(c), nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (payroll.PayrollCycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok {
		return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
	}
	c.DetailCount = len(m.details[id])
	return c, nil
}

func (m *memStore) GetForUpdate(ctx context.Context, id string) (payroll.PayrollCycle, error) {
	return m.GetByID(ctx, id)
}

func (m *memStore) List(ctx context.Context, filter payroll.CycleFilter) ([]payroll.PayrollCycle, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.PayrollCycle
	for _, c := range m.cycles {
		if filter.Status != nil && string(c.Status) != *filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) UpdateStatus(ctx context.Context, id string, status payroll.CycleStatus) (payroll.PayrollCycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok {
		return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
	}
	c.Status = status
	m.cycles[id] = c
	return c, nil
}

func (m *memStore) SetCalculatedAt(ctx context.Context, id string, at *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.cycles[id]
	c.CalculatedAt = at
	m.cycles[id] = c
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cycles, id)
	delete(m.details, id)
	return nil
}

func (m *memStore) CountByCycle(ctx context.Context, cycleID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.details[cycleID]), nil
}

func (m *memStore) CreateBatch(ctx context.Context, details []payroll.PayrollDetail) ([]payroll.PayrollDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreateBatch != nil {
		return nil, m.failCreateBatch
	}
	out := make([]payroll.PayrollDetail, 0, len(details))
	for _, d := range details {
		for _, existing := range m.details[d.PayrollCycleID] {
			if existing.EmployeeID == d.EmployeeID {
				return nil, payroll.ErrAlreadyCalculated
			}
		}
		d.ID = uuid.NewString()
		m.details[d.PayrollCycleID] = append(m.details[d.PayrollCycleID], d)
		out = append(out, d)
	}
	return out, nil
}

func (m *memStore) DeleteByCycle(ctx context.Context, cycleID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return 0, m.failDelete
	}
	n := int64(len(m.details[cycleID]))
	delete(m.details, cycleID)
	return n, nil
}

func (m *memStore) ListByCycle(ctx context.Context, cycleID string) ([]payroll.PayrollDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.details[cycleID]), nil
}

func (m *memStore) snapshot() (map[string]payroll.PayrollCycle, map[string][]payroll.PayrollDetail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	details := make(map[string][]payroll.PayrollDetail, len(m.details))
	for k, v := range m.details {
		details[k] = slices.Clone(v)
	}
	return maps.Clone(m.cycles), details
}

func (m *memStore) restore(cycles map[string]payroll.PayrollCycle, details map[string][]payroll.PayrollDetail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles, m.details = cycles, details
}

type memLocker struct {
	store *memStore
	mu    sync.Mutex
	held  map[string]bool
}

func newMemLocker(store *memStore) *memLocker {
	return &memLocker{store: store, held: make(map[string]bool)}
}

func (l *memLocker) WithCycleLock(ctx context.Context, cycleID string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	if l.held[cycleID] {
		l.mu.Unlock()
		return payroll.ErrConcurrentModification
	}
	l.held[cycleID] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.held, cycleID)
		l.mu.Unlock()
	}()

	cycles, details := l.store.snapshot()
	if err := fn(ctx); err != nil {
		l.store.restore(cycles, details)
		return err
	}
	return nil
}

type fakeEmployees struct {
	employees []employee.Employee
	err       error
}

func (f *fakeEmployees) ListPayable(ctx context.Context) ([]employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Payable() {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeEntries filters like the SQL query would. When gate is set, the first
// call blocks after signalling entered until release is closed.
type fakeEntries struct {
	entries []timeentry.TimeEntry

	gate     sync.Once
	entered  chan struct{}
	release  chan struct{}
	lastIDs  []string
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeEntries) ListCompletedInRange(ctx context.Context, r timeentry.Range, employeeIDs []string) ([]timeentry.TimeEntry, error) {
	if f.entered != nil {
		f.gate.Do(func() {
			close(f.entered)
			<-f.release
		})
	}
	f.lastIDs, f.lastFrom, f.lastTo = employeeIDs, r.From, r.To

	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if e.CheckOutTime == nil || e.CheckInTime.Before(r.From) || e.CheckInTime.After(r.To) {
			continue
		}
		if len(employeeIDs) > 0 && !slices.Contains(employeeIDs, e.EmployeeID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func entry(employeeID string, checkIn time.Time, worked time.Duration, breakMinutes int) timeentry.TimeEntry {
	out := checkIn.Add(worked + time.Duration(breakMinutes)*time.Minute)
	return timeentry.TimeEntry{
		ID:           fmt.Sprintf("te-%s-%d", employeeID, checkIn.Unix()),
		EmployeeID:   employeeID,
		CheckInTime:  checkIn,
		CheckOutTime: &out,
		BreakMinutes: breakMinutes,
	}
}
