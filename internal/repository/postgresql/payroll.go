package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ========== CYCLES ==========

type payrollCycleRepository struct {
	db *database.DB
}

func NewPayrollCycleRepository(db *database.DB) payroll.CycleRepository {
	return &payrollCycleRepository{db: db}
}

const cycleColumns = `
	c.id, c.name, c.start_date, c.end_date, c.status, c.calculated_at, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM payroll_details d WHERE d.payroll_cycle_id = c.id)`

func scanCycle(row pgx.Row) (payroll.PayrollCycle, error) {
	var c payroll.PayrollCycle
	err := row.Scan(
		&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.Status, &c.CalculatedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.DetailCount,
	)
	return c, err
}

func (r *payrollCycleRepository) getOne(ctx context.Context, query, id string) (payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCycle(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
		}
		return payroll.PayrollCycle{}, fmt.Errorf("failed to get payroll cycle: %w", err)
	}
	return c, nil
}

// Create implements payroll.CycleRepository.
func (r *payrollCycleRepository) Create(ctx context.Context, cycle payroll.PayrollCycle) (payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_cycles (name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, cycle.Name, cycle.StartDate, cycle.EndDate, cycle.Status).
		Scan(&cycle.ID, &cycle.CreatedAt, &cycle.UpdatedAt)
	if err != nil {
		return payroll.PayrollCycle{}, fmt.Errorf("failed to create payroll cycle: %w", err)
	}

	return cycle, nil
}

// GetByID implements payroll.CycleRepository.
func (r *payrollCycleRepository) GetByID(ctx context.Context, id string) (payroll.PayrollCycle, error) {
	return r.getOne(ctx, `SELECT `+cycleColumns+` FROM payroll_cycles c WHERE c.id = $1`, id)
}

// GetForUpdate implements payroll.CycleRepository.
func (r *payrollCycleRepository) GetForUpdate(ctx context.Context, id string) (payroll.PayrollCycle, error) {
	return r.getOne(ctx, `SELECT `+cycleColumns+` FROM payroll_cycles c WHERE c.id = $1 FOR UPDATE OF c`, id)
}

// List implements payroll.CycleRepository.
func (r *payrollCycleRepository) List(ctx context.Context, filter payroll.CycleFilter) ([]payroll.PayrollCycle, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1
	if filter.Status != nil {
		where += fmt.Sprintf(" AND c.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_cycles c WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll cycles: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM payroll_cycles c
		WHERE %s
		ORDER BY c.start_date DESC, c.created_at DESC
		LIMIT $%d OFFSET $%d`, cycleColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll cycles: %w", err)
	}
	defer rows.Close()

	cycles := make([]payroll.PayrollCycle, 0)
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll cycles: %w", err)
	}

	return cycles, total, nil
}

// UpdateStatus implements payroll.CycleRepository.
func (r *payrollCycleRepository) UpdateStatus(ctx context.Context, id string, status payroll.CycleStatus) (payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payroll_cycles SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return payroll.PayrollCycle{}, fmt.Errorf("failed to update payroll cycle status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
	}

	return r.GetByID(ctx, id)
}

// SetCalculatedAt implements payroll.CycleRepository.
func (r *payrollCycleRepository) SetCalculatedAt(ctx context.Context, id string, at *time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payroll_cycles SET calculated_at = $1, updated_at = NOW() WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to set calculated_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}
	return nil
}

// Delete implements payroll.CycleRepository.
func (r *payrollCycleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_cycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}
	return nil
}

// ========== DETAILS ==========

type payrollDetailRepository struct {
	db *database.DB
}

func NewPayrollDetailRepository(db *database.DB) payroll.DetailRepository {
	return &payrollDetailRepository{db: db}
}

// CountByCycle implements payroll.DetailRepository.
func (r *payrollDetailRepository) CountByCycle(ctx context.Context, cycleID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_details WHERE payroll_cycle_id = $1`, cycleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count payroll details: %w", err)
	}
	return n, nil
}

// CreateBatch implements payroll.DetailRepository with a single multi-row insert.
func (r *payrollDetailRepository) CreateBatch(ctx context.Context, details []payroll.PayrollDetail) ([]payroll.PayrollDetail, error) {
	if len(details) == 0 {
		return details, nil
	}

	q := GetQuerier(ctx, r.db)

	const cols = 9
	valueStrings := make([]string, 0, len(details))
	valueArgs := make([]interface{}, 0, len(details)*cols)
	now := time.Now().UTC()

	for i := range details {
		d := &details[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.CreatedAt = now

		base := i * cols
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, len(details)*cols+1,
		))
		valueArgs = append(valueArgs,
			d.ID,
			d.PayrollCycleID,
			d.EmployeeID,
			d.TotalHours,
			d.SessionCount,
			string(d.RateType),
			d.Rate,
			d.BasePay,
			d.NetPay,
		)
	}
	valueArgs = append(valueArgs, now)

	query := fmt.Sprintf(`
		INSERT INTO payroll_details (
			id, payroll_cycle_id, employee_id, total_hours, session_count, rate_type, rate, base_pay, net_pay, created_at
		) VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		if isUniqueViolation(err, "uq_payroll_details_cycle_employee") {
			return nil, payroll.ErrAlreadyCalculated
		}
		return nil, fmt.Errorf("failed to batch create payroll details: %w", err)
	}

	return details, nil
}

// DeleteByCycle implements payroll.DetailRepository.
func (r *payrollDetailRepository) DeleteByCycle(ctx context.Context, cycleID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_details WHERE payroll_cycle_id = $1`, cycleID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payroll details: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByCycle implements payroll.DetailRepository.
func (r *payrollDetailRepository) ListByCycle(ctx context.Context, cycleID string) ([]payroll.PayrollDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.payroll_cycle_id, d.employee_id, d.total_hours, d.session_count, d.rate_type,
			   d.rate, d.base_pay, d.net_pay, d.created_at, e.full_name
		FROM payroll_details d
		LEFT JOIN employees e ON e.id = d.employee_id
		WHERE d.payroll_cycle_id = $1
		ORDER BY e.full_name ASC, d.employee_id ASC
	`

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll details: %w", err)
	}
	defer rows.Close()

	details := make([]payroll.PayrollDetail, 0)
	for rows.Next() {
		var d payroll.PayrollDetail
		if err := rows.Scan(
			&d.ID, &d.PayrollCycleID, &d.EmployeeID, &d.TotalHours, &d.SessionCount, &d.RateType,
			&d.Rate, &d.BasePay, &d.NetPay, &d.CreatedAt, &d.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll details: %w", err)
	}

	return details, nil
}

// ========== LOCKING ==========

type cycleLocker struct {
	db *database.DB
}

// NewCycleLocker serializes work on one cycle with a transaction-scoped advisory lock.
func NewCycleLocker(db *database.DB) payroll.CycleLocker {
	return &cycleLocker{db: db}
}

// WithCycleLock implements payroll.CycleLocker. The lock is released when the
// transaction commits or rolls back.
func (l *cycleLocker) WithCycleLock(ctx context.Context, cycleID string, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, l.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, l.db)

		var acquired bool
		err := q.QueryRow(ctx,
			`SELECT pg_try_advisory_xact_lock(hashtextextended($1, 0))`,
			"payroll_cycle:"+cycleID,
		).Scan(&acquired)
		if err != nil {
			return fmt.Errorf("failed to acquire payroll cycle lock: %w", err)
		}
		if !acquired {
			return payroll.ErrConcurrentModification
		}

		return fn(ctx)
	})
}
