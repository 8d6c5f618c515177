package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `
	t.id, t.employee_id, t.branch_id, t.check_in_time, t.check_out_time, t.break_minutes, t.total_hours,
	t.check_in_latitude, t.check_in_longitude, t.check_out_latitude, t.check_out_longitude,
	t.check_in_selfie, t.check_out_selfie, t.notes, t.created_at, t.updated_at,
	e.full_name, b.name`

const timeEntryJoins = `
	FROM time_entries t
	LEFT JOIN employees e ON e.id = t.employee_id
	LEFT JOIN branches b ON b.id = t.branch_id`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var te timeentry.TimeEntry
	err := row.Scan(
		&te.ID, &te.EmployeeID, &te.BranchID, &te.CheckInTime, &te.CheckOutTime, &te.BreakMinutes, &te.TotalHours,
		&te.CheckInLatitude, &te.CheckInLongitude, &te.CheckOutLatitude, &te.CheckOutLongitude,
		&te.CheckInSelfie, &te.CheckOutSelfie, &te.Notes, &te.CreatedAt, &te.UpdatedAt,
		&te.EmployeeName, &te.BranchName,
	)
	return te, err
}

// Create implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			employee_id, branch_id, check_in_time, check_in_latitude, check_in_longitude,
			check_in_selfie, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.BranchID,
		entry.CheckInTime,
		entry.CheckInLatitude,
		entry.CheckInLongitude,
		entry.CheckInSelfie,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_time_entries_open_employee") {
			return timeentry.TimeEntry{}, timeentry.ErrAlreadyCheckedIn
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + timeEntryJoins + ` WHERE t.id = $1`

	te, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}
	return te, nil
}

// GetOpenByEmployee implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + timeEntryJoins + `
		WHERE t.employee_id = $1
		  AND t.check_out_time IS NULL
		ORDER BY t.check_in_time DESC
		LIMIT 1`

	te, err := scanTimeEntry(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get open time entry: %w", err)
	}
	return te, nil
}

// CloseEntry implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) CloseEntry(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET check_out_time = $1, break_minutes = $2, total_hours = $3,
			check_out_latitude = $4, check_out_longitude = $5, check_out_selfie = $6,
			notes = COALESCE($7, notes), updated_at = NOW()
		WHERE id = $8 AND check_out_time IS NULL
		RETURNING notes, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.CheckOutTime,
		entry.BreakMinutes,
		entry.TotalHours,
		entry.CheckOutLatitude,
		entry.CheckOutLongitude,
		entry.CheckOutSelfie,
		entry.Notes,
		entry.ID,
	).Scan(&entry.Notes, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// closed by a concurrent request
			return timeentry.TimeEntry{}, timeentry.ErrNotCheckedIn
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to close time entry: %w", err)
	}

	return entry, nil
}

// List implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, filter timeentry.TimeEntryFilter, rng *timeentry.Range) ([]timeentry.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.BranchID != nil && *filter.BranchID != "" {
		where += fmt.Sprintf(" AND t.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if rng != nil {
		where += fmt.Sprintf(" AND t.check_in_time >= $%d AND t.check_in_time <= $%d", argIdx, argIdx+1)
		args = append(args, rng.From, rng.To)
		argIdx += 2
	}
	if filter.OpenOnly {
		where += " AND t.check_out_time IS NULL"
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM time_entries t WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	selectQuery := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY t.check_in_time DESC
		LIMIT $%d OFFSET $%d`, timeEntryColumns, timeEntryJoins, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	entries, err := r.queryEntries(ctx, q, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListCompletedInRange implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ListCompletedInRange(ctx context.Context, rng timeentry.Range, employeeIDs []string) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + timeEntryJoins + `
		WHERE t.check_out_time IS NOT NULL
		  AND t.check_in_time >= $1
		  AND t.check_in_time <= $2`
	args := []interface{}{rng.From, rng.To}
	if len(employeeIDs) > 0 {
		query += ` AND t.employee_id = ANY($3::uuid[])`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY t.check_in_time ASC, t.id ASC`

	return r.queryEntries(ctx, q, query, args...)
}

func (r *timeEntryRepository) queryEntries(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]timeentry.TimeEntry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timeentry.TimeEntry, 0)
	for rows.Next() {
		te, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, te)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}
	return entries, nil
}
