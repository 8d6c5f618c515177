package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// workedHoursExpr is (check_out - check_in) - break in hours, floored at zero.
const workedHoursExpr = `GREATEST(EXTRACT(EPOCH FROM (t.check_out_time - t.check_in_time)) - t.break_minutes * 60, 0) / 3600`

// CountActiveEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active AND role = 'employee'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return n, nil
}

// CountOpenEntries implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountOpenEntries(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(DISTINCT employee_id) FROM time_entries WHERE check_out_time IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count open time entries: %w", err)
	}
	return n, nil
}

// GetSessionTotals implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetSessionTotals(ctx context.Context, from, to time.Time) (*dashboard.SessionTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), ROUND(COALESCE(SUM(` + workedHoursExpr + `), 0)::numeric, 2)
		FROM time_entries t
		WHERE t.check_out_time IS NOT NULL
		  AND t.check_in_time >= $1
		  AND t.check_in_time <= $2
	`

	var totals dashboard.SessionTotals
	if err := q.QueryRow(ctx, query, from, to).Scan(&totals.Sessions, &totals.TotalHours); err != nil {
		return nil, fmt.Errorf("failed to get session totals: %w", err)
	}
	return &totals, nil
}

// GetHoursByBranch implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetHoursByBranch(ctx context.Context, from, to time.Time) ([]dashboard.BranchHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.name, COUNT(t.id), ROUND(COALESCE(SUM(` + workedHoursExpr + `), 0)::numeric, 2)
		FROM branches b
		LEFT JOIN time_entries t
			ON t.branch_id = b.id
		   AND t.check_out_time IS NOT NULL
		   AND t.check_in_time >= $1
		   AND t.check_in_time <= $2
		GROUP BY b.id, b.name
		ORDER BY b.name ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get hours by branch: %w", err)
	}
	defer rows.Close()

	result := make([]dashboard.BranchHours, 0)
	for rows.Next() {
		var bh dashboard.BranchHours
		if err := rows.Scan(&bh.BranchID, &bh.BranchName, &bh.Sessions, &bh.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan branch hours: %w", err)
		}
		result = append(result, bh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate branch hours: %w", err)
	}
	return result, nil
}
