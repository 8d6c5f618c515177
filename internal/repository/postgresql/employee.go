package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.full_name, e.email, e.password_hash, e.role, e.hourly_rate, e.daily_rate,
	e.is_active, e.branch_id, e.created_at, e.updated_at, b.name`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.PasswordHash, &emp.Role, &emp.HourlyRate, &emp.DailyRate,
		&emp.IsActive, &emp.BranchID, &emp.CreatedAt, &emp.UpdatedAt, &emp.BranchName,
	)
	return emp, err
}

func (r *employeeRepositoryImpl) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return employee.ErrEmployeeNotFound
	case isUniqueViolation(err, "uq_employees_email"):
		return employee.ErrEmailExists
	case isForeignKeyViolation(err, ""):
		return employee.ErrBranchNotFound
	}
	return fmt.Errorf("failed to %s employee: %w", op, err)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN branches b ON b.id = e.branch_id
		WHERE e.id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (full_name, email, password_hash, role, hourly_rate, daily_rate, is_active, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.FullName,
		newEmployee.Email,
		newEmployee.PasswordHash,
		newEmployee.Role,
		newEmployee.HourlyRate,
		newEmployee.DailyRate,
		newEmployee.IsActive,
		newEmployee.BranchID,
	).Scan(&newEmployee.ID, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		return employee.Employee{}, r.mapWriteError("create", err)
	}

	return newEmployee, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, role = $2, hourly_rate = $3, daily_rate = $4,
			is_active = $5, branch_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		e.FullName, e.Role, e.HourlyRate, e.DailyRate, e.IsActive, e.BranchID, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, r.mapWriteError("update", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Role != nil {
		where += fmt.Sprintf(" AND e.role = $%d", argIdx)
		args = append(args, *filter.Role)
		argIdx++
	}
	if filter.IsActive != nil {
		where += fmt.Sprintf(" AND e.is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.BranchID != nil {
		where += fmt.Sprintf(" AND e.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees e WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	selectQuery := fmt.Sprintf(`SELECT %s
		FROM employees e
		LEFT JOIN branches b ON b.id = e.branch_id
		WHERE %s
		ORDER BY e.full_name ASC, e.id ASC
		LIMIT $%d OFFSET $%d`, employeeColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	employees, err := r.queryEmployees(ctx, q, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListPayable implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListPayable(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN branches b ON b.id = e.branch_id
		WHERE e.role = 'employee' AND e.is_active
		ORDER BY e.full_name ASC, e.id ASC`

	return r.queryEmployees(ctx, q, query)
}

func (r *employeeRepositoryImpl) queryEmployees(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}
