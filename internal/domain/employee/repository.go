package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Update writes every mutable column of e.
	Update(ctx context.Context, e Employee) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListPayable returns active employees with role employee, ordered by name.
	ListPayable(ctx context.Context) ([]Employee, error)
}
