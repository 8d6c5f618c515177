package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	byID map[string]employee.Employee
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]employee.Employee{}}
}

func (m *memRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range m.byID {
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	e.ID = uuid.NewString()
	m.byID[e.ID] = e
	return e, nil
}

func (m *memRepo) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := m.byID[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	m.byID[e.ID] = e
	return e, nil
}

func (m *memRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) ListPayable(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

var admin = auth.AuthContext{UserID: "admin-user", EmployeeID: "33333333-3333-3333-3333-333333333333", Role: auth.RoleAdmin}

func createReq(email string) employee.CreateEmployeeRequest {
	rate := decimal.RequireFromString("50")
	return employee.CreateEmployeeRequest{
		FullName:   "  Ana Lopez ",
		Email:      email,
		Password:   "s3cretpass",
		HourlyRate: &rate,
	}
}

func TestCreate(t *testing.T) {
	repo := newMemRepo()
	svc := NewEmployeeService(repo)

	resp, err := svc.Create(context.Background(), admin, createReq("Ana@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", resp.FullName)
	assert.Equal(t, "ana@example.com", resp.Email)
	assert.Equal(t, "employee", resp.Role)
	assert.True(t, resp.IsActive)

	stored := repo.byID[resp.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpass")))

	_, err = svc.Create(context.Background(), admin, createReq("ana@example.com"))
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewEmployeeService(newMemRepo())

	neg := decimal.RequireFromString("-1")
	req := createReq("bad-email")
	req.Password = "short"
	req.DailyRate = &neg

	_, err := svc.Create(context.Background(), admin, req)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	m := verrs.ToMap()
	assert.Contains(t, m, "email")
	assert.Contains(t, m, "password")
	assert.Contains(t, m, "daily_rate")
}

func TestRequiresAdmin(t *testing.T) {
	svc := NewEmployeeService(newMemRepo())
	emp := auth.AuthContext{UserID: "u", EmployeeID: "e", Role: auth.RoleEmployee}

	_, err := svc.Create(context.Background(), emp, createReq("x@example.com"))
	assert.ErrorIs(t, err, auth.ErrAdminRequired)
	_, err = svc.List(context.Background(), emp, employee.EmployeeFilter{})
	assert.ErrorIs(t, err, auth.ErrAdminRequired)
}

func TestUpdate_Rates(t *testing.T) {
	repo := newMemRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, createReq("ana@example.com"))
	require.NoError(t, err)

	daily := decimal.RequireFromString("400")
	name := "Ana L."
	updated, err := svc.Update(ctx, admin, employee.UpdateEmployeeRequest{
		ID:              created.ID,
		FullName:        &name,
		DailyRate:       &daily,
		ClearHourlyRate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana L.", updated.FullName)
	assert.Nil(t, updated.HourlyRate)
	require.NotNil(t, updated.DailyRate)
	assert.True(t, updated.DailyRate.Equal(daily))

	_, err = svc.Update(ctx, admin, employee.UpdateEmployeeRequest{ID: created.ID, DailyRate: &daily, ClearDailyRate: true})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	_, err = svc.Update(ctx, admin, employee.UpdateEmployeeRequest{ID: uuid.NewString(), FullName: &name})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeactivate(t *testing.T) {
	repo := newMemRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, createReq("ana@example.com"))
	require.NoError(t, err)

	resp, err := svc.Deactivate(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	_, err = svc.Deactivate(ctx, admin, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInactive)

	_, err = svc.Deactivate(ctx, admin, admin.EmployeeID)
	assert.ErrorIs(t, err, employee.ErrCannotDeactivateSelf)

	inactive := false
	_, err = svc.Update(ctx, admin, employee.UpdateEmployeeRequest{ID: created.ID, IsActive: &inactive})
	require.NoError(t, err)
}

func TestList_Showing(t *testing.T) {
	repo := newMemRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	resp, err := svc.List(ctx, admin, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", resp.Showing)
	assert.Empty(t, resp.Employees)

	_, err = svc.Create(ctx, admin, createReq("a@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, createReq("b@example.com"))
	require.NoError(t, err)

	resp, err = svc.List(ctx, admin, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, "1-2 of 2", resp.Showing)
}
