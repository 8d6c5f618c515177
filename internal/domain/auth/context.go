package auth

// Role is the access level carried in a verified token.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// AuthContext identifies the caller of a service operation. It is built by the
// HTTP middleware from a verified token and passed explicitly to services.
type AuthContext struct {
	UserID     string
	EmployeeID string
	Role       Role
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RequireAdmin returns ErrAdminRequired unless the caller is an admin.
func (a AuthContext) RequireAdmin() error {
	if !a.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// RequireEmployee returns ErrEmployeeContextRequired when the token carries no employee.
func (a AuthContext) RequireEmployee() error {
	if a.EmployeeID == "" {
		return ErrEmployeeContextRequired
	}
	return nil
}
