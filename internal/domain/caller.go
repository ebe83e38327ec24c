package domain

// Role is the account role of the caller
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// IsValid returns true for the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Caller is the authenticated identity performing an operation.
// It is passed explicitly into every use case that checks permissions.
type Caller struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for privileged callers
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// IsValid returns true if the caller has an identity and a known role
func (c Caller) IsValid() bool {
	return c.UserID > 0 && c.Role.IsValid()
}
