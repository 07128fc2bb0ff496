package domain

// UserRole is the firm-wide role of a user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
	RolePartner UserRole = "partner"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RolePartner:
		return true
	}
	return false
}

// AuthProvider records how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a member of the investment team.
type User struct {
	UserID         int64        `json:"id"`
	Email          string       `json:"email"`
	PasswordHash   *string      `json:"-"` // nil for users that only sign in through a provider
	Role           UserRole     `json:"role"`
	IsActive       bool         `json:"is_active"`
	AuthProvider   AuthProvider `json:"auth_provider"`
	ProviderUserID *string      `json:"-"`
	AuditFields
}

// IsAdmin reports whether the user may perform admin-only actions.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
