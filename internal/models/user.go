package models

// User is the row shape of the users table.
type User struct {
	UserID         int64   `db:"user_id"`
	Email          string  `db:"email"`
	PasswordHash   *string `db:"password_hash"`
	Role           string  `db:"role"`
	IsActive       bool    `db:"is_active"`
	AuthProvider   string  `db:"auth_provider"`
	ProviderUserID *string `db:"provider_user_id"`
	AuditFields
}
