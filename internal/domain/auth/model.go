// Package auth provides user accounts, password verification, and JWT
// session tokens.
package auth

// Roles. The first created user becomes the super admin and cannot be
// deleted or demoted.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)

// User is an account. PasswordHash never leaves the server.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	CreatedAt    string `db:"created_at" json:"createdAt,omitempty"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return true
	}
	return false
}
