package auth

import "context"

// Repository defines persistence operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) (int64, error)
	// GetByUsername returns a NOT_FOUND error for unknown usernames.
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateRole(ctx context.Context, id int64, role string) error
	Count(ctx context.Context) (int64, error)
}
