package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tillbook/internal/core/apperror"
	"tillbook/internal/core/tx"
	"tillbook/pkg/logger"
)

// Session is the result of a successful login or setup.
type Session struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service provides authentication and user management operations.
type Service struct {
	repo      Repository
	jwt       *JWTService
	txManager tx.Manager
}

// NewService creates a new auth service.
func NewService(repo Repository, jwt *JWTService, txManager tx.Manager) *Service {
	return &Service{repo: repo, jwt: jwt, txManager: txManager}
}

// SetupRequired reports whether no users exist yet.
func (s *Service) SetupRequired(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count == 0, nil
}

// SetupAdmin creates the first user as super admin and logs them in.
// Fails once any user exists.
func (s *Service) SetupAdmin(ctx context.Context, username, password string) (*Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	var user *User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			return apperror.NewConflict("setup already completed")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user = &User{Username: username, PasswordHash: string(hash), Role: RoleSuperAdmin}
		id, err := s.repo.Create(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "initial admin created", "username", username)
	return s.newSession(user)
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid username or password")
	}

	logger.Info(ctx, "user logged in", "username", username)
	return s.newSession(user)
}

// CreateUser adds a new account. Only admin roles may be assigned; the super
// admin role is reserved for the setup user.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleStaff
	}
	if role == RoleSuperAdmin {
		return nil, apperror.NewValidation("cannot assign the super admin role").
			WithDetail("field", "role")
	}
	if !ValidRole(role) {
		return nil, apperror.NewValidation("unknown role").WithDetail("field", "role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{Username: username, PasswordHash: string(hash), Role: role}
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	logger.Info(ctx, "user created", "username", username, "role", role)
	return user, nil
}

// DeleteUser removes an account. The super admin cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == RoleSuperAdmin {
		return apperror.NewForbidden("the super admin cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "user deleted", "username", user.Username)
	return nil
}

// ChangePassword sets a new password after verifying the current one.
// The super admin may reset without the current password.
func (s *Service) ChangePassword(ctx context.Context, id int64, current, newPassword string) error {
	if len(newPassword) < 6 {
		return apperror.NewValidation("password must be at least 6 characters").
			WithDetail("field", "newPassword")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role != RoleSuperAdmin {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
			return apperror.NewUnauthorized("current password is incorrect")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// UpdateRole changes a user's role. The super admin keeps its role.
func (s *Service) UpdateRole(ctx context.Context, id int64, role string) error {
	if role == RoleSuperAdmin || !ValidRole(role) {
		return apperror.NewValidation("unknown role").WithDetail("field", "role")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == RoleSuperAdmin {
		return apperror.NewForbidden("the super admin role cannot be changed")
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// ValidateToken exposes token validation for middleware.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.jwt.ValidateToken(token)
}

func (s *Service) newSession(user *User) (*Session, error) {
	token, expiresAt, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func validateCredentials(username, password string) error {
	if username == "" {
		return apperror.NewValidation("username is required").
			WithDetail("field", "username")
	}
	if len(password) < 6 {
		return apperror.NewValidation("password must be at least 6 characters").
			WithDetail("field", "password")
	}
	return nil
}
