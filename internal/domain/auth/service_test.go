package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/auth"
	"tillbook/internal/infrastructure/storage/sqlite"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	txm := sqlite.NewTxManager(db)
	jwt := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	return auth.NewService(sqlite.NewUserRepo(txm), jwt, txm)
}

func setup(t *testing.T, s *auth.Service) *auth.Session {
	t.Helper()
	session, err := s.SetupAdmin(context.Background(), "boss", "secret1")
	require.NoError(t, err)
	return session
}

func TestSetupAdmin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	required, err := s.SetupRequired(ctx)
	require.NoError(t, err)
	assert.True(t, required)

	session := setup(t, s)
	assert.Equal(t, auth.RoleSuperAdmin, session.User.Role)
	assert.NotEmpty(t, session.Token)

	required, err = s.SetupRequired(ctx)
	require.NoError(t, err)
	assert.False(t, required)

	// Second setup attempt is rejected.
	_, err = s.SetupAdmin(ctx, "boss2", "secret1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	setup(t, s)

	session, err := s.Login(ctx, "boss", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "boss", session.User.Username)

	claims, err := s.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, auth.RoleSuperAdmin, claims.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	setup(t, s)

	for name, creds := range map[string][2]string{
		"wrong password": {"boss", "nope!!"},
		"unknown user":   {"ghost", "secret1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Login(ctx, creds[0], creds[1])
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
			// Both failure modes look identical to the caller.
			assert.Equal(t, "invalid username or password", appErr.Message)
		})
	}
}

func TestCreateUser_RoleRules(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	setup(t, s)

	staff, err := s.CreateUser(ctx, "clerk", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleStaff, staff.Role)

	admin, err := s.CreateUser(ctx, "manager", "secret1", auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, admin.Role)

	_, err = s.CreateUser(ctx, "usurper", "secret1", auth.RoleSuperAdmin)
	assert.True(t, apperror.IsValidation(err))

	_, err = s.CreateUser(ctx, "odd", "secret1", "janitor")
	assert.True(t, apperror.IsValidation(err))

	_, err = s.CreateUser(ctx, "short", "12345", "")
	assert.True(t, apperror.IsValidation(err))
}

func TestSuperAdminProtections(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	session := setup(t, s)
	superID := session.User.ID

	err := s.DeleteUser(ctx, superID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	err = s.UpdateRole(ctx, superID, auth.RoleStaff)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	// Ordinary users can still be managed.
	clerk, err := s.CreateUser(ctx, "clerk", "secret1", "")
	require.NoError(t, err)
	require.NoError(t, s.UpdateRole(ctx, clerk.ID, auth.RoleAdmin))
	require.NoError(t, s.DeleteUser(ctx, clerk.ID))

	users, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestChangePassword(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	setup(t, s)

	clerk, err := s.CreateUser(ctx, "clerk", "secret1", "")
	require.NoError(t, err)

	err = s.ChangePassword(ctx, clerk.ID, "wrong", "newsecret")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	assert.True(t, apperror.IsValidation(s.ChangePassword(ctx, clerk.ID, "secret1", "123")))

	require.NoError(t, s.ChangePassword(ctx, clerk.ID, "secret1", "newsecret"))

	_, err = s.Login(ctx, "clerk", "secret1")
	assert.Error(t, err)
	_, err = s.Login(ctx, "clerk", "newsecret")
	assert.NoError(t, err)
}

// The super admin resets without proving the current password.
func TestChangePassword_SuperAdminSkipsCurrent(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	session := setup(t, s)

	require.NoError(t, s.ChangePassword(ctx, session.User.ID, "", "newsecret"))

	_, err := s.Login(ctx, "boss", "newsecret")
	assert.NoError(t, err)
}
