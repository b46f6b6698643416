package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/auth"
)

const usersTable = "users"

var userColumns = []string{"id", "username", "password_hash", "role", "created_at"}

// Compile-time check that UserRepo implements auth.Repository.
var _ auth.Repository = (*UserRepo)(nil)

// UserRepo implements auth.Repository on the embedded store.
type UserRepo struct {
	tx      *TxManager
	builder squirrel.StatementBuilderType
}

// NewUserRepo creates a new user repository.
func NewUserRepo(tx *TxManager) *UserRepo {
	return &UserRepo{
		tx:      tx,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a new user and returns its id.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) (int64, error) {
	query, args, err := r.builder.Insert(usersTable).
		Columns("username", "password_hash", "role").
		Values(u.Username, u.PasswordHash, u.Role).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperror.NewDuplicate("user", "username", u.Username)
		}
		return 0, apperror.NewPersistence("insert user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.NewPersistence("read insert id", err)
	}
	return id, nil
}

// GetByUsername returns a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	query, args, err := r.builder.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &u, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", username)
		}
		return nil, apperror.NewPersistence("select user", err)
	}
	return &u, nil
}

// GetByID returns a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	query, args, err := r.builder.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &u, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", id)
		}
		return nil, apperror.NewPersistence("select user", err)
	}
	return &u, nil
}

// List returns all users, oldest first.
func (r *UserRepo) List(ctx context.Context) ([]auth.User, error) {
	query, args, err := r.builder.Select(userColumns...).
		From(usersTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var users []auth.User
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &users, query, args...); err != nil {
		return nil, apperror.NewPersistence("select users", err)
	}
	return users, nil
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete(usersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("delete user", err)
	}
	return requireAffected(res, "user", id)
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := r.builder.Update(usersTable).
		Set("password_hash", passwordHash).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("update password", err)
	}
	return requireAffected(res, "user", id)
}

// UpdateRole replaces a user's role.
func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	query, args, err := r.builder.Update(usersTable).
		Set("role", role).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("update role", err)
	}
	return requireAffected(res, "user", id)
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(usersTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &count, query, args...); err != nil {
		return 0, apperror.NewPersistence("count users", err)
	}
	return count, nil
}
