package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/auth"
	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/domain/expense"
	"tillbook/internal/infrastructure/storage/sqlite"
)

func openStore(t *testing.T) (*sqlite.DB, *sqlite.TxManager) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, sqlite.NewTxManager(db)
}

func TestSettingsRepo_UpsertAndGetAll(t *testing.T) {
	_, txm := openStore(t)
	repo := sqlite.NewSettingsRepo(txm)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "backup_dir", "/tmp/a"))
	require.NoError(t, repo.Set(ctx, "backup_dir", "/tmp/b"))
	require.NoError(t, repo.Set(ctx, "shop_name", "Corner Shop"))

	pairs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/b", pairs["backup_dir"])
	assert.Equal(t, "Corner Shop", pairs["shop_name"])
}

func TestUserRepo_UniqueUsername(t *testing.T) {
	_, txm := openStore(t)
	repo := sqlite.NewUserRepo(txm)
	ctx := context.Background()

	_, err := repo.Create(ctx, &auth.User{Username: "alice", PasswordHash: "x", Role: auth.RoleStaff})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &auth.User{Username: "alice", PasswordHash: "y", Role: auth.RoleStaff})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProductRepo_SoftDeleteKeepsRow(t *testing.T) {
	_, txm := openStore(t)
	repo := sqlite.NewProductRepo(txm)
	ctx := context.Background()

	id, err := repo.Create(ctx, &product.Product{ProductName: "widget", DefaultSellingPrice: 1})
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, id))

	// Gone from the list but still resolvable by id for history views.
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.IsDeleted)

	// Deleting twice is NOT_FOUND.
	assert.True(t, apperror.IsNotFound(repo.SoftDelete(ctx, id)))
}

func TestActivityRepo_PagedNewestFirst(t *testing.T) {
	_, txm := openStore(t)
	repo := sqlite.NewActivityRepo(txm)
	ctx := context.Background()

	for _, action := range []string{"create", "update", "delete"} {
		require.NoError(t, repo.Insert(ctx, &activity.Entry{
			Username: "alice", Action: action, EntityType: "product",
		}))
	}

	page, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "delete", page.Entries[0].Action)
	assert.Equal(t, "update", page.Entries[1].Action)
}

func TestExpenseRepo_DateRange(t *testing.T) {
	_, txm := openStore(t)
	repo := sqlite.NewExpenseRepo(txm)
	ctx := context.Background()

	for _, e := range []expense.Expense{
		{ExpenseDate: "2025-03-01 10:00:00", Amount: 10},
		{ExpenseDate: "2025-03-15 10:00:00", Amount: 20},
		{ExpenseDate: "2025-04-01 10:00:00", Amount: 30},
	} {
		_, err := repo.Create(ctx, &e)
		require.NoError(t, err)
	}

	expenses, err := repo.List(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.InDelta(t, 20, expenses[0].Amount, 1e-9)
}

func TestMaintenance_CleanupScopes(t *testing.T) {
	_, txm := openStore(t)
	products := sqlite.NewProductRepo(txm)
	expenses := sqlite.NewExpenseRepo(txm)
	m := sqlite.NewMaintenance(txm)
	ctx := context.Background()

	_, err := products.Create(ctx, &product.Product{ProductName: "widget", DefaultSellingPrice: 1})
	require.NoError(t, err)
	_, err = expenses.Create(ctx, &expense.Expense{Amount: 5})
	require.NoError(t, err)

	// Expense-only cleanup leaves the catalog alone.
	require.NoError(t, m.Cleanup(ctx, sqlite.CleanupScope{Expenses: true}))

	left, err := expenses.List(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, left)

	list, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Product cleanup wipes the catalog too.
	require.NoError(t, m.Cleanup(ctx, sqlite.CleanupScope{Products: true}))
	list, err = products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
