package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/expense"
)

const expensesTable = "expenses"

var expenseColumns = []string{"id", "expense_date", "category", "amount", "notes", "created_at"}

// Compile-time check that ExpenseRepo implements expense.Repository.
var _ expense.Repository = (*ExpenseRepo)(nil)

// ExpenseRepo implements expense.Repository on the embedded store.
type ExpenseRepo struct {
	tx      *TxManager
	builder squirrel.StatementBuilderType
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(tx *TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		tx:      tx,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts an expense and returns its id.
func (r *ExpenseRepo) Create(ctx context.Context, e *expense.Expense) (int64, error) {
	cols := map[string]any{
		"category": e.Category,
		"amount":   e.Amount,
		"notes":    e.Notes,
	}
	if e.ExpenseDate != "" {
		cols["expense_date"] = e.ExpenseDate
	}

	query, args, err := r.builder.Insert(expensesTable).SetMap(cols).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperror.NewPersistence("insert expense", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.NewPersistence("read insert id", err)
	}
	return id, nil
}

// Update rewrites an expense in place.
func (r *ExpenseRepo) Update(ctx context.Context, id int64, e *expense.Expense) error {
	cols := map[string]any{
		"category": e.Category,
		"amount":   e.Amount,
		"notes":    e.Notes,
	}
	if e.ExpenseDate != "" {
		cols["expense_date"] = e.ExpenseDate
	}

	query, args, err := r.builder.Update(expensesTable).
		SetMap(cols).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("update expense", err)
	}
	return requireAffected(res, "expense", id)
}

// Delete removes an expense.
func (r *ExpenseRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete(expensesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("delete expense", err)
	}
	return requireAffected(res, "expense", id)
}

// GetByID returns one expense.
func (r *ExpenseRepo) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	query, args, err := r.builder.Select(expenseColumns...).
		From(expensesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var e expense.Expense
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &e, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, apperror.NewNotFound("expense", id)
		}
		return nil, apperror.NewPersistence("select expense", err)
	}
	return &e, nil
}

// List returns expenses newest first, optionally bounded by calendar dates.
func (r *ExpenseRepo) List(ctx context.Context, startDate, endDate string) ([]expense.Expense, error) {
	q := r.builder.Select(expenseColumns...).
		From(expensesTable).
		OrderBy("expense_date DESC", "id DESC")
	if startDate != "" {
		q = q.Where(squirrel.Expr("date(expense_date) >= date(?)", startDate))
	}
	if endDate != "" {
		q = q.Where(squirrel.Expr("date(expense_date) <= date(?)", endDate))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var expenses []expense.Expense
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &expenses, query, args...); err != nil {
		return nil, apperror.NewPersistence("select expenses", err)
	}
	return expenses, nil
}
