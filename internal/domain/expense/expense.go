// Package expense provides operating expenses recorded outside the stock
// ledger. Expenses never touch stock or cost.
package expense

import (
	"context"
	"fmt"

	"tillbook/internal/core/apperror"
)

// Expense is one operating cost entry.
type Expense struct {
	ID          int64   `db:"id" json:"id"`
	ExpenseDate string  `db:"expense_date" json:"expenseDate,omitempty"`
	Category    *string `db:"category" json:"category,omitempty"`
	Amount      float64 `db:"amount" json:"amount"`
	Notes       *string `db:"notes" json:"notes,omitempty"`
	CreatedAt   string  `db:"created_at" json:"createdAt,omitempty"`
}

// Validate rejects malformed entries.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	return nil
}

// Repository defines persistence operations for expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) (int64, error)
	Update(ctx context.Context, id int64, e *Expense) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Expense, error)
	// List returns expenses newest first, optionally bounded by inclusive
	// calendar dates (YYYY-MM-DD); empty bounds are open.
	List(ctx context.Context, startDate, endDate string) ([]Expense, error)
}

// Service provides expense operations.
type Service struct {
	repo Repository
}

// NewService creates a new expense service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records an expense.
func (s *Service) Create(ctx context.Context, e *Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	return id, nil
}

// Update revises an expense.
func (s *Service) Update(ctx context.Context, id int64, e *Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, e)
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// GetByID returns one expense.
func (s *Service) GetByID(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns expenses newest first within the optional date range.
func (s *Service) List(ctx context.Context, startDate, endDate string) ([]Expense, error) {
	if startDate != "" && endDate != "" && startDate > endDate {
		return nil, apperror.NewValidation("startDate must not be after endDate")
	}
	return s.repo.List(ctx, startDate, endDate)
}
