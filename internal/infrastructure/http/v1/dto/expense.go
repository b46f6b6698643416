package dto

import "tillbook/internal/domain/expense"

// ExpenseRequest is the create/update payload for an expense.
type ExpenseRequest struct {
	ExpenseDate string  `json:"expenseDate"`
	Category    *string `json:"category"`
	Amount      float64 `json:"amount" binding:"required"`
	Notes       *string `json:"notes"`
}

// ToEntity converts the request to a domain expense.
func (r ExpenseRequest) ToEntity() *expense.Expense {
	return &expense.Expense{
		ExpenseDate: r.ExpenseDate,
		Category:    r.Category,
		Amount:      r.Amount,
		Notes:       r.Notes,
	}
}
