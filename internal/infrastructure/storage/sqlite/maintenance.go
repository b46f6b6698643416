package sqlite

import (
	"context"
	"fmt"

	"tillbook/pkg/logger"
)

// CleanupScope selects which data sets a cleanup wipes. Products implies the
// full document history, since lines reference products.
type CleanupScope struct {
	Sales     bool `json:"sales"`
	Purchases bool `json:"purchases"`
	Products  bool `json:"products"`
	Logs      bool `json:"logs"`
	Expenses  bool `json:"expenses"`
}

// Maintenance performs destructive store-wide operations. Users and settings
// are never touched.
type Maintenance struct {
	tx *TxManager
}

// NewMaintenance creates a new maintenance helper.
func NewMaintenance(tx *TxManager) *Maintenance {
	return &Maintenance{tx: tx}
}

// Cleanup wipes the selected data sets in one transaction.
func (m *Maintenance) Cleanup(ctx context.Context, scope CleanupScope) error {
	var stmts []string

	if scope.Products {
		// Clearing products takes all history referencing them with it.
		stmts = append(stmts,
			"DELETE FROM product_images",
			"DELETE FROM order_items",
			"DELETE FROM orders",
			"DELETE FROM purchase_items",
			"DELETE FROM purchases",
			"DELETE FROM products",
		)
	} else {
		if scope.Sales {
			stmts = append(stmts, "DELETE FROM order_items", "DELETE FROM orders")
		}
		if scope.Purchases {
			stmts = append(stmts, "DELETE FROM purchase_items", "DELETE FROM purchases")
		}
	}
	if scope.Expenses {
		stmts = append(stmts, "DELETE FROM expenses")
	}
	if scope.Logs {
		stmts = append(stmts, "DELETE FROM activity_logs")
	}
	if len(stmts) == 0 {
		return nil
	}

	err := m.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		q := m.tx.GetQuerier(ctx)
		for _, stmt := range stmts {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", stmt, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	logger.Warn(ctx, "database cleanup performed",
		"sales", scope.Sales, "purchases", scope.Purchases,
		"products", scope.Products, "logs", scope.Logs, "expenses", scope.Expenses)
	return nil
}
