package order

import (
	"context"
	"fmt"

	"tillbook/internal/core/apperror"
	"tillbook/internal/core/tx"
	"tillbook/internal/domain/catalog/product"
	"tillbook/pkg/logger"
)

// Service provides the outbound stock ledger operations. Sales decrement
// stock and never touch the product's average cost; the cost snapshot is
// read and written inside the same transaction as the stock decrement so a
// concurrent purchase cannot slip between them.
type Service struct {
	repo      Repository
	products  product.Repository
	txManager tx.Manager
}

// NewService creates a new order service.
func NewService(repo Repository, products product.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txManager,
	}
}

// Create records a sale: inserts the header, then per line snapshots the
// product's current average cost and decrements its stock.
func (s *Service) Create(ctx context.Context, doc *Order) (int64, error) {
	if err := doc.Validate(ctx); err != nil {
		return 0, err
	}

	var id int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.repo.InsertHeader(ctx, doc)
		if err != nil {
			return fmt.Errorf("insert header: %w", err)
		}

		for _, line := range doc.Lines {
			if err := s.applyLine(ctx, id, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "sale recorded", "id", id, "lines", len(doc.Lines))
	return id, nil
}

// Update revises a sale: old line quantities are returned to stock, the
// lines are replaced, and the new lines re-snapshot the current cost.
func (s *Service) Update(ctx context.Context, id int64, doc *Order) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetHeader(ctx, id); err != nil {
			return err
		}

		oldLines, err := s.repo.GetLines(ctx, id)
		if err != nil {
			return fmt.Errorf("read existing lines: %w", err)
		}

		for _, old := range oldLines {
			if err := s.products.AdjustStock(ctx, old.ProductID, old.Quantity); err != nil {
				return fmt.Errorf("restore stock for product %d: %w", old.ProductID, err)
			}
		}

		if err := s.repo.DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		if err := s.repo.UpdateHeader(ctx, id, doc); err != nil {
			return fmt.Errorf("update header: %w", err)
		}

		for _, line := range doc.Lines {
			if err := s.applyLine(ctx, id, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale revised", "id", id, "lines", len(doc.Lines))
	return nil
}

// Delete removes a sale and returns its line quantities to stock.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetHeader(ctx, id); err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, id)
		if err != nil {
			return fmt.Errorf("read lines: %w", err)
		}

		for _, line := range lines {
			if err := s.products.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("restore stock for product %d: %w", line.ProductID, err)
			}
		}

		if err := s.repo.DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		if err := s.repo.DeleteHeader(ctx, id); err != nil {
			return fmt.Errorf("delete header: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale deleted", "id", id)
	return nil
}

// GetByID returns an order with its lines.
func (s *Service) GetByID(ctx context.Context, id int64) (*Order, error) {
	doc, err := s.repo.GetHeader(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// List returns all order headers, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// GetLineDetails returns an order's lines joined with product names.
func (s *Service) GetLineDetails(ctx context.Context, id int64) ([]LineDetail, error) {
	return s.repo.GetLineDetails(ctx, id)
}

// applyLine snapshots current cost, inserts the line, and decrements stock.
// The incoming line's snapshot field is ignored; the store is authoritative.
func (s *Service) applyLine(ctx context.Context, orderID int64, line Line) error {
	st, err := s.products.GetStock(ctx, line.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("line references a missing product").
				WithDetail("productId", line.ProductID)
		}
		return err
	}

	line.BuyingPriceSnapshot = st.AverageCost
	if err := s.repo.InsertLine(ctx, orderID, line); err != nil {
		return fmt.Errorf("insert line: %w", err)
	}

	if err := s.products.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
		return fmt.Errorf("decrement stock for product %d: %w", line.ProductID, err)
	}
	return nil
}
