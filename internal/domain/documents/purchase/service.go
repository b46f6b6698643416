package purchase

import (
	"context"
	"fmt"

	"tillbook/internal/core/apperror"
	"tillbook/internal/core/tx"
	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/domain/ledger/avgcost"
	"tillbook/pkg/logger"
)

// Service provides the inbound stock ledger operations. Every state-changing
// method is one atomic transaction spanning the header row, its lines, and
// the affected product rows; partial application is never observable.
type Service struct {
	repo      Repository
	products  product.Repository
	txManager tx.Manager
}

// NewService creates a new purchase service.
func NewService(repo Repository, products product.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txManager,
	}
}

// Create records a purchase: inserts the header and lines, and folds each
// line into its product's stock quantity and weighted-average cost.
func (s *Service) Create(ctx context.Context, doc *Purchase) (int64, error) {
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

	logger.Info(ctx, "purchase recorded", "id", id, "lines", len(doc.Lines))
	return id, nil
}

// Update revises a purchase with a reverse-then-reapply strategy: every
// existing line's stock/cost effect is undone, the lines are replaced, and
// the new lines are applied against the reversed state. The end state equals
// delete-plus-recreate without a window where the header is absent.
func (s *Service) Update(ctx context.Context, id int64, doc *Purchase) error {
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
			if err := s.reverseLine(ctx, old); err != nil {
				return err
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

	logger.Info(ctx, "purchase revised", "id", id, "lines", len(doc.Lines))
	return nil
}

// Delete removes a purchase and subtracts its line quantities from stock.
// Average cost is left untouched: deletion is treated as a rare, conservative
// correction and does not re-derive cost the way Update does.
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
			if err := s.products.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
				return fmt.Errorf("revert stock for product %d: %w", line.ProductID, err)
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

	logger.Info(ctx, "purchase deleted", "id", id)
	return nil
}

// GetByID returns a purchase with its lines.
func (s *Service) GetByID(ctx context.Context, id int64) (*Purchase, error) {
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

// List returns all purchase headers, newest first.
func (s *Service) List(ctx context.Context) ([]Purchase, error) {
	return s.repo.List(ctx)
}

// GetLineDetails returns a purchase's lines joined with product names.
func (s *Service) GetLineDetails(ctx context.Context, id int64) ([]LineDetail, error) {
	return s.repo.GetLineDetails(ctx, id)
}

// applyLine inserts a line and folds it into the product's stock position.
// The product is resolved before the line write so a dangling reference is
// rejected as bad input rather than a store failure.
func (s *Service) applyLine(ctx context.Context, purchaseID int64, line Line) error {
	st, err := s.products.GetStock(ctx, line.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("line references a missing product").
				WithDetail("productId", line.ProductID)
		}
		return err
	}

	if err := s.repo.InsertLine(ctx, purchaseID, line); err != nil {
		return fmt.Errorf("insert line: %w", err)
	}

	qty, cost := avgcost.Apply(
		st.Quantity, st.AverageCost,
		line.Quantity, line.BuyingPrice, line.ExtraCharge,
		line.PurchaseUnitCost,
	)

	if err := s.products.UpdateStock(ctx, line.ProductID, product.Stock{Quantity: qty, AverageCost: cost}); err != nil {
		return fmt.Errorf("update stock for product %d: %w", line.ProductID, err)
	}
	return nil
}

// reverseLine undoes a previously applied line's stock/cost effect.
func (s *Service) reverseLine(ctx context.Context, line Line) error {
	st, err := s.products.GetStock(ctx, line.ProductID)
	if err != nil {
		return err
	}

	qty, cost := avgcost.Reverse(st.Quantity, st.AverageCost, line.Quantity, line.BuyingPrice)

	if err := s.products.UpdateStock(ctx, line.ProductID, product.Stock{Quantity: qty, AverageCost: cost}); err != nil {
		return fmt.Errorf("revert stock for product %d: %w", line.ProductID, err)
	}
	return nil
}
