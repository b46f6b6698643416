package product

import (
	"context"
	"fmt"

	"tillbook/internal/core/tx"
	"tillbook/pkg/logger"
)

// ImageStore copies externally supplied image files into managed storage and
// returns the stored paths. Paths already under managed storage pass through
// unchanged.
type ImageStore interface {
	SaveAll(paths []string) ([]string, error)
}

// Service provides catalog operations for products.
type Service struct {
	repo      Repository
	txManager tx.Manager
	images    ImageStore
}

// NewService creates a new product service.
func NewService(repo Repository, txManager tx.Manager, images ImageStore) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		images:    images,
	}
}

// Create inserts a product and its image set atomically.
func (s *Service) Create(ctx context.Context, p *Product, imagePaths []string) (int64, error) {
	if err := p.Validate(ctx); err != nil {
		return 0, err
	}

	stored, err := s.saveImages(imagePaths)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		id, err = s.repo.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if err := s.repo.ReplaceImages(ctx, id, stored); err != nil {
			return fmt.Errorf("save images: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "product created", "id", id, "name", p.ProductName)
	return id, nil
}

// Update rewrites a product's fields and replaces its image set wholesale.
// Callers send the complete image list on every update.
func (s *Service) Update(ctx context.Context, p *Product, imagePaths []string) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	stored, err := s.saveImages(imagePaths)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if err := s.repo.ReplaceImages(ctx, p.ID, stored); err != nil {
			return fmt.Errorf("replace images: %w", err)
		}
		return nil
	})
}

// Delete marks a product deleted. History referencing it stays intact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// GetByID returns a product with all image paths.
func (s *Service) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.repo.GetImages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get images: %w", err)
	}
	p.Images = images
	return p, nil
}

// List returns all non-deleted products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// GetImages returns all image paths for a product.
func (s *Service) GetImages(ctx context.Context, productID int64) ([]string, error) {
	return s.repo.GetImages(ctx, productID)
}

func (s *Service) saveImages(paths []string) ([]string, error) {
	if s.images == nil || len(paths) == 0 {
		return paths, nil
	}
	stored, err := s.images.SaveAll(paths)
	if err != nil {
		return nil, fmt.Errorf("store images: %w", err)
	}
	return stored, nil
}
