package product

import "context"

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) (int64, error)
	Update(ctx context.Context, p *Product) error
	SoftDelete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	// List returns non-deleted products with their first image path attached.
	List(ctx context.Context) ([]Product, error)

	// GetStock reads the current stock position for a product.
	// Returns a NOT_FOUND error when the product does not exist.
	GetStock(ctx context.Context, id int64) (Stock, error)
	// UpdateStock writes back a recomputed stock position.
	UpdateStock(ctx context.Context, id int64, s Stock) error
	// AdjustStock shifts stock quantity by delta, leaving cost untouched.
	AdjustStock(ctx context.Context, id int64, delta float64) error

	// ReplaceImages replaces the full image set for a product.
	ReplaceImages(ctx context.Context, productID int64, paths []string) error
	GetImages(ctx context.Context, productID int64) ([]string, error)
}
