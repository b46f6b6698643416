package purchase

import "context"

// Repository defines persistence operations for purchase documents.
// Implementations must run against the transaction carried in ctx when one
// is present.
type Repository interface {
	InsertHeader(ctx context.Context, p *Purchase) (int64, error)
	UpdateHeader(ctx context.Context, id int64, p *Purchase) error
	DeleteHeader(ctx context.Context, id int64) error
	// GetHeader returns a NOT_FOUND error for unknown ids.
	GetHeader(ctx context.Context, id int64) (*Purchase, error)
	List(ctx context.Context) ([]Purchase, error)

	InsertLine(ctx context.Context, purchaseID int64, line Line) error
	GetLines(ctx context.Context, purchaseID int64) ([]Line, error)
	GetLineDetails(ctx context.Context, purchaseID int64) ([]LineDetail, error)
	DeleteLines(ctx context.Context, purchaseID int64) error
}
