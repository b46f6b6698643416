package order

import "context"

// Repository defines persistence operations for sale documents.
// Implementations must run against the transaction carried in ctx when one
// is present.
type Repository interface {
	InsertHeader(ctx context.Context, o *Order) (int64, error)
	UpdateHeader(ctx context.Context, id int64, o *Order) error
	DeleteHeader(ctx context.Context, id int64) error
	// GetHeader returns a NOT_FOUND error for unknown ids.
	GetHeader(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]Order, error)

	InsertLine(ctx context.Context, orderID int64, line Line) error
	GetLines(ctx context.Context, orderID int64) ([]Line, error)
	GetLineDetails(ctx context.Context, orderID int64) ([]LineDetail, error)
	DeleteLines(ctx context.Context, orderID int64) error
}
