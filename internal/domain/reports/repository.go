package reports

import "context"

// Repository defines the read-only queries backing the projections.
type Repository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	// GetSalesReport takes inclusive calendar dates in YYYY-MM-DD form.
	GetSalesReport(ctx context.Context, startDate, endDate string) ([]SalesReportItem, error)
	GetInventoryReport(ctx context.Context) ([]InventoryReportItem, error)
	GetStockTimeline(ctx context.Context, productID int64) ([]StockMovement, error)
	GetPurchaseHistory(ctx context.Context, productID int64) ([]PurchaseHistoryItem, error)
}
