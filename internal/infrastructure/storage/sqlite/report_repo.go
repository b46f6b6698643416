package sqlite

import (
	"context"

	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/reports"
)

// Compile-time check that ReportRepo implements reports.Repository.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository. Report queries are aggregates
// over several tables, so they are written as plain SQL rather than built.
type ReportRepo struct {
	tx *TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(tx *TxManager) *ReportRepo {
	return &ReportRepo{tx: tx}
}

// GetDashboardStats computes all dashboard aggregates in one pass per table.
// Calendar windows compare against local time; profit per order line is
// (selling price - frozen cost snapshot) * quantity.
func (r *ReportRepo) GetDashboardStats(ctx context.Context) (*reports.DashboardStats, error) {
	const query = `
SELECT
	(SELECT COALESCE(SUM(grand_total), 0) FROM orders
		WHERE date(order_date) = date('now', 'localtime'))                         AS sales_today,
	(SELECT COALESCE(SUM(grand_total), 0) FROM orders
		WHERE strftime('%Y-%m', order_date) = strftime('%Y-%m', 'now', 'localtime')) AS sales_month,
	(SELECT COALESCE(SUM(grand_total), 0) FROM orders
		WHERE strftime('%Y', order_date) = strftime('%Y', 'now', 'localtime'))     AS sales_year,
	(SELECT COALESCE(SUM(grand_total), 0) FROM orders)                             AS total_sales,

	(SELECT COALESCE(SUM(total_amount), 0) FROM purchases
		WHERE date(purchase_date) = date('now', 'localtime'))                      AS purchases_today,
	(SELECT COALESCE(SUM(total_amount), 0) FROM purchases
		WHERE strftime('%Y-%m', purchase_date) = strftime('%Y-%m', 'now', 'localtime')) AS purchases_month,
	(SELECT COALESCE(SUM(total_amount), 0) FROM purchases
		WHERE strftime('%Y', purchase_date) = strftime('%Y', 'now', 'localtime'))  AS purchases_year,
	(SELECT COALESCE(SUM(total_amount), 0) FROM purchases)                         AS total_purchases,

	(SELECT COALESCE(SUM((oi.selling_price - COALESCE(oi.buying_price_snapshot, 0)) * oi.quantity), 0)
		FROM order_items oi JOIN orders o ON o.order_id = oi.order_id
		WHERE date(o.order_date) = date('now', 'localtime'))                       AS profit_today,
	(SELECT COALESCE(SUM((oi.selling_price - COALESCE(oi.buying_price_snapshot, 0)) * oi.quantity), 0)
		FROM order_items oi JOIN orders o ON o.order_id = oi.order_id
		WHERE strftime('%Y-%m', o.order_date) = strftime('%Y-%m', 'now', 'localtime')) AS profit_month,
	(SELECT COALESCE(SUM((oi.selling_price - COALESCE(oi.buying_price_snapshot, 0)) * oi.quantity), 0)
		FROM order_items oi JOIN orders o ON o.order_id = oi.order_id
		WHERE strftime('%Y', o.order_date) = strftime('%Y', 'now', 'localtime'))   AS profit_year,
	(SELECT COALESCE(SUM((oi.selling_price - COALESCE(oi.buying_price_snapshot, 0)) * oi.quantity), 0)
		FROM order_items oi)                                                       AS total_profit,

	(SELECT COALESCE(SUM(stock_quantity * buying_price), 0) FROM products
		WHERE is_deleted = 0)                                                      AS inventory_value,
	(SELECT COUNT(*) FROM products
		WHERE is_deleted = 0 AND stock_quantity <= ?)                              AS low_stock_count,
	(SELECT COUNT(*) FROM orders)                                                  AS order_count,
	(SELECT COUNT(*) FROM products WHERE is_deleted = 0)                           AS product_count`

	var stats reports.DashboardStats
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &stats, query, reports.LowStockThreshold); err != nil {
		return nil, apperror.NewPersistence("select dashboard stats", err)
	}
	return &stats, nil
}

// GetSalesReport returns per-order totals and profit for an inclusive date
// range, newest first.
func (r *ReportRepo) GetSalesReport(ctx context.Context, startDate, endDate string) ([]reports.SalesReportItem, error) {
	const query = `
SELECT
	o.order_id,
	o.order_date,
	o.customer_name,
	COALESCE(o.grand_total, 0) AS grand_total,
	COALESCE(o.discount, 0)    AS discount,
	COUNT(oi.id)               AS items_count,
	COALESCE(SUM((oi.selling_price - COALESCE(oi.buying_price_snapshot, 0)) * oi.quantity), 0) AS profit
FROM orders o
LEFT JOIN order_items oi ON oi.order_id = o.order_id
WHERE date(o.order_date) BETWEEN date(?) AND date(?)
GROUP BY o.order_id
ORDER BY o.order_date DESC, o.order_id DESC`

	var items []reports.SalesReportItem
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &items, query, startDate, endDate); err != nil {
		return nil, apperror.NewPersistence("select sales report", err)
	}
	return items, nil
}

// GetInventoryReport returns per-product stock positions ordered ascending by
// stock, so products closest to running out come first.
func (r *ReportRepo) GetInventoryReport(ctx context.Context) ([]reports.InventoryReportItem, error) {
	const query = `
SELECT
	id,
	product_name,
	category,
	stock_quantity,
	unit,
	buying_price,
	default_selling_price,
	stock_quantity * buying_price AS stock_value
FROM products
WHERE is_deleted = 0
ORDER BY stock_quantity ASC, id ASC`

	var items []reports.InventoryReportItem
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &items, query); err != nil {
		return nil, apperror.NewPersistence("select inventory report", err)
	}
	return items, nil
}

// GetStockTimeline merges purchase lines (IN) and order lines (OUT) for one
// product into a single feed, newest first. Same-date entries show IN before
// OUT, then newer rows first.
func (r *ReportRepo) GetStockTimeline(ctx context.Context, productID int64) ([]reports.StockMovement, error) {
	const query = `
SELECT date, movement_type, entity_name, reference, quantity, price FROM (
	SELECT
		p.purchase_date        AS date,
		'IN'                   AS movement_type,
		p.supplier_name        AS entity_name,
		p.invoice_number       AS reference,
		pi.quantity            AS quantity,
		pi.buying_price        AS price,
		pi.id                  AS row_id,
		0                      AS direction
	FROM purchase_items pi
	JOIN purchases p ON p.purchase_id = pi.purchase_id
	WHERE pi.product_id = ?
	UNION ALL
	SELECT
		o.order_date           AS date,
		'OUT'                  AS movement_type,
		o.customer_name        AS entity_name,
		'Order #' || o.order_id AS reference,
		oi.quantity            AS quantity,
		oi.selling_price       AS price,
		oi.id                  AS row_id,
		1                      AS direction
	FROM order_items oi
	JOIN orders o ON o.order_id = oi.order_id
	WHERE oi.product_id = ?
)
ORDER BY date DESC, direction ASC, row_id DESC`

	var movements []reports.StockMovement
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &movements, query, productID, productID); err != nil {
		return nil, apperror.NewPersistence("select stock timeline", err)
	}
	return movements, nil
}

// GetPurchaseHistory returns the inbound lines for a product joined with
// their headers, newest first.
func (r *ReportRepo) GetPurchaseHistory(ctx context.Context, productID int64) ([]reports.PurchaseHistoryItem, error) {
	const query = `
SELECT
	p.purchase_date,
	p.supplier_name,
	p.invoice_number,
	pi.quantity,
	pi.buying_price,
	pi.extra_charge,
	pi.subtotal,
	pi.purchase_unit_cost
FROM purchase_items pi
JOIN purchases p ON p.purchase_id = pi.purchase_id
WHERE pi.product_id = ?
ORDER BY p.purchase_date DESC, pi.id DESC`

	var history []reports.PurchaseHistoryItem
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &history, query, productID); err != nil {
		return nil, apperror.NewPersistence("select purchase history", err)
	}
	return history, nil
}
