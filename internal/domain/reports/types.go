// Package reports provides read-only projections over the stock ledger.
// Projections hold no state of their own and must reflect ledger truth
// exactly; none of them mutate the store.
package reports

// LowStockThreshold is the stock level at or below which a product counts as
// low stock on the dashboard.
const LowStockThreshold = 5.0

// DashboardStats aggregates sale and purchase totals windowed by calendar
// date in local time. Profit subtracts cost of goods sold computed from the
// frozen per-line cost snapshots, not from current product cost.
type DashboardStats struct {
	SalesToday float64 `db:"sales_today" json:"salesToday"`
	SalesMonth float64 `db:"sales_month" json:"salesMonth"`
	SalesYear  float64 `db:"sales_year" json:"salesYear"`
	TotalSales float64 `db:"total_sales" json:"totalSales"`

	PurchasesToday float64 `db:"purchases_today" json:"purchasesToday"`
	PurchasesMonth float64 `db:"purchases_month" json:"purchasesMonth"`
	PurchasesYear  float64 `db:"purchases_year" json:"purchasesYear"`
	TotalPurchases float64 `db:"total_purchases" json:"totalPurchases"`

	ProfitToday float64 `db:"profit_today" json:"profitToday"`
	ProfitMonth float64 `db:"profit_month" json:"profitMonth"`
	ProfitYear  float64 `db:"profit_year" json:"profitYear"`
	TotalProfit float64 `db:"total_profit" json:"totalProfit"`

	InventoryValue float64 `db:"inventory_value" json:"inventoryValue"`
	LowStockCount  int64   `db:"low_stock_count" json:"lowStockCount"`
	OrderCount     int64   `db:"order_count" json:"orderCount"`
	ProductCount   int64   `db:"product_count" json:"productCount"`
}

// SalesReportItem is one order in the date-ranged sales report.
type SalesReportItem struct {
	OrderID    int64   `db:"order_id" json:"orderId"`
	Date       string  `db:"order_date" json:"date"`
	Customer   *string `db:"customer_name" json:"customer,omitempty"`
	Total      float64 `db:"grand_total" json:"total"`
	Discount   float64 `db:"discount" json:"discount"`
	ItemsCount int64   `db:"items_count" json:"itemsCount"`
	Profit     float64 `db:"profit" json:"profit"`
}

// InventoryReportItem is one product's stock position, ordered ascending by
// stock so near-out-of-stock items surface first.
type InventoryReportItem struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"product_name" json:"name"`
	Category     *string `db:"category" json:"category,omitempty"`
	Stock        float64 `db:"stock_quantity" json:"stock"`
	Unit         *string `db:"unit" json:"unit,omitempty"`
	CostPrice    float64 `db:"buying_price" json:"costPrice"`
	SellingPrice float64 `db:"default_selling_price" json:"sellingPrice"`
	StockValue   float64 `db:"stock_value" json:"stockValue"`
}

// Movement directions in the stock timeline.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// StockMovement is one entry in a product's merged movement timeline.
// EntityName is the supplier (IN) or customer (OUT); Reference is the
// invoice number (IN) or order id (OUT).
type StockMovement struct {
	Date         string  `db:"date" json:"date"`
	MovementType string  `db:"movement_type" json:"movementType"`
	EntityName   *string `db:"entity_name" json:"entityName,omitempty"`
	Reference    *string `db:"reference" json:"reference,omitempty"`
	Quantity     float64 `db:"quantity" json:"quantity"`
	Price        float64 `db:"price" json:"price"`
}

// PurchaseHistoryItem is one inbound line for a product, joined with its
// purchase header.
type PurchaseHistoryItem struct {
	Date             string  `db:"purchase_date" json:"date"`
	SupplierName     *string `db:"supplier_name" json:"supplierName,omitempty"`
	InvoiceNumber    *string `db:"invoice_number" json:"invoiceNumber,omitempty"`
	Quantity         float64 `db:"quantity" json:"quantity"`
	BuyingPrice      float64 `db:"buying_price" json:"buyingPrice"`
	ExtraCharge      float64 `db:"extra_charge" json:"extraCharge"`
	Subtotal         float64 `db:"subtotal" json:"subtotal"`
	PurchaseUnitCost float64 `db:"purchase_unit_cost" json:"purchaseUnitCost"`
}
