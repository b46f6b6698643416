package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/domain/documents/order"
	"tillbook/internal/domain/documents/purchase"
	"tillbook/internal/domain/reports"
	"tillbook/internal/infrastructure/storage/sqlite"
)

type reportEnv struct {
	products  *sqlite.ProductRepo
	purchases *sqlite.PurchaseRepo
	orders    *sqlite.OrderRepo
	reports   *sqlite.ReportRepo
}

func newReportEnv(t *testing.T) *reportEnv {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	txm := sqlite.NewTxManager(db)
	return &reportEnv{
		products:  sqlite.NewProductRepo(txm),
		purchases: sqlite.NewPurchaseRepo(txm),
		orders:    sqlite.NewOrderRepo(txm),
		reports:   sqlite.NewReportRepo(txm),
	}
}

func (e *reportEnv) addProduct(t *testing.T, name string, stock, cost, sell float64) int64 {
	t.Helper()
	id, err := e.products.Create(context.Background(), &product.Product{
		ProductName:         name,
		DefaultSellingPrice: sell,
		StockQuantity:       stock,
		BuyingPrice:         cost,
	})
	require.NoError(t, err)
	return id
}

func (e *reportEnv) addPurchase(t *testing.T, date string, productID int64, qty, price float64) int64 {
	t.Helper()
	ctx := context.Background()
	supplier := "Acme"
	id, err := e.purchases.InsertHeader(ctx, &purchase.Purchase{
		SupplierName: &supplier,
		PurchaseDate: date,
		TotalAmount:  qty * price,
	})
	require.NoError(t, err)
	require.NoError(t, e.purchases.InsertLine(ctx, id, purchase.Line{
		ProductID: productID, Quantity: qty, BuyingPrice: price,
		Subtotal: qty * price, PurchaseUnitCost: price,
	}))
	return id
}

func (e *reportEnv) addOrder(t *testing.T, date string, productID int64, qty, price, snapshot float64) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := e.orders.InsertHeader(ctx, &order.Order{
		OrderType:  "local",
		OrderDate:  date,
		Subtotal:   qty * price,
		GrandTotal: qty * price,
	})
	require.NoError(t, err)
	require.NoError(t, e.orders.InsertLine(ctx, id, order.Line{
		ProductID: productID, Quantity: qty, SellingPrice: price,
		Subtotal: qty * price, BuyingPriceSnapshot: snapshot,
	}))
	return id
}

func TestSalesReport_ProfitFromSnapshots(t *testing.T) {
	e := newReportEnv(t)
	ctx := context.Background()

	id := e.addProduct(t, "widget", 10, 5, 8)
	e.addOrder(t, "2025-03-10 12:00:00", id, 4, 8, 5)
	e.addOrder(t, "2025-03-11 09:00:00", id, 2, 8, 6)
	e.addOrder(t, "2025-04-01 09:00:00", id, 1, 8, 5) // outside range

	items, err := e.reports.GetSalesReport(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Newest first.
	assert.InDelta(t, (8-6)*2, items[0].Profit, 1e-9)
	assert.InDelta(t, (8-5)*4, items[1].Profit, 1e-9)
	assert.EqualValues(t, 1, items[0].ItemsCount)
}

func TestInventoryReport_LowestStockFirst(t *testing.T) {
	e := newReportEnv(t)

	e.addProduct(t, "plenty", 50, 2, 4)
	low := e.addProduct(t, "scarce", 1, 3, 6)
	gone := e.addProduct(t, "deleted", 0, 1, 2)
	require.NoError(t, e.products.SoftDelete(context.Background(), gone))

	items, err := e.reports.GetInventoryReport(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, low, items[0].ID)
	assert.InDelta(t, 1*3, items[0].StockValue, 1e-9)
	assert.Equal(t, "plenty", items[1].Name)
}

func TestStockTimeline_MergeAndOrdering(t *testing.T) {
	e := newReportEnv(t)
	ctx := context.Background()

	id := e.addProduct(t, "widget", 0, 0, 8)
	other := e.addProduct(t, "other", 0, 0, 8)

	e.addPurchase(t, "2025-03-10 08:00:00", id, 10, 5)
	e.addOrder(t, "2025-03-10 08:00:00", id, 4, 8, 5)
	e.addPurchase(t, "2025-03-12 08:00:00", id, 5, 6)
	e.addPurchase(t, "2025-03-11 08:00:00", other, 99, 1)

	movements, err := e.reports.GetStockTimeline(ctx, id)
	require.NoError(t, err)
	require.Len(t, movements, 3)

	// Newest date first; on equal dates IN sorts before OUT.
	assert.Equal(t, reports.MovementIn, movements[0].MovementType)
	assert.InDelta(t, 5, movements[0].Quantity, 1e-9)
	assert.Equal(t, reports.MovementIn, movements[1].MovementType)
	assert.Equal(t, reports.MovementOut, movements[2].MovementType)
	assert.InDelta(t, 8, movements[2].Price, 1e-9)
}

func TestPurchaseHistory_NewestFirst(t *testing.T) {
	e := newReportEnv(t)

	id := e.addProduct(t, "widget", 0, 0, 8)
	e.addPurchase(t, "2025-03-10 08:00:00", id, 10, 5)
	e.addPurchase(t, "2025-03-12 08:00:00", id, 5, 6)

	history, err := e.reports.GetPurchaseHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.InDelta(t, 6, history[0].BuyingPrice, 1e-9)
	assert.InDelta(t, 5, history[1].BuyingPrice, 1e-9)
}

func TestDashboardStats_TotalsAndCounts(t *testing.T) {
	e := newReportEnv(t)

	id := e.addProduct(t, "widget", 16, 6.25, 8)
	e.addProduct(t, "scarce", 2, 1, 2)
	e.addPurchase(t, "2025-03-10 08:00:00", id, 10, 5)
	e.addOrder(t, "2025-03-10 12:00:00", id, 4, 8, 5)

	stats, err := e.reports.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 32, stats.TotalSales, 1e-9)
	assert.InDelta(t, 50, stats.TotalPurchases, 1e-9)
	assert.InDelta(t, (8-5)*4, stats.TotalProfit, 1e-9)
	assert.InDelta(t, 16*6.25+2*1, stats.InventoryValue, 1e-9)
	assert.EqualValues(t, 1, stats.LowStockCount)
	assert.EqualValues(t, 1, stats.OrderCount)
	assert.EqualValues(t, 2, stats.ProductCount)
}
