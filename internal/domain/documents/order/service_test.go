package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/domain/documents/order"
	"tillbook/internal/domain/documents/purchase"
	"tillbook/internal/infrastructure/storage/sqlite"
)

type env struct {
	products  *sqlite.ProductRepo
	orders    *sqlite.OrderRepo
	service   *order.Service
	purchases *purchase.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	txm := sqlite.NewTxManager(db)
	products := sqlite.NewProductRepo(txm)
	orders := sqlite.NewOrderRepo(txm)
	purchases := sqlite.NewPurchaseRepo(txm)

	return &env{
		products:  products,
		orders:    orders,
		service:   order.NewService(orders, products, txm),
		purchases: purchase.NewService(purchases, products, txm),
	}
}

func (e *env) createProduct(t *testing.T, stock, cost float64) int64 {
	t.Helper()
	id, err := e.products.Create(context.Background(), &product.Product{
		ProductName:         "widget",
		DefaultSellingPrice: 10,
		StockQuantity:       stock,
		BuyingPrice:         cost,
	})
	require.NoError(t, err)
	return id
}

func (e *env) stock(t *testing.T, id int64) product.Stock {
	t.Helper()
	st, err := e.products.GetStock(context.Background(), id)
	require.NoError(t, err)
	return st
}

func saleDoc(productID int64, qty, price float64) *order.Order {
	return &order.Order{
		OrderType:  "local",
		Subtotal:   qty * price,
		GrandTotal: qty * price,
		Lines: []order.Line{{
			ProductID:    productID,
			Quantity:     qty,
			SellingPrice: price,
			Subtotal:     qty * price,
		}},
	}
}

func TestCreate_DecrementsStockLeavesCost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 10, 5)

	_, err := e.service.Create(ctx, saleDoc(id, 4, 8))
	require.NoError(t, err)

	st := e.stock(t, id)
	assert.InDelta(t, 6, st.Quantity, 1e-9)
	assert.InDelta(t, 5, st.AverageCost, 1e-9)
}

func TestCreate_SnapshotsCurrentCost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 10, 5)

	docID, err := e.service.Create(ctx, saleDoc(id, 4, 8))
	require.NoError(t, err)

	lines, err := e.orders.GetLines(ctx, docID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, 5, lines[0].BuyingPriceSnapshot, 1e-9)
}

// A purchase after a sale reblends the live cost but must not touch the
// cost frozen on the earlier sale line.
func TestSnapshot_ImmuneToLaterCostChanges(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 0, 0)

	_, err := e.purchases.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{{
			ProductID: id, Quantity: 10, BuyingPrice: 5,
			Subtotal: 50, PurchaseUnitCost: 5,
		}},
	})
	require.NoError(t, err)

	saleID, err := e.service.Create(ctx, saleDoc(id, 4, 8))
	require.NoError(t, err)

	_, err = e.purchases.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{{
			ProductID: id, Quantity: 10, BuyingPrice: 7,
			Subtotal: 70, PurchaseUnitCost: 7,
		}},
	})
	require.NoError(t, err)

	st := e.stock(t, id)
	assert.InDelta(t, 16, st.Quantity, 1e-9)
	assert.InDelta(t, (6*5+10*7)/16.0, st.AverageCost, 1e-9)

	lines, err := e.orders.GetLines(ctx, saleID)
	require.NoError(t, err)
	assert.InDelta(t, 5, lines[0].BuyingPriceSnapshot, 1e-9)
}

func TestCreate_OversellAllowed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 2, 5)

	_, err := e.service.Create(ctx, saleDoc(id, 5, 8))
	require.NoError(t, err)

	st := e.stock(t, id)
	assert.InDelta(t, -3, st.Quantity, 1e-9)
}

func TestUpdate_RestoresOldQuantitiesAndResnapshots(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 10, 5)

	docID, err := e.service.Create(ctx, saleDoc(id, 4, 8))
	require.NoError(t, err)

	// Cost moves between the sale and its revision.
	_, err = e.purchases.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{{
			ProductID: id, Quantity: 6, BuyingPrice: 11,
			Subtotal: 66, PurchaseUnitCost: 11,
		}},
	})
	require.NoError(t, err)

	err = e.service.Update(ctx, docID, saleDoc(id, 2, 8))
	require.NoError(t, err)

	// 10 - 4 + 6 = 12 on hand before revision; revision restores 4 and
	// takes 2.
	st := e.stock(t, id)
	assert.InDelta(t, 14, st.Quantity, 1e-9)

	lines, err := e.orders.GetLines(ctx, docID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, st.AverageCost, lines[0].BuyingPriceSnapshot, 1e-9)
}

func TestDelete_RestoresStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 10, 5)
	docID, err := e.service.Create(ctx, saleDoc(id, 4, 8))
	require.NoError(t, err)

	require.NoError(t, e.service.Delete(ctx, docID))

	st := e.stock(t, id)
	assert.InDelta(t, 10, st.Quantity, 1e-9)
	assert.InDelta(t, 5, st.AverageCost, 1e-9)

	_, err = e.service.GetByID(ctx, docID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestValidate_RejectsMissingType(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Create(context.Background(), &order.Order{
		Lines: []order.Line{{ProductID: 1, Quantity: 1}},
	})
	assert.True(t, apperror.IsValidation(err))
}
