package purchase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/domain/documents/purchase"
	"tillbook/internal/infrastructure/storage/sqlite"
)

type env struct {
	products *sqlite.ProductRepo
	service  *purchase.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	txm := sqlite.NewTxManager(db)
	products := sqlite.NewProductRepo(txm)
	repo := sqlite.NewPurchaseRepo(txm)

	return &env{
		products: products,
		service:  purchase.NewService(repo, products, txm),
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

func line(productID int64, qty, price, extra float64) purchase.Line {
	subtotal := qty*price + extra
	return purchase.Line{
		ProductID:        productID,
		Quantity:         qty,
		BuyingPrice:      price,
		ExtraCharge:      extra,
		Subtotal:         subtotal,
		PurchaseUnitCost: subtotal / qty,
	}
}

func TestCreate_WeightedAverage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 6, 5)

	_, err := e.service.Create(ctx, &purchase.Purchase{
		TotalAmount: 70,
		Lines:       []purchase.Line{line(id, 10, 7, 0)},
	})
	require.NoError(t, err)

	st := e.stock(t, id)
	assert.InDelta(t, 16, st.Quantity, 1e-9)
	assert.InDelta(t, 6.25, st.AverageCost, 1e-9)
}

func TestCreate_ExtraChargeSpreadsIntoCost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 0, 0)

	_, err := e.service.Create(ctx, &purchase.Purchase{
		TotalAmount: 110,
		Lines:       []purchase.Line{line(id, 10, 10, 10)},
	})
	require.NoError(t, err)

	st := e.stock(t, id)
	assert.InDelta(t, 10, st.Quantity, 1e-9)
	assert.InDelta(t, 11, st.AverageCost, 1e-9)
}

func TestCreate_MultipleLinesApplySequentially(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a := e.createProduct(t, 0, 0)
	b := e.createProduct(t, 5, 2)

	_, err := e.service.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{
			line(a, 4, 3, 0),
			line(b, 5, 4, 0),
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 3, e.stock(t, a).AverageCost, 1e-9)
	assert.InDelta(t, 3, e.stock(t, b).AverageCost, 1e-9)
	assert.InDelta(t, 10, e.stock(t, b).Quantity, 1e-9)
}

func TestUpdate_ReversesThenReapplies(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 6, 5)
	docID, err := e.service.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{line(id, 10, 7, 0)},
	})
	require.NoError(t, err)

	// Revising to the identical line lands on the same position.
	err = e.service.Update(ctx, docID, &purchase.Purchase{
		Lines: []purchase.Line{line(id, 10, 7, 0)},
	})
	require.NoError(t, err)

	st := e.stock(t, id)
	assert.InDelta(t, 16, st.Quantity, 1e-9)
	assert.InDelta(t, 6.25, st.AverageCost, 1e-9)

	// Revising to a different quantity recomputes from the pre-document state.
	err = e.service.Update(ctx, docID, &purchase.Purchase{
		Lines: []purchase.Line{line(id, 4, 7, 0)},
	})
	require.NoError(t, err)

	st = e.stock(t, id)
	assert.InDelta(t, 10, st.Quantity, 1e-9)
	assert.InDelta(t, (6*5+4*7)/10.0, st.AverageCost, 1e-9)
}

func TestUpdate_UnknownDocument(t *testing.T) {
	e := newEnv(t)
	id := e.createProduct(t, 0, 0)

	err := e.service.Update(context.Background(), 999, &purchase.Purchase{
		Lines: []purchase.Line{line(id, 1, 1, 0)},
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_ReversesQuantityOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 6, 5)
	docID, err := e.service.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{line(id, 10, 7, 0)},
	})
	require.NoError(t, err)

	require.NoError(t, e.service.Delete(ctx, docID))

	// Quantity returns to the prior level; the blended cost stays.
	st := e.stock(t, id)
	assert.InDelta(t, 6, st.Quantity, 1e-9)
	assert.InDelta(t, 6.25, st.AverageCost, 1e-9)

	_, err = e.service.GetByID(ctx, docID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_AtomicOnBadLine(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.createProduct(t, 6, 5)

	// Second line references a missing product; the whole document must
	// roll back, including the first line's stock effect.
	_, err := e.service.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{
			line(id, 10, 7, 0),
			line(12345, 1, 1, 0),
		},
	})
	assert.True(t, apperror.IsValidation(err))

	st := e.stock(t, id)
	assert.InDelta(t, 6, st.Quantity, 1e-9)
	assert.InDelta(t, 5, st.AverageCost, 1e-9)

	docs, err := e.service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestValidate_RejectsBadLines(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.service.Create(ctx, &purchase.Purchase{})
	assert.True(t, apperror.IsValidation(err))

	_, err = e.service.Create(ctx, &purchase.Purchase{
		Lines: []purchase.Line{{ProductID: 1, Quantity: 0}},
	})
	assert.True(t, apperror.IsValidation(err))
}
