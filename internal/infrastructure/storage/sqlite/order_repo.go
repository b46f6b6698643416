package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/documents/order"
)

const (
	ordersTable     = "orders"
	orderItemsTable = "order_items"
)

var orderColumns = []string{
	"order_id", "order_date", "order_type",
	"customer_name", "customer_phone", "customer_address",
	"subtotal", "extra_charge", "delivery_charge", "discount",
	"grand_total", "payment_method", "notes",
}

var orderLineColumns = []string{
	"id", "order_id", "product_id", "quantity",
	"selling_price", "subtotal", "buying_price_snapshot",
}

// Compile-time check that OrderRepo implements order.Repository.
var _ order.Repository = (*OrderRepo)(nil)

// OrderRepo implements order.Repository on the embedded store.
type OrderRepo struct {
	tx      *TxManager
	builder squirrel.StatementBuilderType
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(tx *TxManager) *OrderRepo {
	return &OrderRepo{
		tx:      tx,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// InsertHeader inserts an order header and returns its id. An empty order
// date falls back to the column default (now).
func (r *OrderRepo) InsertHeader(ctx context.Context, o *order.Order) (int64, error) {
	cols := map[string]any{
		"order_type":       o.OrderType,
		"customer_name":    o.CustomerName,
		"customer_phone":   o.CustomerPhone,
		"customer_address": o.CustomerAddress,
		"subtotal":         o.Subtotal,
		"extra_charge":     o.ExtraCharge,
		"delivery_charge":  o.DeliveryCharge,
		"discount":         o.Discount,
		"grand_total":      o.GrandTotal,
		"payment_method":   o.PaymentMethod,
		"notes":            o.Notes,
	}
	if o.OrderDate != "" {
		cols["order_date"] = o.OrderDate
	}

	query, args, err := r.builder.Insert(ordersTable).SetMap(cols).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperror.NewPersistence("insert order", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.NewPersistence("read insert id", err)
	}
	return id, nil
}

// UpdateHeader rewrites an order header in place.
func (r *OrderRepo) UpdateHeader(ctx context.Context, id int64, o *order.Order) error {
	cols := map[string]any{
		"order_type":       o.OrderType,
		"customer_name":    o.CustomerName,
		"customer_phone":   o.CustomerPhone,
		"customer_address": o.CustomerAddress,
		"subtotal":         o.Subtotal,
		"extra_charge":     o.ExtraCharge,
		"delivery_charge":  o.DeliveryCharge,
		"discount":         o.Discount,
		"grand_total":      o.GrandTotal,
		"payment_method":   o.PaymentMethod,
		"notes":            o.Notes,
	}
	if o.OrderDate != "" {
		cols["order_date"] = o.OrderDate
	}

	query, args, err := r.builder.Update(ordersTable).
		SetMap(cols).
		Where(squirrel.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("update order", err)
	}
	return requireAffected(res, "order", id)
}

// DeleteHeader removes an order header.
func (r *OrderRepo) DeleteHeader(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete(ordersTable).
		Where(squirrel.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("delete order", err)
	}
	return requireAffected(res, "order", id)
}

// GetHeader returns an order header by id.
func (r *OrderRepo) GetHeader(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := r.builder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o order.Order
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &o, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, apperror.NewNotFound("order", id)
		}
		return nil, apperror.NewPersistence("select order", err)
	}
	return &o, nil
}

// List returns all order headers, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]order.Order, error) {
	query, args, err := r.builder.Select(orderColumns...).
		From(ordersTable).
		OrderBy("order_date DESC", "order_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var orders []order.Order
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &orders, query, args...); err != nil {
		return nil, apperror.NewPersistence("select orders", err)
	}
	return orders, nil
}

// InsertLine inserts one order line with its frozen cost snapshot.
func (r *OrderRepo) InsertLine(ctx context.Context, orderID int64, line order.Line) error {
	query, args, err := r.builder.Insert(orderItemsTable).
		Columns(
			"order_id", "product_id", "quantity",
			"selling_price", "subtotal", "buying_price_snapshot",
		).
		Values(
			orderID, line.ProductID, line.Quantity,
			line.SellingPrice, line.Subtotal, line.BuyingPriceSnapshot,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewPersistence("insert order line", err)
	}
	return nil
}

// GetLines returns the lines of an order in insertion order.
func (r *OrderRepo) GetLines(ctx context.Context, orderID int64) ([]order.Line, error) {
	query, args, err := r.builder.Select(orderLineColumns...).
		From(orderItemsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []order.Line
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &lines, query, args...); err != nil {
		return nil, apperror.NewPersistence("select order lines", err)
	}
	return lines, nil
}

// GetLineDetails returns lines joined with product names.
func (r *OrderRepo) GetLineDetails(ctx context.Context, orderID int64) ([]order.LineDetail, error) {
	cols := make([]string, 0, len(orderLineColumns)+1)
	for _, c := range orderLineColumns {
		cols = append(cols, "oi."+c)
	}
	cols = append(cols, "p.product_name")

	query, args, err := r.builder.Select(cols...).
		From(orderItemsTable + " oi").
		Join(productsTable + " p ON p.id = oi.product_id").
		Where(squirrel.Eq{"oi.order_id": orderID}).
		OrderBy("oi.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var details []order.LineDetail
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &details, query, args...); err != nil {
		return nil, apperror.NewPersistence("select order line details", err)
	}
	return details, nil
}

// DeleteLines removes all lines of an order.
func (r *OrderRepo) DeleteLines(ctx context.Context, orderID int64) error {
	query, args, err := r.builder.Delete(orderItemsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewPersistence("delete order lines", err)
	}
	return nil
}
