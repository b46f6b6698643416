// Package order provides the sale document: the outbound side of the stock
// ledger. Each line freezes the product's average cost at the moment of sale
// into an immutable snapshot used for historical profit calculation.
package order

import (
	"context"

	"tillbook/internal/core/apperror"
)

// Order is a sale document header.
type Order struct {
	OrderID         int64   `db:"order_id" json:"orderId"`
	OrderDate       string  `db:"order_date" json:"orderDate,omitempty"`
	OrderType       string  `db:"order_type" json:"orderType"` // local / online
	CustomerName    *string `db:"customer_name" json:"customerName,omitempty"`
	CustomerPhone   *string `db:"customer_phone" json:"customerPhone,omitempty"`
	CustomerAddress *string `db:"customer_address" json:"customerAddress,omitempty"`
	Subtotal        float64 `db:"subtotal" json:"subtotal"`
	ExtraCharge     float64 `db:"extra_charge" json:"extraCharge"`
	DeliveryCharge  float64 `db:"delivery_charge" json:"deliveryCharge"`
	Discount        float64 `db:"discount" json:"discount"`
	GrandTotal      float64 `db:"grand_total" json:"grandTotal"`
	PaymentMethod   *string `db:"payment_method" json:"paymentMethod,omitempty"`
	Notes           *string `db:"notes" json:"notes,omitempty"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one sold product on an order. BuyingPriceSnapshot is captured from
// the product's average cost inside the recording transaction and never
// updated afterwards, decoupling historical profit from later cost revisions.
type Line struct {
	ID                  int64   `db:"id" json:"id"`
	OrderID             int64   `db:"order_id" json:"orderId"`
	ProductID           int64   `db:"product_id" json:"productId"`
	Quantity            float64 `db:"quantity" json:"quantity"`
	SellingPrice        float64 `db:"selling_price" json:"sellingPrice"`
	Subtotal            float64 `db:"subtotal" json:"subtotal"`
	BuyingPriceSnapshot float64 `db:"buying_price_snapshot" json:"buyingPriceSnapshot"`
}

// LineDetail is a line joined with its product name, for detail views.
type LineDetail struct {
	Line
	ProductName string `db:"product_name" json:"productName"`
}

// Validate rejects malformed documents before any write happens.
// Resulting negative stock is deliberately NOT rejected: oversell is allowed.
func (o *Order) Validate(ctx context.Context) error {
	if o.OrderType == "" {
		return apperror.NewValidation("order type is required").
			WithDetail("field", "orderType")
	}
	if len(o.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range o.Lines {
		if line.ProductID == 0 {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
