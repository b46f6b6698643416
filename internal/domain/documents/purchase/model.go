// Package purchase provides the purchase document: the inbound side of the
// stock ledger. Recording, revising, and deleting a purchase mutate product
// stock quantity and weighted-average cost inside a single transaction.
package purchase

import (
	"context"

	"tillbook/internal/core/apperror"
)

// Purchase is a purchase document header grouping line items against one
// supplier invoice.
type Purchase struct {
	PurchaseID    int64   `db:"purchase_id" json:"purchaseId"`
	SupplierName  *string `db:"supplier_name" json:"supplierName,omitempty"`
	SupplierPhone *string `db:"supplier_phone" json:"supplierPhone,omitempty"`
	InvoiceNumber *string `db:"invoice_number" json:"invoiceNumber,omitempty"`
	PurchaseDate  string  `db:"purchase_date" json:"purchaseDate,omitempty"`
	TotalAmount   float64 `db:"total_amount" json:"totalAmount"`
	Notes         *string `db:"notes" json:"notes,omitempty"`
	CreatedAt     string  `db:"created_at" json:"createdAt,omitempty"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one received product on a purchase. BuyingPrice is the unit cost
// for this line; ExtraCharge is non-unit cost (freight etc.);
// PurchaseUnitCost is the effective unit cost including the extra charge,
// used as the average-cost fallback when resulting stock is not positive.
type Line struct {
	ID               int64   `db:"id" json:"id"`
	PurchaseID       int64   `db:"purchase_id" json:"purchaseId"`
	ProductID        int64   `db:"product_id" json:"productId"`
	Quantity         float64 `db:"quantity" json:"quantity"`
	BuyingPrice      float64 `db:"buying_price" json:"buyingPrice"`
	ExtraCharge      float64 `db:"extra_charge" json:"extraCharge"`
	Subtotal         float64 `db:"subtotal" json:"subtotal"`
	PurchaseUnitCost float64 `db:"purchase_unit_cost" json:"purchaseUnitCost"`
}

// LineDetail is a line joined with its product name, for detail views.
type LineDetail struct {
	Line
	ProductName string `db:"product_name" json:"productName"`
}

// Validate rejects malformed documents before any write happens.
func (p *Purchase) Validate(ctx context.Context) error {
	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range p.Lines {
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
