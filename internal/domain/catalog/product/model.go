// Package product provides the product catalog: the master records whose
// stock quantity and weighted-average cost the document operations mutate.
package product

import (
	"context"

	"tillbook/internal/core/apperror"
)

// Product is a catalog item. BuyingPrice is the weighted average of all
// currently attributed inbound cost; it is recomputed by purchase operations
// and never set directly by sales.
type Product struct {
	ID                  int64   `db:"id" json:"id"`
	ProductName         string  `db:"product_name" json:"productName"`
	ProductCode         *string `db:"product_code" json:"productCode,omitempty"`
	Category            *string `db:"category" json:"category,omitempty"`
	Brand               *string `db:"brand" json:"brand,omitempty"`
	BuyingPrice         float64 `db:"buying_price" json:"buyingPrice"`
	DefaultSellingPrice float64 `db:"default_selling_price" json:"defaultSellingPrice"`
	StockQuantity       float64 `db:"stock_quantity" json:"stockQuantity"`
	Unit                *string `db:"unit" json:"unit,omitempty"`
	TaxPercentage       float64 `db:"tax_percentage" json:"taxPercentage"`
	CreatedAt           string  `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt           string  `db:"updated_at" json:"updatedAt,omitempty"`
	IsDeleted           bool    `db:"is_deleted" json:"isDeleted"`

	// Image paths; populated from product_images, not a column.
	Images []string `db:"-" json:"images,omitempty"`
}

// Stock is the read-modify-write unit the ledger operations work on.
type Stock struct {
	Quantity    float64 `db:"stock_quantity"`
	AverageCost float64 `db:"buying_price"`
}

// Validate implements basic catalog validation.
func (p *Product) Validate(ctx context.Context) error {
	if p.ProductName == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}
	if p.DefaultSellingPrice < 0 {
		return apperror.NewValidation("selling price cannot be negative").
			WithDetail("field", "defaultSellingPrice")
	}
	return nil
}
