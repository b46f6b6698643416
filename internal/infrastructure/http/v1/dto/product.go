package dto

import "tillbook/internal/domain/catalog/product"

// ProductRequest is the create/update payload for a product. Images are
// source file paths; the server copies them into its managed directory.
type ProductRequest struct {
	ProductName         string   `json:"productName" binding:"required"`
	ProductCode         *string  `json:"productCode"`
	Category            *string  `json:"category"`
	Brand               *string  `json:"brand"`
	BuyingPrice         float64  `json:"buyingPrice"`
	DefaultSellingPrice float64  `json:"defaultSellingPrice"`
	StockQuantity       float64  `json:"stockQuantity"`
	Unit                *string  `json:"unit"`
	TaxPercentage       float64  `json:"taxPercentage"`
	Images              []string `json:"images"`
}

// ToEntity converts the request to a domain product.
func (r ProductRequest) ToEntity() *product.Product {
	return &product.Product{
		ProductName:         r.ProductName,
		ProductCode:         r.ProductCode,
		Category:            r.Category,
		Brand:               r.Brand,
		BuyingPrice:         r.BuyingPrice,
		DefaultSellingPrice: r.DefaultSellingPrice,
		StockQuantity:       r.StockQuantity,
		Unit:                r.Unit,
		TaxPercentage:       r.TaxPercentage,
		Images:              r.Images,
	}
}
