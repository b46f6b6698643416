package dto

import "tillbook/internal/domain/documents/purchase"

// PurchaseLineRequest is one received product on a purchase payload.
type PurchaseLineRequest struct {
	ProductID   int64   `json:"productId" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	BuyingPrice float64 `json:"buyingPrice"`
	ExtraCharge float64 `json:"extraCharge"`
}

// PurchaseRequest is the create/update payload for a purchase document.
type PurchaseRequest struct {
	SupplierName  *string               `json:"supplierName"`
	SupplierPhone *string               `json:"supplierPhone"`
	InvoiceNumber *string               `json:"invoiceNumber"`
	PurchaseDate  string                `json:"purchaseDate"`
	Notes         *string               `json:"notes"`
	Lines         []PurchaseLineRequest `json:"lines" binding:"required"`
}

// ToEntity converts the request to a domain purchase. Line subtotals, the
// effective unit cost, and the header total are derived here so stored
// amounts cannot drift from the line inputs.
func (r PurchaseRequest) ToEntity() *purchase.Purchase {
	doc := &purchase.Purchase{
		SupplierName:  r.SupplierName,
		SupplierPhone: r.SupplierPhone,
		InvoiceNumber: r.InvoiceNumber,
		PurchaseDate:  r.PurchaseDate,
		Notes:         r.Notes,
		Lines:         make([]purchase.Line, 0, len(r.Lines)),
	}

	var total float64
	for _, line := range r.Lines {
		subtotal := line.Quantity*line.BuyingPrice + line.ExtraCharge

		unitCost := line.BuyingPrice
		if line.Quantity > 0 {
			unitCost = subtotal / line.Quantity
		}

		doc.Lines = append(doc.Lines, purchase.Line{
			ProductID:        line.ProductID,
			Quantity:         line.Quantity,
			BuyingPrice:      line.BuyingPrice,
			ExtraCharge:      line.ExtraCharge,
			Subtotal:         subtotal,
			PurchaseUnitCost: unitCost,
		})
		total += subtotal
	}
	doc.TotalAmount = total
	return doc
}
