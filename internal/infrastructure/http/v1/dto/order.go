package dto

import "tillbook/internal/domain/documents/order"

// OrderLineRequest is one sold product on an order payload. The cost
// snapshot is never accepted from clients; the server captures it.
type OrderLineRequest struct {
	ProductID    int64   `json:"productId" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required"`
	SellingPrice float64 `json:"sellingPrice"`
}

// OrderRequest is the create/update payload for a sale document.
type OrderRequest struct {
	OrderType       string             `json:"orderType" binding:"required"`
	OrderDate       string             `json:"orderDate"`
	CustomerName    *string            `json:"customerName"`
	CustomerPhone   *string            `json:"customerPhone"`
	CustomerAddress *string            `json:"customerAddress"`
	ExtraCharge     float64            `json:"extraCharge"`
	DeliveryCharge  float64            `json:"deliveryCharge"`
	Discount        float64            `json:"discount"`
	PaymentMethod   *string            `json:"paymentMethod"`
	Notes           *string            `json:"notes"`
	Lines           []OrderLineRequest `json:"lines" binding:"required"`
}

// ToEntity converts the request to a domain order. Line subtotals and the
// header totals are derived here.
func (r OrderRequest) ToEntity() *order.Order {
	doc := &order.Order{
		OrderType:       r.OrderType,
		OrderDate:       r.OrderDate,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		ExtraCharge:     r.ExtraCharge,
		DeliveryCharge:  r.DeliveryCharge,
		Discount:        r.Discount,
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes,
		Lines:           make([]order.Line, 0, len(r.Lines)),
	}

	var subtotal float64
	for _, line := range r.Lines {
		lineSubtotal := line.Quantity * line.SellingPrice
		doc.Lines = append(doc.Lines, order.Line{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			SellingPrice: line.SellingPrice,
			Subtotal:     lineSubtotal,
		})
		subtotal += lineSubtotal
	}
	doc.Subtotal = subtotal
	doc.GrandTotal = subtotal + r.ExtraCharge + r.DeliveryCharge - r.Discount
	return doc
}
