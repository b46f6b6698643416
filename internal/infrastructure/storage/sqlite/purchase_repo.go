package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/documents/purchase"
)

const (
	purchasesTable     = "purchases"
	purchaseItemsTable = "purchase_items"
)

var purchaseColumns = []string{
	"purchase_id", "supplier_name", "supplier_phone", "invoice_number",
	"purchase_date", "total_amount", "notes", "created_at",
}

var purchaseLineColumns = []string{
	"id", "purchase_id", "product_id", "quantity",
	"buying_price", "extra_charge", "subtotal", "purchase_unit_cost",
}

// Compile-time check that PurchaseRepo implements purchase.Repository.
var _ purchase.Repository = (*PurchaseRepo)(nil)

// PurchaseRepo implements purchase.Repository on the embedded store.
type PurchaseRepo struct {
	tx      *TxManager
	builder squirrel.StatementBuilderType
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(tx *TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		tx:      tx,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// InsertHeader inserts a purchase header and returns its id. An empty
// purchase date falls back to the column default (now).
func (r *PurchaseRepo) InsertHeader(ctx context.Context, p *purchase.Purchase) (int64, error) {
	cols := map[string]any{
		"supplier_name":  p.SupplierName,
		"supplier_phone": p.SupplierPhone,
		"invoice_number": p.InvoiceNumber,
		"total_amount":   p.TotalAmount,
		"notes":          p.Notes,
	}
	if p.PurchaseDate != "" {
		cols["purchase_date"] = p.PurchaseDate
	}

	query, args, err := r.builder.Insert(purchasesTable).SetMap(cols).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperror.NewPersistence("insert purchase", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.NewPersistence("read insert id", err)
	}
	return id, nil
}

// UpdateHeader rewrites a purchase header in place.
func (r *PurchaseRepo) UpdateHeader(ctx context.Context, id int64, p *purchase.Purchase) error {
	cols := map[string]any{
		"supplier_name":  p.SupplierName,
		"supplier_phone": p.SupplierPhone,
		"invoice_number": p.InvoiceNumber,
		"total_amount":   p.TotalAmount,
		"notes":          p.Notes,
	}
	if p.PurchaseDate != "" {
		cols["purchase_date"] = p.PurchaseDate
	}

	query, args, err := r.builder.Update(purchasesTable).
		SetMap(cols).
		Where(squirrel.Eq{"purchase_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("update purchase", err)
	}
	return requireAffected(res, "purchase", id)
}

// DeleteHeader removes a purchase header.
func (r *PurchaseRepo) DeleteHeader(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete(purchasesTable).
		Where(squirrel.Eq{"purchase_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("delete purchase", err)
	}
	return requireAffected(res, "purchase", id)
}

// GetHeader returns a purchase header by id.
func (r *PurchaseRepo) GetHeader(ctx context.Context, id int64) (*purchase.Purchase, error) {
	query, args, err := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		Where(squirrel.Eq{"purchase_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchase.Purchase
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &p, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", id)
		}
		return nil, apperror.NewPersistence("select purchase", err)
	}
	return &p, nil
}

// List returns all purchase headers, newest first.
func (r *PurchaseRepo) List(ctx context.Context) ([]purchase.Purchase, error) {
	query, args, err := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		OrderBy("purchase_date DESC", "purchase_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var purchases []purchase.Purchase
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &purchases, query, args...); err != nil {
		return nil, apperror.NewPersistence("select purchases", err)
	}
	return purchases, nil
}

// InsertLine inserts one purchase line.
func (r *PurchaseRepo) InsertLine(ctx context.Context, purchaseID int64, line purchase.Line) error {
	query, args, err := r.builder.Insert(purchaseItemsTable).
		Columns(
			"purchase_id", "product_id", "quantity",
			"buying_price", "extra_charge", "subtotal", "purchase_unit_cost",
		).
		Values(
			purchaseID, line.ProductID, line.Quantity,
			line.BuyingPrice, line.ExtraCharge, line.Subtotal, line.PurchaseUnitCost,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewPersistence("insert purchase line", err)
	}
	return nil
}

// GetLines returns the lines of a purchase in insertion order.
func (r *PurchaseRepo) GetLines(ctx context.Context, purchaseID int64) ([]purchase.Line, error) {
	query, args, err := r.builder.Select(purchaseLineColumns...).
		From(purchaseItemsTable).
		Where(squirrel.Eq{"purchase_id": purchaseID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase.Line
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &lines, query, args...); err != nil {
		return nil, apperror.NewPersistence("select purchase lines", err)
	}
	return lines, nil
}

// GetLineDetails returns lines joined with product names.
func (r *PurchaseRepo) GetLineDetails(ctx context.Context, purchaseID int64) ([]purchase.LineDetail, error) {
	cols := make([]string, 0, len(purchaseLineColumns)+1)
	for _, c := range purchaseLineColumns {
		cols = append(cols, "pi."+c)
	}
	cols = append(cols, "p.product_name")

	query, args, err := r.builder.Select(cols...).
		From(purchaseItemsTable + " pi").
		Join(productsTable + " p ON p.id = pi.product_id").
		Where(squirrel.Eq{"pi.purchase_id": purchaseID}).
		OrderBy("pi.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var details []purchase.LineDetail
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &details, query, args...); err != nil {
		return nil, apperror.NewPersistence("select purchase line details", err)
	}
	return details, nil
}

// DeleteLines removes all lines of a purchase.
func (r *PurchaseRepo) DeleteLines(ctx context.Context, purchaseID int64) error {
	query, args, err := r.builder.Delete(purchaseItemsTable).
		Where(squirrel.Eq{"purchase_id": purchaseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewPersistence("delete purchase lines", err)
	}
	return nil
}
