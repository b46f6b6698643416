package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/catalog/product"
)

const (
	productsTable      = "products"
	productImagesTable = "product_images"
)

var productColumns = []string{
	"id", "product_name", "product_code", "category", "brand",
	"buying_price", "default_selling_price", "stock_quantity",
	"unit", "tax_percentage", "created_at", "updated_at", "is_deleted",
}

// Compile-time check that ProductRepo implements product.Repository.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository on the embedded store.
type ProductRepo struct {
	tx      *TxManager
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(tx *TxManager) *ProductRepo {
	return &ProductRepo{
		tx:      tx,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a new product and returns its id.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) (int64, error) {
	q := r.builder.Insert(productsTable).
		Columns(
			"product_name", "product_code", "category", "brand",
			"buying_price", "default_selling_price", "stock_quantity",
			"unit", "tax_percentage",
		).
		Values(
			p.ProductName, p.ProductCode, p.Category, p.Brand,
			p.BuyingPrice, p.DefaultSellingPrice, p.StockQuantity,
			p.Unit, p.TaxPercentage,
		)

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperror.NewDuplicate("product", "code", derefOrEmpty(p.ProductCode))
		}
		return 0, apperror.NewPersistence("insert product", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.NewPersistence("read insert id", err)
	}
	return id, nil
}

// Update rewrites the catalog fields of a product. Stock quantity and
// average cost are owned by the ledger operations and are not touched here.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := r.builder.Update(productsTable).
		SetMap(map[string]any{
			"product_name":          p.ProductName,
			"product_code":          p.ProductCode,
			"category":              p.Category,
			"brand":                 p.Brand,
			"default_selling_price": p.DefaultSellingPrice,
			"unit":                  p.Unit,
			"tax_percentage":        p.TaxPercentage,
		}).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": p.ID, "is_deleted": 0})

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("product", "code", derefOrEmpty(p.ProductCode))
		}
		return apperror.NewPersistence("update product", err)
	}
	return requireAffected(res, "product", p.ID)
}

// SoftDelete marks a product deleted, keeping it resolvable from historical
// document lines.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	q := r.builder.Update(productsTable).
		Set("is_deleted", 1).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "is_deleted": 0})

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("delete product", err)
	}
	return requireAffected(res, "product", id)
}

// GetByID returns a product by id, deleted ones included so document detail
// views can still resolve them.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id})

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &p, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", id)
		}
		return nil, apperror.NewPersistence("select product", err)
	}
	return &p, nil
}

// List returns all non-deleted products, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]product.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"is_deleted": 0}).
		OrderBy("id DESC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []product.Product
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &products, query, args...); err != nil {
		return nil, apperror.NewPersistence("select products", err)
	}
	return products, nil
}

// GetStock reads the current stock position for one product.
func (r *ProductRepo) GetStock(ctx context.Context, id int64) (product.Stock, error) {
	q := r.builder.Select("stock_quantity", "buying_price").
		From(productsTable).
		Where(squirrel.Eq{"id": id})

	query, args, err := q.ToSql()
	if err != nil {
		return product.Stock{}, fmt.Errorf("build query: %w", err)
	}

	var st product.Stock
	if err := sqlscan.Get(ctx, r.tx.GetQuerier(ctx), &st, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return product.Stock{}, apperror.NewNotFound("product", id)
		}
		return product.Stock{}, apperror.NewPersistence("select stock", err)
	}
	return st, nil
}

// UpdateStock writes back a recomputed stock position.
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, s product.Stock) error {
	q := r.builder.Update(productsTable).
		Set("stock_quantity", s.Quantity).
		Set("buying_price", s.AverageCost).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id})

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("update stock", err)
	}
	return requireAffected(res, "product", id)
}

// AdjustStock shifts the stock quantity by delta without touching cost.
// No floor is applied: oversell drives the quantity negative.
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta float64) error {
	q := r.builder.Update(productsTable).
		Set("stock_quantity", squirrel.Expr("stock_quantity + ?", delta)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id})

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewPersistence("adjust stock", err)
	}
	return requireAffected(res, "product", id)
}

// ReplaceImages swaps the full image set for a product.
func (r *ProductRepo) ReplaceImages(ctx context.Context, productID int64, paths []string) error {
	del, args, err := r.builder.Delete(productImagesTable).
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, del, args...); err != nil {
		return apperror.NewPersistence("delete images", err)
	}

	if len(paths) == 0 {
		return nil
	}

	q := r.builder.Insert(productImagesTable).Columns("product_id", "image_path")
	for _, path := range paths {
		q = q.Values(productID, path)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewPersistence("insert images", err)
	}
	return nil
}

// GetImages returns the image paths for a product in insertion order.
func (r *ProductRepo) GetImages(ctx context.Context, productID int64) ([]string, error) {
	q := r.builder.Select("image_path").
		From(productImagesTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("id")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var paths []string
	if err := sqlscan.Select(ctx, r.tx.GetQuerier(ctx), &paths, query, args...); err != nil {
		return nil, apperror.NewPersistence("select images", err)
	}
	return paths, nil
}
