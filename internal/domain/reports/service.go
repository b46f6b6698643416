package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tillbook/internal/core/apperror"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetDashboardStats returns the dashboard aggregates.
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}
	return stats, nil
}

// GetSalesReport returns per-order totals and profit for an inclusive date
// range (YYYY-MM-DD).
func (s *Service) GetSalesReport(ctx context.Context, startDate, endDate string) ([]SalesReportItem, error) {
	if startDate == "" || endDate == "" {
		return nil, apperror.NewValidation("startDate and endDate are required")
	}
	if startDate > endDate {
		return nil, apperror.NewValidation("startDate must not be after endDate")
	}

	items, err := s.repo.GetSalesReport(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("get sales report: %w", err)
	}
	return items, nil
}

// GetInventoryReport returns per-product stock positions, lowest stock first.
func (s *Service) GetInventoryReport(ctx context.Context) ([]InventoryReportItem, error) {
	items, err := s.repo.GetInventoryReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("get inventory report: %w", err)
	}
	return items, nil
}

// GetStockTimeline returns the merged IN/OUT movement feed for a product,
// newest first.
func (s *Service) GetStockTimeline(ctx context.Context, productID int64) ([]StockMovement, error) {
	if productID == 0 {
		return nil, apperror.NewValidation("productId is required")
	}
	movements, err := s.repo.GetStockTimeline(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get stock timeline: %w", err)
	}
	return movements, nil
}

// GetPurchaseHistory returns the inbound lines for a product, newest first.
func (s *Service) GetPurchaseHistory(ctx context.Context, productID int64) ([]PurchaseHistoryItem, error) {
	if productID == 0 {
		return nil, apperror.NewValidation("productId is required")
	}
	history, err := s.repo.GetPurchaseHistory(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get purchase history: %w", err)
	}
	return history, nil
}

// ExportSalesReport renders the sales report as an xlsx workbook.
func (s *Service) ExportSalesReport(ctx context.Context, startDate, endDate string) (*bytes.Buffer, error) {
	items, err := s.GetSalesReport(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Date", "Customer", "Total", "Discount", "Items", "Profit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, item := range items {
		values := []any{
			item.OrderID,
			item.Date,
			deref(item.Customer),
			item.Total,
			item.Discount,
			item.ItemsCount,
			item.Profit,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// ExportInventoryReport renders the inventory report as an xlsx workbook.
func (s *Service) ExportInventoryReport(ctx context.Context) (*bytes.Buffer, error) {
	items, err := s.GetInventoryReport(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Category", "Stock", "Unit", "Cost Price", "Selling Price", "Stock Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, item := range items {
		values := []any{
			item.ID,
			item.Name,
			deref(item.Category),
			item.Stock,
			deref(item.Unit),
			item.CostPrice,
			item.SellingPrice,
			item.StockValue,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
