package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solobilling/solo-billing/internal/models"
)

var (
	ErrInvalidOrder  = errors.New("invalid order request")
	ErrUnknownItem   = errors.New("unknown item")
	ErrOrderNotFound = errors.New("order not found")
)

// Single-customer system: every sale is booked against the default customer.
const defaultCustomerID = 1

// OrderService owns the multi-table order workflows. It holds the injected
// store handle; handlers stay thin.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService { return &OrderService{DB: db} }

type OrderLineInput struct {
	ItemID   uint
	Quantity int
}

// CreateOrderInput carries the checkout payload. Totals are persisted as
// supplied by the caller; the frontend computes them.
type CreateOrderInput struct {
	CustomerName string
	Lines        []OrderLineInput
	TotalAmount  decimal.Decimal
	Discount     decimal.Decimal
	GrandTotal   decimal.Decimal
}

// Create inserts the sale header and its lines as one transaction and returns
// the new selling_id. Nothing persists if any insert fails.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (uint, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return 0, fmt.Errorf("%w: customer_name is required", ErrInvalidOrder)
	}
	if len(in.Lines) == 0 {
		return 0, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for _, l := range in.Lines {
		if l.ItemID == 0 || l.Quantity <= 0 {
			return 0, fmt.Errorf("%w: invalid item or quantity", ErrInvalidOrder)
		}
	}

	sale := models.Sale{
		CustomerID:   defaultCustomerID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		TotalAmount:  in.TotalAmount,
		Discount:     in.Discount,
		GrandTotal:   in.GrandTotal,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The line inserts must only ever reference catalog rows that exist;
		// checked here so the whole unit rolls back on a stale cart.
		ids := make([]uint, 0, len(in.Lines))
		seen := make(map[uint]bool, len(in.Lines))
		for _, l := range in.Lines {
			if !seen[l.ItemID] {
				seen[l.ItemID] = true
				ids = append(ids, l.ItemID)
			}
		}
		var count int64
		if err := tx.Model(&models.Item{}).Where("item_id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return ErrUnknownItem
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		lines := make([]models.SaleLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			lines = append(lines, models.SaleLine{SellingID: sale.SellingID, ItemID: l.ItemID, Quantity: l.Quantity})
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return 0, err
	}
	return sale.SellingID, nil
}

// Delete removes an order's lines and then its header. Deleting an order that
// does not exist is a no-op success.
func (s *OrderService) Delete(ctx context.Context, sellingID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("selling_id = ?", sellingID).Delete(&models.SaleLine{}).Error; err != nil {
			return err
		}
		return tx.Where("selling_id = ?", sellingID).Delete(&models.Sale{}).Error
	})
}

// Details fetches the header plus its lines enriched with the current item
// name and sell price. Lines whose item was deleted keep null enrichment.
func (s *OrderService) Details(ctx context.Context, sellingID uint) (*models.Sale, []models.SaleLineDetail, error) {
	var sale models.Sale
	if err := s.DB.WithContext(ctx).First(&sale, "selling_id = ?", sellingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}
	var lines []models.SaleLineDetail
	err := s.DB.WithContext(ctx).
		Table("selling_details").
		Select("selling_details.*, item_record.item_name, item_record.sell_price").
		Joins("LEFT JOIN item_record ON item_record.item_id = selling_details.item_id").
		Where("selling_details.selling_id = ?", sellingID).
		Order("selling_details.selling_detail_id").
		Scan(&lines).Error
	if err != nil {
		return nil, nil, err
	}
	return &sale, lines, nil
}
