package models

import "github.com/shopspring/decimal"

// Sale is a checkout header. Totals are stored as supplied by the client;
// see the order service for the create contract.
type Sale struct {
	SellingID    uint            `gorm:"column:selling_id;primaryKey" json:"selling_id"`
	CustomerID   uint            `gorm:"column:customer_id;not null" json:"customer_id"`
	CustomerName string          `gorm:"column:customer_name;not null" json:"customer_name"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	Discount     decimal.Decimal `gorm:"column:discount;type:decimal(10,2);default:0" json:"discount"`
	GrandTotal   decimal.Decimal `gorm:"column:grand_total;type:decimal(10,2);not null" json:"grand_total"`
	Lines        []SaleLine      `gorm:"foreignKey:SellingID;references:SellingID" json:"-"`
}

func (Sale) TableName() string { return "selling_record" }

// SaleLine is one item-quantity pairing within a Sale. Lines are only ever
// created together with their header.
type SaleLine struct {
	SellingDetailID uint `gorm:"column:selling_detail_id;primaryKey" json:"selling_detail_id"`
	SellingID       uint `gorm:"column:selling_id;not null;index" json:"selling_id"`
	ItemID          uint `gorm:"column:item_id;not null" json:"item_id"`
	Quantity        int  `gorm:"column:quantity;not null" json:"quantity"`
}

func (SaleLine) TableName() string { return "selling_details" }

// SaleSummary is the read model for the sales listing: a header annotated
// with the count of its lines.
type SaleSummary struct {
	SellingID    uint            `json:"selling_id"`
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Discount     decimal.Decimal `json:"discount"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	ItemsCount   int64           `json:"items_count"`
}

// SaleLineDetail is a line joined to its catalog item. ItemName and SellPrice
// are null when the item has been deleted since the sale was recorded.
type SaleLineDetail struct {
	SellingDetailID uint                `json:"selling_detail_id"`
	SellingID       uint                `json:"selling_id"`
	ItemID          uint                `json:"item_id"`
	Quantity        int                 `json:"quantity"`
	ItemName        *string             `json:"item_name"`
	SellPrice       decimal.NullDecimal `json:"sell_price"`
}
