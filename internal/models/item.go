package models

import "github.com/shopspring/decimal"

func init() {
	// The web UI parses money columns as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is a catalog product. Table and column names are kept from the legacy
// schema because the shipped frontend reads these JSON keys directly.
type Item struct {
	ItemID    uint            `gorm:"column:item_id;primaryKey" json:"item_id"`
	ItemName  string          `gorm:"column:item_name;not null" json:"item_name"`
	CostPrice decimal.Decimal `gorm:"column:cost_price;type:decimal(10,2);not null" json:"cost_price"`
	SellPrice decimal.Decimal `gorm:"column:sell_price;type:decimal(10,2);not null" json:"sell_price"`
}

func (Item) TableName() string { return "item_record" }
