package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryProductSnapshot struct {
	BaseModel
	RetailerID           string          `db:"retailer_id" json:"retailer_id"`
	RetailerLocationID   string          `db:"retailer_location_id" json:"retailer_location_id"`
	ProductID            string          `db:"product_id" json:"product_id"`
	VendorID             *string         `db:"vendor_id" json:"vendor_id"`
	InventoryIntakeJobID *string         `db:"inventory_intake_job_id" json:"inventory_intake_job_id"`
	SnapshotHour         time.Time       `db:"snapshot_hour" json:"snapshot_hour"`
	SKU                  string          `db:"sku" json:"sku"`
	StockOnHand          decimal.Decimal `db:"stock_on_hand" json:"stock_on_hand"`
	Price                int64           `db:"price" json:"price"`
}

// InventoryProductSnapshotCreate carries no retailer or vendor id: both are resolved from the parents on create.
type InventoryProductSnapshotCreate struct {
	ProductID            string
	InventoryIntakeJobID *string
	RetailerLocationID   string
	SnapshotHour         time.Time
	SKU                  string
	StockOnHand          decimal.Decimal
	Price                int64
}
