package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type UnitOfWeight string

const (
	UnitMilligrams  UnitOfWeight = "Milligrams"
	UnitGrams       UnitOfWeight = "Grams"
	UnitKilograms   UnitOfWeight = "Kilograms"
	UnitPounds      UnitOfWeight = "Pounds"
	UnitOunces      UnitOfWeight = "Ounces"
	UnitFluidOunces UnitOfWeight = "FluidOunces"
	UnitPints       UnitOfWeight = "Pints"
	UnitQuarts      UnitOfWeight = "Quarts"
	UnitGallons     UnitOfWeight = "Gallons"
	UnitLiters      UnitOfWeight = "Liters"
	UnitMilliliters UnitOfWeight = "Milliliters"
)

type HistoricalSale struct {
	BaseModel
	RetailerID         string    `db:"retailer_id" json:"retailer_id"`
	RetailerLocationID string    `db:"retailer_location_id" json:"retailer_location_id"`
	SalesIntakeJobID   *string   `db:"sales_intake_job_id" json:"sales_intake_job_id"`
	PosSaleID          string    `db:"pos_sale_id" json:"pos_sale_id"`
	SaleTimestamp      time.Time `db:"sale_timestamp" json:"sale_timestamp"`
	Total              int64     `db:"total" json:"total"`
	SubTotal           *int64    `db:"sub_total" json:"sub_total"`
	Discount           *int64    `db:"discount" json:"discount"`
	Tax                *int64    `db:"tax" json:"tax"`
	Cost               *int64    `db:"cost" json:"cost"`
}

type HistoricalSaleCreate struct {
	RetailerLocationID string
	SalesIntakeJobID   *string
	PosSaleID          string
	SaleTimestamp      time.Time
	Total              int64
	SubTotal           *int64
	Discount           *int64
	Tax                *int64
	Cost               *int64
}

type HistoricalSaleItem struct {
	BaseModel
	HistoricalSaleID   string           `db:"historical_sale_id" json:"historical_sale_id"`
	ProductID          string           `db:"product_id" json:"product_id"`
	ProductVendorID    *string          `db:"product_vendor_id" json:"product_vendor_id"`
	RetailerID         string           `db:"retailer_id" json:"retailer_id"`
	RetailerLocationID string           `db:"retailer_location_id" json:"retailer_location_id"`
	SalesIntakeJobID   *string          `db:"sales_intake_job_id" json:"sales_intake_job_id"`
	SKU                string           `db:"sku" json:"sku"`
	SaleCount          decimal.Decimal  `db:"sale_count" json:"sale_count"`
	SaleTimestamp      time.Time        `db:"sale_timestamp" json:"sale_timestamp"`
	Total              int64            `db:"total" json:"total"`
	SaleProductName    *string          `db:"sale_product_name" json:"sale_product_name"`
	LotIdentifier      *string          `db:"lot_identifier" json:"lot_identifier"`
	PosSaleID          *string          `db:"pos_sale_id" json:"pos_sale_id"`
	PosProductID       *string          `db:"pos_product_id" json:"pos_product_id"`
	UnitOfWeight       *UnitOfWeight    `db:"unit_of_weight" json:"unit_of_weight"`
	WeightInUnits      *decimal.Decimal `db:"weight_in_units" json:"weight_in_units"`
	SubTotal           *int64           `db:"sub_total" json:"sub_total"`
	Discount           *int64           `db:"discount" json:"discount"`
	Tax                *int64           `db:"tax" json:"tax"`
	Cost               *int64           `db:"cost" json:"cost"`
}

// HistoricalSaleItemCreate omits everything the manager copies from the parent sale and product.
type HistoricalSaleItemCreate struct {
	HistoricalSaleID string
	ProductID        string
	SKU              string
	SaleCount        decimal.Decimal
	SaleTimestamp    time.Time
	Total            int64
	SaleProductName  *string
	LotIdentifier    *string
	PosSaleID        *string
	PosProductID     *string
	UnitOfWeight     *UnitOfWeight
	WeightInUnits    *decimal.Decimal
	SubTotal         *int64
	Discount         *int64
	Tax              *int64
	Cost             *int64
}
