package posabit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// posID accepts both numeric and string ids and keeps the decimal text.
type posID string

func (id *posID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = posID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("posabit id: %w", err)
	}
	*id = posID(n.String())
	return nil
}

func (id posID) ptr() *string {
	if id == "" {
		return nil
	}
	s := string(id)
	return &s
}

type page struct {
	TotalRecords int `json:"total_records"`
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	PerPage      int `json:"per_page"`
}

type inventoryResponse struct {
	page
	Inventory []inventoryItem `json:"inventory"`
}

type inventoryItem struct {
	ID             posID           `json:"id"`
	ProductID      posID           `json:"product_id"`
	Name           *string         `json:"name"`
	Unit           *string         `json:"unit"`
	Price          *int64          `json:"price"`
	MedPrice       *int64          `json:"med_price"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	Vendor         *string         `json:"vendor"`
	Brand          *string         `json:"brand"`
	Category       *string         `json:"category"`
	ProductType    *string         `json:"product_type"`
	SKU            *string         `json:"sku"`
	Active         *bool           `json:"active"`
	UpdatedAt      *time.Time      `json:"updated_at"`
}

type salesHistoriesResponse struct {
	page
	SalesHistories []salesHistory `json:"sales_histories"`
}

type salesHistory struct {
	ID        posID              `json:"id"`
	OrderedAt time.Time          `json:"ordered_at"`
	SaleType  *string            `json:"sale_type"`
	Status    *string            `json:"status"`
	SubTotal  *int64             `json:"sub_total"`
	Discount  *int64             `json:"discount"`
	Tax       *int64             `json:"tax"`
	Total     *int64             `json:"total"`
	Cost      *int64             `json:"cost"`
	Items     []salesHistoryItem `json:"items"`
	UpdatedAt *time.Time         `json:"updated_at"`
}

type salesHistoryItem struct {
	ItemID         posID            `json:"item_id"`
	SalesHistoryID posID            `json:"sales_history_id"`
	ProductID      posID            `json:"product_id"`
	LotNumber      *string          `json:"lot_number"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Weight         *decimal.Decimal `json:"weight"`
	UnitOfWeight   *string          `json:"unit_of_weight"`
	Cost           *int64           `json:"cost"`
	SubTotal       *int64           `json:"sub_total"`
	Tax            *int64           `json:"tax"`
	Discount       *int64           `json:"discount"`
	SKU            *string          `json:"sku"`
	Category       *string          `json:"category"`
	Brand          *string          `json:"brand"`
	ProductName    *string          `json:"product_name"`
	Total          *int64           `json:"total"`
}
