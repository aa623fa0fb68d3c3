package dto

import "github.com/fekuna/omnipos-intake-service/internal/model"

type PosIntegrationFilters struct {
	RetailerLocationID string
	PosPlatform        model.PosPlatform
	// Hydrate attaches Retailer and RetailerLocation to each result.
	Hydrate bool
}

type InventoryProductSnapshotFilters struct {
	RetailerLocationID   string
	SKU                  string
	ProductID            string
	InventoryIntakeJobID string
	Limit                int
}

type HistoricalSaleFilters struct {
	RetailerLocationID string
	PosSaleID          string
	SalesIntakeJobID   string
	Limit              int
}

type HistoricalSaleItemFilters struct {
	RetailerLocationID string
	SKU                string
	HistoricalSaleID   string
	SalesIntakeJobID   string
	Limit              int
}
