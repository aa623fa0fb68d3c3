package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/shopspring/decimal"
)

var ErrUnsupportedPlatform = errors.New("unsupported pos platform")

// GenericInventoryRecord is one inventory line with provider vocabulary removed.
type GenericInventoryRecord struct {
	SKU            string
	StockOnHand    decimal.Decimal
	Price          int64
	ProductName    string
	ListedVendor   string
	ListedBrand    string
	ListedCategory string
}

type GenericHistoricalSale struct {
	PosSaleID     string
	SaleTimestamp time.Time
	Total         int64
	SubTotal      *int64
	Discount      *int64
	Tax           *int64
	Cost          *int64
	Items         []GenericHistoricalSaleItem
}

type GenericHistoricalSaleItem struct {
	SKU             string
	Quantity        decimal.Decimal
	SaleTimestamp   time.Time
	Total           int64
	ProductName     *string
	SaleProductName *string
	ListedBrand     *string
	ListedCategory  *string
	LotIdentifier   *string
	PosSaleID       *string
	PosProductID    *string
	UnitOfWeight    *model.UnitOfWeight
	WeightInUnits   *decimal.Decimal
	SubTotal        *int64
	Discount        *int64
	Tax             *int64
	Cost            *int64
}

// Client fetches every page a provider has for an integration. A non-nil simulatorResponseID replaces the live call.
type Client interface {
	FetchInventory(ctx context.Context, integrationKey string, simulatorResponseID *string) ([]GenericInventoryRecord, error)
	FetchHistoricalSales(ctx context.Context, integrationKey string, startTime time.Time, endTime *time.Time, simulatorResponseID *string) ([]GenericHistoricalSale, error)
}

// Registry maps each supported platform to its adapter. The set is fixed at construction.
type Registry struct {
	clients map[model.PosPlatform]Client
}

func NewRegistry(clients map[model.PosPlatform]Client) *Registry {
	r := &Registry{clients: make(map[model.PosPlatform]Client, len(clients))}
	for platform, c := range clients {
		if c != nil {
			r.clients[platform] = c
		}
	}
	return r
}

func (r *Registry) Client(platform model.PosPlatform) (Client, error) {
	c, ok := r.clients[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}
	return c, nil
}
