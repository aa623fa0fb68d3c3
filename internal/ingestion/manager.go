package ingestion

import (
	"context"

	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
)

// Manager is the entity API the intake processes depend on. Creates resolve denormalized keys from parents.
type Manager interface {
	CreateProduct(ctx context.Context, in *model.ProductCreate) (*model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	GetRetailerByID(ctx context.Context, id string) (*model.Retailer, error)
	GetRetailerLocationByID(ctx context.Context, id string) (*model.RetailerLocation, error)

	GetInventoryIntakeJobByID(ctx context.Context, id string) (*model.InventoryIntakeJob, error)
	UpdateInventoryIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) (*model.InventoryIntakeJob, error)
	GetSalesIntakeJobByID(ctx context.Context, id string) (*model.SalesIntakeJob, error)
	UpdateSalesIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) (*model.SalesIntakeJob, error)

	SearchPosIntegrations(ctx context.Context, f *dto.PosIntegrationFilters) ([]model.PosIntegration, error)
	GetPosSimulatorResponseByID(ctx context.Context, id string) (*model.PosSimulatorResponse, error)

	CreateInventoryProductSnapshot(ctx context.Context, in *model.InventoryProductSnapshotCreate) (*model.InventoryProductSnapshot, error)
	SearchInventoryProductSnapshots(ctx context.Context, f *dto.InventoryProductSnapshotFilters) ([]model.InventoryProductSnapshot, error)

	CreateHistoricalSale(ctx context.Context, in *model.HistoricalSaleCreate) (*model.HistoricalSale, error)
	SearchHistoricalSales(ctx context.Context, f *dto.HistoricalSaleFilters) ([]model.HistoricalSale, error)
	CreateHistoricalSaleItem(ctx context.Context, in *model.HistoricalSaleItemCreate) (*model.HistoricalSaleItem, error)
	SearchHistoricalSaleItems(ctx context.Context, f *dto.HistoricalSaleItemFilters) ([]model.HistoricalSaleItem, error)
}
