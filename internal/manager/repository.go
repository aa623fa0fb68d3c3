package manager

import (
	"context"

	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
)

// Repository is plain persistence. Find* return nil, nil when the row does not exist.
type Repository interface {
	CreateRetailer(ctx context.Context, r *model.Retailer) error
	FindRetailerByID(ctx context.Context, id string) (*model.Retailer, error)
	CreateRetailerLocation(ctx context.Context, l *model.RetailerLocation) error
	FindRetailerLocationByID(ctx context.Context, id string) (*model.RetailerLocation, error)

	CreateProduct(ctx context.Context, p *model.Product) error
	FindProductByID(ctx context.Context, id string) (*model.Product, error)

	CreatePosIntegration(ctx context.Context, i *model.PosIntegration) error
	FindPosIntegrations(ctx context.Context, f *dto.PosIntegrationFilters) ([]model.PosIntegration, error)
	CreatePosSimulatorResponse(ctx context.Context, r *model.PosSimulatorResponse) error
	FindPosSimulatorResponseByID(ctx context.Context, id string) (*model.PosSimulatorResponse, error)

	CreateInventoryIntakeJob(ctx context.Context, j *model.InventoryIntakeJob) error
	FindInventoryIntakeJobByID(ctx context.Context, id string) (*model.InventoryIntakeJob, error)
	// UpdateInventoryIntakeJobStatus reports false when the job is missing or its current status is in notIn.
	UpdateInventoryIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn []model.IntakeJobStatus) (bool, error)

	CreateSalesIntakeJob(ctx context.Context, j *model.SalesIntakeJob) error
	FindSalesIntakeJobByID(ctx context.Context, id string) (*model.SalesIntakeJob, error)
	UpdateSalesIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn []model.IntakeJobStatus) (bool, error)

	CreateInventoryProductSnapshot(ctx context.Context, s *model.InventoryProductSnapshot) error
	FindInventoryProductSnapshots(ctx context.Context, f *dto.InventoryProductSnapshotFilters) ([]model.InventoryProductSnapshot, error)

	CreateHistoricalSale(ctx context.Context, s *model.HistoricalSale) error
	FindHistoricalSaleByID(ctx context.Context, id string) (*model.HistoricalSale, error)
	FindHistoricalSales(ctx context.Context, f *dto.HistoricalSaleFilters) ([]model.HistoricalSale, error)

	CreateHistoricalSaleItem(ctx context.Context, i *model.HistoricalSaleItem) error
	FindHistoricalSaleItems(ctx context.Context, f *dto.HistoricalSaleItemFilters) ([]model.HistoricalSaleItem, error)
}
