package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/google/uuid"
)

// Manager resolves parent references and copies their keys onto child rows before writing.
type Manager struct {
	repo Repository
	now  func() time.Time
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

var _ ingestion.Manager = (*Manager)(nil)

func (m *Manager) base() model.BaseModel {
	return model.BaseModel{ID: uuid.New().String(), CreatedAt: m.now().UTC()}
}

func (m *Manager) location(ctx context.Context, id string) (*model.RetailerLocation, error) {
	loc, err := m.repo.FindRetailerLocationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("retailer location %s: %w", id, ingestion.ErrParentNotFound)
	}
	return loc, nil
}

func (m *Manager) product(ctx context.Context, id string) (*model.Product, error) {
	p, err := m.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", id, ingestion.ErrParentNotFound)
	}
	return p, nil
}

func (m *Manager) CreateRetailer(ctx context.Context, name string) (*model.Retailer, error) {
	r := &model.Retailer{BaseModel: m.base(), Name: name}
	if err := m.repo.CreateRetailer(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *Manager) CreateRetailerLocation(ctx context.Context, retailerID, name string) (*model.RetailerLocation, error) {
	r, err := m.repo.FindRetailerByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("retailer %s: %w", retailerID, ingestion.ErrParentNotFound)
	}
	l := &model.RetailerLocation{BaseModel: m.base(), RetailerID: retailerID, Name: name}
	if err := m.repo.CreateRetailerLocation(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (m *Manager) GetRetailerByID(ctx context.Context, id string) (*model.Retailer, error) {
	return m.repo.FindRetailerByID(ctx, id)
}

func (m *Manager) GetRetailerLocationByID(ctx context.Context, id string) (*model.RetailerLocation, error) {
	return m.repo.FindRetailerLocationByID(ctx, id)
}

func (m *Manager) CreateProduct(ctx context.Context, in *model.ProductCreate) (*model.Product, error) {
	p := &model.Product{
		BaseModel:                   m.base(),
		Name:                        in.Name,
		VendorSKU:                   in.VendorSKU,
		VendorConfirmationStatus:    in.VendorConfirmationStatus,
		VendorID:                    in.VendorID,
		ReferringRetailerLocationID: in.ReferringRetailerLocationID,
		ConfirmedCoreProductID:      in.ConfirmedCoreProductID,
	}
	if p.VendorConfirmationStatus == "" {
		p.VendorConfirmationStatus = model.VendorConfirmationUnknown
	}
	if in.ReferringRetailerLocationID != nil {
		loc, err := m.location(ctx, *in.ReferringRetailerLocationID)
		if err != nil {
			return nil, err
		}
		p.ReferringRetailerID = &loc.RetailerID
	}
	if err := m.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Manager) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	return m.repo.FindProductByID(ctx, id)
}

func (m *Manager) CreatePosIntegration(ctx context.Context, in *model.PosIntegrationCreate) (*model.PosIntegration, error) {
	loc, err := m.location(ctx, in.RetailerLocationID)
	if err != nil {
		return nil, err
	}
	i := &model.PosIntegration{
		BaseModel:          m.base(),
		RetailerID:         loc.RetailerID,
		RetailerLocationID: loc.ID,
		Name:               in.Name,
		URL:                in.URL,
		Key:                in.Key,
		PosPlatform:        in.PosPlatform,
		Description:        in.Description,
	}
	if err := m.repo.CreatePosIntegration(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (m *Manager) SearchPosIntegrations(ctx context.Context, f *dto.PosIntegrationFilters) ([]model.PosIntegration, error) {
	integrations, err := m.repo.FindPosIntegrations(ctx, f)
	if err != nil {
		return nil, err
	}
	if !f.Hydrate {
		return integrations, nil
	}
	for i := range integrations {
		if integrations[i].Retailer, err = m.repo.FindRetailerByID(ctx, integrations[i].RetailerID); err != nil {
			return nil, err
		}
		if integrations[i].RetailerLocation, err = m.repo.FindRetailerLocationByID(ctx, integrations[i].RetailerLocationID); err != nil {
			return nil, err
		}
	}
	return integrations, nil
}

func (m *Manager) CreatePosSimulatorResponse(ctx context.Context, r *model.PosSimulatorResponse) (*model.PosSimulatorResponse, error) {
	r.BaseModel = m.base()
	if err := m.repo.CreatePosSimulatorResponse(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *Manager) GetPosSimulatorResponseByID(ctx context.Context, id string) (*model.PosSimulatorResponse, error) {
	return m.repo.FindPosSimulatorResponseByID(ctx, id)
}

func (m *Manager) CreateInventoryIntakeJob(ctx context.Context, in *model.InventoryIntakeJobCreate) (*model.InventoryIntakeJob, error) {
	loc, err := m.location(ctx, in.RetailerLocationID)
	if err != nil {
		return nil, err
	}
	j := &model.InventoryIntakeJob{
		BaseModel:           m.base(),
		RetailerID:          loc.RetailerID,
		RetailerLocationID:  loc.ID,
		SnapshotHour:        in.SnapshotHour.UTC().Truncate(time.Hour),
		ParentBatchJobID:    in.ParentBatchJobID,
		SimulatorResponseID: in.SimulatorResponseID,
		Status:              model.IntakeJobStatusRequested,
	}
	if err := m.repo.CreateInventoryIntakeJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (m *Manager) GetInventoryIntakeJobByID(ctx context.Context, id string) (*model.InventoryIntakeJob, error) {
	return m.repo.FindInventoryIntakeJobByID(ctx, id)
}

// UpdateInventoryIntakeJobStatus applies u unless the job currently holds one of notIn.
func (m *Manager) UpdateInventoryIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) (*model.InventoryIntakeJob, error) {
	ok, err := m.repo.UpdateInventoryIntakeJobStatus(ctx, id, u, notIn)
	if err != nil {
		return nil, err
	}
	job, err := m.repo.FindInventoryIntakeJobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("inventory intake job %s: %w", id, ingestion.ErrJobNotFound)
	}
	if !ok {
		return nil, statusConflict(id, job.Status)
	}
	return job, nil
}

func (m *Manager) CreateSalesIntakeJob(ctx context.Context, in *model.SalesIntakeJobCreate) (*model.SalesIntakeJob, error) {
	loc, err := m.location(ctx, in.RetailerLocationID)
	if err != nil {
		return nil, err
	}
	j := &model.SalesIntakeJob{
		BaseModel:           m.base(),
		RetailerID:          loc.RetailerID,
		RetailerLocationID:  loc.ID,
		StartTime:           in.StartTime.UTC(),
		EndTime:             in.EndTime,
		ParentBatchJobID:    in.ParentBatchJobID,
		SimulatorResponseID: in.SimulatorResponseID,
		Status:              model.IntakeJobStatusRequested,
	}
	if err := m.repo.CreateSalesIntakeJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (m *Manager) GetSalesIntakeJobByID(ctx context.Context, id string) (*model.SalesIntakeJob, error) {
	return m.repo.FindSalesIntakeJobByID(ctx, id)
}

func (m *Manager) UpdateSalesIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) (*model.SalesIntakeJob, error) {
	ok, err := m.repo.UpdateSalesIntakeJobStatus(ctx, id, u, notIn)
	if err != nil {
		return nil, err
	}
	job, err := m.repo.FindSalesIntakeJobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("sales intake job %s: %w", id, ingestion.ErrJobNotFound)
	}
	if !ok {
		return nil, statusConflict(id, job.Status)
	}
	return job, nil
}

func statusConflict(id string, current model.IntakeJobStatus) error {
	if current == model.IntakeJobStatusProcessing {
		return fmt.Errorf("job %s: %w", id, ingestion.ErrJobAlreadyProcessing)
	}
	return fmt.Errorf("job %s is %s: %w", id, current, ingestion.ErrJobStatusConflict)
}

func (m *Manager) CreateInventoryProductSnapshot(ctx context.Context, in *model.InventoryProductSnapshotCreate) (*model.InventoryProductSnapshot, error) {
	loc, err := m.location(ctx, in.RetailerLocationID)
	if err != nil {
		return nil, err
	}
	p, err := m.product(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	s := &model.InventoryProductSnapshot{
		BaseModel:            m.base(),
		RetailerID:           loc.RetailerID,
		RetailerLocationID:   loc.ID,
		ProductID:            p.ID,
		VendorID:             p.VendorID,
		InventoryIntakeJobID: in.InventoryIntakeJobID,
		SnapshotHour:         in.SnapshotHour,
		SKU:                  in.SKU,
		StockOnHand:          in.StockOnHand,
		Price:                in.Price,
	}
	if err := m.repo.CreateInventoryProductSnapshot(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) SearchInventoryProductSnapshots(ctx context.Context, f *dto.InventoryProductSnapshotFilters) ([]model.InventoryProductSnapshot, error) {
	return m.repo.FindInventoryProductSnapshots(ctx, f)
}

func (m *Manager) CreateHistoricalSale(ctx context.Context, in *model.HistoricalSaleCreate) (*model.HistoricalSale, error) {
	loc, err := m.location(ctx, in.RetailerLocationID)
	if err != nil {
		return nil, err
	}
	s := &model.HistoricalSale{
		BaseModel:          m.base(),
		RetailerID:         loc.RetailerID,
		RetailerLocationID: loc.ID,
		SalesIntakeJobID:   in.SalesIntakeJobID,
		PosSaleID:          in.PosSaleID,
		SaleTimestamp:      in.SaleTimestamp,
		Total:              in.Total,
		SubTotal:           in.SubTotal,
		Discount:           in.Discount,
		Tax:                in.Tax,
		Cost:               in.Cost,
	}
	if err := m.repo.CreateHistoricalSale(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) GetHistoricalSaleByID(ctx context.Context, id string) (*model.HistoricalSale, error) {
	return m.repo.FindHistoricalSaleByID(ctx, id)
}

func (m *Manager) SearchHistoricalSales(ctx context.Context, f *dto.HistoricalSaleFilters) ([]model.HistoricalSale, error) {
	return m.repo.FindHistoricalSales(ctx, f)
}

func (m *Manager) CreateHistoricalSaleItem(ctx context.Context, in *model.HistoricalSaleItemCreate) (*model.HistoricalSaleItem, error) {
	sale, err := m.repo.FindHistoricalSaleByID(ctx, in.HistoricalSaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("historical sale %s: %w", in.HistoricalSaleID, ingestion.ErrParentNotFound)
	}
	p, err := m.product(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	item := &model.HistoricalSaleItem{
		BaseModel:          m.base(),
		HistoricalSaleID:   sale.ID,
		ProductID:          p.ID,
		ProductVendorID:    p.VendorID,
		RetailerID:         sale.RetailerID,
		RetailerLocationID: sale.RetailerLocationID,
		SalesIntakeJobID:   sale.SalesIntakeJobID,
		SKU:                in.SKU,
		SaleCount:          in.SaleCount,
		SaleTimestamp:      in.SaleTimestamp,
		Total:              in.Total,
		SaleProductName:    in.SaleProductName,
		LotIdentifier:      in.LotIdentifier,
		PosSaleID:          in.PosSaleID,
		PosProductID:       in.PosProductID,
		UnitOfWeight:       in.UnitOfWeight,
		WeightInUnits:      in.WeightInUnits,
		SubTotal:           in.SubTotal,
		Discount:           in.Discount,
		Tax:                in.Tax,
		Cost:               in.Cost,
	}
	if err := m.repo.CreateHistoricalSaleItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (m *Manager) SearchHistoricalSaleItems(ctx context.Context, f *dto.HistoricalSaleItemFilters) ([]model.HistoricalSaleItem, error) {
	return m.repo.FindHistoricalSaleItems(ctx, f)
}
