package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
)

// MemoryRepository keeps every entity in process memory. Rows are stored and returned by value.
type MemoryRepository struct {
	mu sync.RWMutex

	retailers          map[string]model.Retailer
	locations          map[string]model.RetailerLocation
	products           map[string]model.Product
	integrations       []model.PosIntegration
	simulatorResponses map[string]model.PosSimulatorResponse
	inventoryJobs      map[string]model.InventoryIntakeJob
	salesJobs          map[string]model.SalesIntakeJob
	snapshots          []model.InventoryProductSnapshot
	sales              []model.HistoricalSale
	saleItems          []model.HistoricalSaleItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		retailers:          map[string]model.Retailer{},
		locations:          map[string]model.RetailerLocation{},
		products:           map[string]model.Product{},
		simulatorResponses: map[string]model.PosSimulatorResponse{},
		inventoryJobs:      map[string]model.InventoryIntakeJob{},
		salesJobs:          map[string]model.SalesIntakeJob{},
	}
}

func insert[T any](m map[string]T, id string, v T) error {
	if _, ok := m[id]; ok {
		return fmt.Errorf("duplicate id %s", id)
	}
	m[id] = v
	return nil
}

func find[T any](m map[string]T, id string) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

func (r *MemoryRepository) CreateRetailer(_ context.Context, v *model.Retailer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.retailers, v.ID, *v)
}

func (r *MemoryRepository) FindRetailerByID(_ context.Context, id string) (*model.Retailer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.retailers, id), nil
}

func (r *MemoryRepository) CreateRetailerLocation(_ context.Context, v *model.RetailerLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.locations, v.ID, *v)
}

func (r *MemoryRepository) FindRetailerLocationByID(_ context.Context, id string) (*model.RetailerLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.locations, id), nil
}

func (r *MemoryRepository) CreateProduct(_ context.Context, v *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.products, v.ID, *v)
}

func (r *MemoryRepository) FindProductByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.products, id), nil
}

func (r *MemoryRepository) CreatePosIntegration(_ context.Context, v *model.PosIntegration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := *v
	row.Retailer, row.RetailerLocation = nil, nil
	r.integrations = append(r.integrations, row)
	return nil
}

func (r *MemoryRepository) FindPosIntegrations(_ context.Context, f *dto.PosIntegrationFilters) ([]model.PosIntegration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.PosIntegration
	for _, i := range r.integrations {
		if f.RetailerLocationID != "" && i.RetailerLocationID != f.RetailerLocationID {
			continue
		}
		if f.PosPlatform != "" && i.PosPlatform != f.PosPlatform {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

func (r *MemoryRepository) CreatePosSimulatorResponse(_ context.Context, v *model.PosSimulatorResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.simulatorResponses, v.ID, *v)
}

func (r *MemoryRepository) FindPosSimulatorResponseByID(_ context.Context, id string) (*model.PosSimulatorResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.simulatorResponses, id), nil
}

func (r *MemoryRepository) CreateInventoryIntakeJob(_ context.Context, v *model.InventoryIntakeJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.inventoryJobs, v.ID, *v)
}

func (r *MemoryRepository) FindInventoryIntakeJobByID(_ context.Context, id string) (*model.InventoryIntakeJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.inventoryJobs, id), nil
}

func (r *MemoryRepository) UpdateInventoryIntakeJobStatus(_ context.Context, id string, u *model.IntakeJobStatusUpdate, notIn []model.IntakeJobStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.inventoryJobs[id]
	if !ok || slices.Contains(notIn, job.Status) {
		return false, nil
	}
	now := time.Now().UTC()
	job.Status, job.StatusDetails, job.UpdatedAt = u.Status, u.StatusDetails, &now
	r.inventoryJobs[id] = job
	return true, nil
}

func (r *MemoryRepository) CreateSalesIntakeJob(_ context.Context, v *model.SalesIntakeJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.salesJobs, v.ID, *v)
}

func (r *MemoryRepository) FindSalesIntakeJobByID(_ context.Context, id string) (*model.SalesIntakeJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.salesJobs, id), nil
}

func (r *MemoryRepository) UpdateSalesIntakeJobStatus(_ context.Context, id string, u *model.IntakeJobStatusUpdate, notIn []model.IntakeJobStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.salesJobs[id]
	if !ok || slices.Contains(notIn, job.Status) {
		return false, nil
	}
	now := time.Now().UTC()
	job.Status, job.StatusDetails, job.UpdatedAt = u.Status, u.StatusDetails, &now
	r.salesJobs[id] = job
	return true, nil
}

func (r *MemoryRepository) CreateInventoryProductSnapshot(_ context.Context, v *model.InventoryProductSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, *v)
	return nil
}

func (r *MemoryRepository) FindInventoryProductSnapshots(_ context.Context, f *dto.InventoryProductSnapshotFilters) ([]model.InventoryProductSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.InventoryProductSnapshot
	for _, s := range r.snapshots {
		if f.RetailerLocationID != "" && s.RetailerLocationID != f.RetailerLocationID {
			continue
		}
		if f.SKU != "" && s.SKU != f.SKU {
			continue
		}
		if f.ProductID != "" && s.ProductID != f.ProductID {
			continue
		}
		if f.InventoryIntakeJobID != "" && (s.InventoryIntakeJobID == nil || *s.InventoryIntakeJobID != f.InventoryIntakeJobID) {
			continue
		}
		out = append(out, s)
	}
	return limit(out, f.Limit), nil
}

func (r *MemoryRepository) CreateHistoricalSale(_ context.Context, v *model.HistoricalSale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.RetailerLocationID == v.RetailerLocationID && s.PosSaleID == v.PosSaleID {
			return fmt.Errorf("historical sale %s already exists for retailer location %s", v.PosSaleID, v.RetailerLocationID)
		}
	}
	r.sales = append(r.sales, *v)
	return nil
}

func (r *MemoryRepository) FindHistoricalSaleByID(_ context.Context, id string) (*model.HistoricalSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sales {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindHistoricalSales(_ context.Context, f *dto.HistoricalSaleFilters) ([]model.HistoricalSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.HistoricalSale
	for _, s := range r.sales {
		if f.RetailerLocationID != "" && s.RetailerLocationID != f.RetailerLocationID {
			continue
		}
		if f.PosSaleID != "" && s.PosSaleID != f.PosSaleID {
			continue
		}
		if f.SalesIntakeJobID != "" && (s.SalesIntakeJobID == nil || *s.SalesIntakeJobID != f.SalesIntakeJobID) {
			continue
		}
		out = append(out, s)
	}
	return limit(out, f.Limit), nil
}

func (r *MemoryRepository) CreateHistoricalSaleItem(_ context.Context, v *model.HistoricalSaleItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saleItems = append(r.saleItems, *v)
	return nil
}

func (r *MemoryRepository) FindHistoricalSaleItems(_ context.Context, f *dto.HistoricalSaleItemFilters) ([]model.HistoricalSaleItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.HistoricalSaleItem
	for _, i := range r.saleItems {
		if f.RetailerLocationID != "" && i.RetailerLocationID != f.RetailerLocationID {
			continue
		}
		if f.SKU != "" && i.SKU != f.SKU {
			continue
		}
		if f.HistoricalSaleID != "" && i.HistoricalSaleID != f.HistoricalSaleID {
			continue
		}
		if f.SalesIntakeJobID != "" && (i.SalesIntakeJobID == nil || *i.SalesIntakeJobID != f.SalesIntakeJobID) {
			continue
		}
		out = append(out, i)
	}
	return limit(out, f.Limit), nil
}
