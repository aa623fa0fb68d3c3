package process_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/internal/ingestion/process"
	"github.com/fekuna/omnipos-intake-service/internal/manager"
	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/manager/repository"
	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/fekuna/omnipos-intake-service/internal/pos"
	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"github.com/shopspring/decimal"
)

type fakeClient struct {
	mu        sync.Mutex
	inventory []pos.GenericInventoryRecord
	sales     []pos.GenericHistoricalSale
	err       error

	gotKey        string
	gotStart      time.Time
	gotEnd        *time.Time
	gotSimulation *string
}

func (c *fakeClient) FetchInventory(_ context.Context, key string, sim *string) ([]pos.GenericInventoryRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gotKey, c.gotSimulation = key, sim
	return c.inventory, c.err
}

func (c *fakeClient) FetchHistoricalSales(_ context.Context, key string, start time.Time, end *time.Time, sim *string) ([]pos.GenericHistoricalSale, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gotKey, c.gotStart, c.gotEnd, c.gotSimulation = key, start, end, sim
	return c.sales, c.err
}

// hookedManager lets a test inject failures and observe status writes.
type hookedManager struct {
	ingestion.Manager

	searchSnapshotsErr func(sku string) error
	createSnapshotErr  func(in *model.InventoryProductSnapshotCreate) error
	createSaleErr      func(in *model.HistoricalSaleCreate) error
	failFailedWrite    bool

	statuses []model.IntakeJobStatus
}

func (m *hookedManager) SearchInventoryProductSnapshots(ctx context.Context, f *dto.InventoryProductSnapshotFilters) ([]model.InventoryProductSnapshot, error) {
	if m.searchSnapshotsErr != nil {
		if err := m.searchSnapshotsErr(f.SKU); err != nil {
			return nil, err
		}
	}
	return m.Manager.SearchInventoryProductSnapshots(ctx, f)
}

func (m *hookedManager) CreateInventoryProductSnapshot(ctx context.Context, in *model.InventoryProductSnapshotCreate) (*model.InventoryProductSnapshot, error) {
	if m.createSnapshotErr != nil {
		if err := m.createSnapshotErr(in); err != nil {
			return nil, err
		}
	}
	return m.Manager.CreateInventoryProductSnapshot(ctx, in)
}

func (m *hookedManager) CreateHistoricalSale(ctx context.Context, in *model.HistoricalSaleCreate) (*model.HistoricalSale, error) {
	if m.createSaleErr != nil {
		if err := m.createSaleErr(in); err != nil {
			return nil, err
		}
	}
	return m.Manager.CreateHistoricalSale(ctx, in)
}

func (m *hookedManager) UpdateInventoryIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) (*model.InventoryIntakeJob, error) {
	m.statuses = append(m.statuses, u.Status)
	if m.failFailedWrite && u.Status == model.IntakeJobStatusFailed {
		return nil, errStatusWrite
	}
	return m.Manager.UpdateInventoryIntakeJobStatus(ctx, id, u, notIn...)
}

func (m *hookedManager) UpdateSalesIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) (*model.SalesIntakeJob, error) {
	m.statuses = append(m.statuses, u.Status)
	if m.failFailedWrite && u.Status == model.IntakeJobStatusFailed {
		return nil, errStatusWrite
	}
	return m.Manager.UpdateSalesIntakeJobStatus(ctx, id, u, notIn...)
}

type testError string

func (e testError) Error() string { return string(e) }

const errStatusWrite = testError("status store unavailable")

type fixture struct {
	ctx      context.Context
	repo     *repository.MemoryRepository
	mgr      *manager.Manager
	hooks    *hookedManager
	client   *fakeClient
	registry *pos.Registry
	retailer *model.Retailer
	location *model.RetailerLocation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	mgr := manager.NewManager(repo)

	retailer, err := mgr.CreateRetailer(ctx, "Green Leaf")
	if err != nil {
		t.Fatalf("create retailer: %v", err)
	}
	location, err := mgr.CreateRetailerLocation(ctx, retailer.ID, "Downtown")
	if err != nil {
		t.Fatalf("create location: %v", err)
	}

	client := &fakeClient{}
	return &fixture{
		ctx:      ctx,
		repo:     repo,
		mgr:      mgr,
		hooks:    &hookedManager{Manager: mgr},
		client:   client,
		registry: pos.NewRegistry(map[model.PosPlatform]pos.Client{model.PosPlatformPosabit: client}),
		retailer: retailer,
		location: location,
	}
}

func (f *fixture) addIntegration(t *testing.T, platform model.PosPlatform) *model.PosIntegration {
	t.Helper()
	i, err := f.mgr.CreatePosIntegration(f.ctx, &model.PosIntegrationCreate{
		RetailerLocationID: f.location.ID,
		Name:               "pos",
		URL:                "https://pos.example",
		Key:                "secret-key",
		PosPlatform:        platform,
	})
	if err != nil {
		t.Fatalf("create integration: %v", err)
	}
	return i
}

func (f *fixture) inventoryJob(t *testing.T) *model.InventoryIntakeJob {
	t.Helper()
	job, err := f.mgr.CreateInventoryIntakeJob(f.ctx, &model.InventoryIntakeJobCreate{
		RetailerLocationID: f.location.ID,
		SnapshotHour:       time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create inventory job: %v", err)
	}
	return job
}

func (f *fixture) salesJob(t *testing.T) *model.SalesIntakeJob {
	t.Helper()
	end := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	job, err := f.mgr.CreateSalesIntakeJob(f.ctx, &model.SalesIntakeJobCreate{
		RetailerLocationID: f.location.ID,
		StartTime:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndTime:            &end,
	})
	if err != nil {
		t.Fatalf("create sales job: %v", err)
	}
	return job
}

func (f *fixture) inventoryProcess() *process.InventoryProcess {
	return process.NewInventoryProcess(f.hooks, f.registry, logger.NewNop())
}

func (f *fixture) salesProcess() *process.SalesProcess {
	return process.NewSalesProcess(f.hooks, f.registry, logger.NewNop())
}

func (f *fixture) snapshots(t *testing.T, jobID string) []model.InventoryProductSnapshot {
	t.Helper()
	out, err := f.repo.FindInventoryProductSnapshots(f.ctx, &dto.InventoryProductSnapshotFilters{InventoryIntakeJobID: jobID})
	if err != nil {
		t.Fatalf("find snapshots: %v", err)
	}
	return out
}

func (f *fixture) product(t *testing.T, id string) *model.Product {
	t.Helper()
	p, err := f.repo.FindProductByID(f.ctx, id)
	if err != nil || p == nil {
		t.Fatalf("find product %s: %v", id, err)
	}
	return p
}

func record(sku string) pos.GenericInventoryRecord {
	return pos.GenericInventoryRecord{
		SKU:         sku,
		StockOnHand: decimal.NewFromInt(5),
		Price:       1999,
		ProductName: "Product " + sku,
	}
}
