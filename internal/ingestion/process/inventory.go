package process

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/fekuna/omnipos-intake-service/internal/pos"
	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"go.uber.org/zap"
)

type InventoryProcess struct {
	mgr      ingestion.Manager
	registry ClientRegistry
	logger   logger.ZapLogger
}

func NewInventoryProcess(mgr ingestion.Manager, registry ClientRegistry, log logger.ZapLogger) *InventoryProcess {
	return &InventoryProcess{mgr: mgr, registry: registry, logger: log}
}

type snapshotDraft struct {
	create  model.InventoryProductSnapshotCreate
	outcome Outcome
}

// RunProcess ingests one inventory snapshot job. The report is returned even when the run fails.
func (p *InventoryProcess) RunProcess(ctx context.Context, jobID, traceID string) (*model.InventoryIntakeJob, *Report, error) {
	report := &Report{}
	var job *model.InventoryIntakeJob
	r := newRun(InventoryProcessName, traceID, jobID, p.logger, func(ctx context.Context, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) error {
		updated, err := p.mgr.UpdateInventoryIntakeJobStatus(ctx, jobID, u, notIn...)
		if err != nil {
			return err
		}
		job = updated
		return nil
	})

	failed := func(err error) (*model.InventoryIntakeJob, *Report, error) {
		ferr := r.fail(ctx, err)
		return job, report, ferr
	}

	if err := r.start(ctx); err != nil {
		return failed(err)
	}
	log := r.log.With(zap.String("retailer_location_id", job.RetailerLocationID))

	r.enter(StepGetIntegrationAndRetailerInfo)
	integration, err := resolveIntegration(ctx, p.mgr, log, job.RetailerLocationID)
	if err != nil {
		return failed(err)
	}

	r.enter(StepRetrieveInventorySnapshots)
	client, err := p.registry.Client(integration.PosPlatform)
	if err != nil {
		return failed(err)
	}
	records, err := client.FetchInventory(ctx, integration.Key, job.SimulatorResponseID)
	if err != nil {
		return failed(err)
	}
	log.Info("retrieved inventory records", zap.Int("count", len(records)), zap.String("pos_platform", string(integration.PosPlatform)))

	r.enter(StepProcessInventorySnapshots)
	drafts := make([]snapshotDraft, 0, len(records))
	seen := map[string]*model.Product{}
	for _, rec := range records {
		draft, err := p.prepareSnapshot(ctx, job, integration, rec, seen)
		if err != nil {
			if r.recordFailure(report, rec.SKU, err, zap.String("sku", rec.SKU), zap.String("retailer_location_id", job.RetailerLocationID)) {
				return failed(err)
			}
			continue
		}
		drafts = append(drafts, draft)
	}

	r.enter(StepInsertInventorySnapshots)
	for _, d := range drafts {
		if _, err := p.mgr.CreateInventoryProductSnapshot(ctx, &d.create); err != nil {
			if r.recordFailure(report, d.create.SKU, err, zap.String("sku", d.create.SKU), zap.String("retailer_location_id", job.RetailerLocationID)) {
				return failed(err)
			}
			continue
		}
		report.add(d.create.SKU, r.step, d.outcome)
	}

	if err := r.complete(ctx, report); err != nil {
		return failed(err)
	}
	return job, report, nil
}

// prepareSnapshot builds the draft for rec. seen holds products resolved earlier in the batch,
// since their snapshots are not persisted yet and reconciliation cannot find them.
func (p *InventoryProcess) prepareSnapshot(ctx context.Context, job *model.InventoryIntakeJob, integration *model.PosIntegration, rec pos.GenericInventoryRecord, seen map[string]*model.Product) (snapshotDraft, error) {
	if rec.SKU == "" {
		return snapshotDraft{}, errors.New("inventory record has no sku")
	}

	product, outcome := seen[rec.SKU], OutcomeLinked
	if product == nil {
		var err error
		product, outcome, err = resolveProduct(ctx, p.mgr, job.RetailerLocationID, rec.SKU, rec.ProductName)
		if err != nil {
			return snapshotDraft{}, err
		}
		seen[rec.SKU] = product
	}

	jobID := job.ID
	return snapshotDraft{
		create: model.InventoryProductSnapshotCreate{
			ProductID:            product.ID,
			InventoryIntakeJobID: &jobID,
			RetailerLocationID:   integration.RetailerLocationID,
			SnapshotHour:         job.SnapshotHour,
			SKU:                  rec.SKU,
			StockOnHand:          rec.StockOnHand,
			Price:                rec.Price,
		},
		outcome: outcome,
	}, nil
}
