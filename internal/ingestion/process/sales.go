package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/fekuna/omnipos-intake-service/internal/pos"
	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"go.uber.org/zap"
)

type SalesProcess struct {
	mgr      ingestion.Manager
	registry ClientRegistry
	logger   logger.ZapLogger
}

func NewSalesProcess(mgr ingestion.Manager, registry ClientRegistry, log logger.ZapLogger) *SalesProcess {
	return &SalesProcess{mgr: mgr, registry: registry, logger: log}
}

// RunProcess ingests one sales job. A sale already stored for the location is skipped whole.
func (p *SalesProcess) RunProcess(ctx context.Context, jobID, traceID string) (*model.SalesIntakeJob, *Report, error) {
	report := &Report{}
	var job *model.SalesIntakeJob
	r := newRun(SalesProcessName, traceID, jobID, p.logger, func(ctx context.Context, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) error {
		updated, err := p.mgr.UpdateSalesIntakeJobStatus(ctx, jobID, u, notIn...)
		if err != nil {
			return err
		}
		job = updated
		return nil
	})
	failed := func(err error) (*model.SalesIntakeJob, *Report, error) {
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

	r.enter(StepRetrieveHistoricalSales)
	client, err := p.registry.Client(integration.PosPlatform)
	if err != nil {
		return failed(err)
	}
	sales, err := client.FetchHistoricalSales(ctx, integration.Key, job.StartTime, job.EndTime, job.SimulatorResponseID)
	if err != nil {
		return failed(err)
	}
	log.Info("retrieved historical sales", zap.Int("count", len(sales)), zap.String("pos_platform", string(integration.PosPlatform)))

	r.enter(StepProcessHistoricalSales)
	seen := map[string]*model.Product{}
	for _, sale := range sales {
		if err := p.ingestSale(ctx, r, report, job, sale, seen); err != nil {
			return failed(err)
		}
	}

	if err := r.complete(ctx, report); err != nil {
		return failed(err)
	}
	return job, report, nil
}

// ingestSale returns an error only when the run must stop. seen holds products resolved earlier in
// the run, so a SKU whose first item was not persisted still maps to a single product.
func (p *SalesProcess) ingestSale(ctx context.Context, r *run, report *Report, job *model.SalesIntakeJob, sale pos.GenericHistoricalSale, seen map[string]*model.Product) error {
	fields := []zap.Field{zap.String("pos_sale_id", sale.PosSaleID), zap.String("retailer_location_id", job.RetailerLocationID)}
	skipSale := func(err error) error {
		if r.recordFailure(report, sale.PosSaleID, err, fields...) {
			return err
		}
		return nil
	}

	if sale.PosSaleID == "" {
		return skipSale(errors.New("sale has no pos sale id"))
	}

	existing, err := p.mgr.SearchHistoricalSales(ctx, &dto.HistoricalSaleFilters{
		RetailerLocationID: job.RetailerLocationID,
		PosSaleID:          sale.PosSaleID,
		Limit:              1,
	})
	if err != nil {
		return skipSale(fmt.Errorf("search historical sales: %w", err))
	}
	if len(existing) > 0 {
		report.Results = append(report.Results, RecordResult{Key: sale.PosSaleID, Step: r.step, Outcome: OutcomeSkipped, Reason: "sale already ingested"})
		r.log.Debug("sale already ingested", fields...)
		return nil
	}

	// The header is created with the first item that resolves, so a sale whose items all fail
	// leaves nothing behind and is retried by the next run.
	var header *model.HistoricalSale
	createHeader := func() error {
		h, err := p.mgr.CreateHistoricalSale(ctx, &model.HistoricalSaleCreate{
			RetailerLocationID: job.RetailerLocationID,
			SalesIntakeJobID:   &job.ID,
			PosSaleID:          sale.PosSaleID,
			SaleTimestamp:      sale.SaleTimestamp,
			Total:              sale.Total,
			SubTotal:           sale.SubTotal,
			Discount:           sale.Discount,
			Tax:                sale.Tax,
			Cost:               sale.Cost,
		})
		if err != nil {
			return fmt.Errorf("create historical sale: %w", err)
		}
		header = h
		return nil
	}

	if len(sale.Items) == 0 {
		if err := createHeader(); err != nil {
			return skipSale(err)
		}
		return nil
	}

	for _, item := range sale.Items {
		key := sale.PosSaleID + "/" + item.SKU
		itemFields := append(fields[:len(fields):len(fields)], zap.String("sku", item.SKU))

		if item.SKU == "" {
			if err := errors.New("sale item has no sku"); r.recordFailure(report, key, err, itemFields...) {
				return err
			}
			continue
		}

		product, outcome := seen[item.SKU], OutcomeLinked
		if product == nil {
			var err error
			product, outcome, err = resolveProduct(ctx, p.mgr, job.RetailerLocationID, item.SKU, productName(item))
			if err != nil {
				if r.recordFailure(report, key, err, itemFields...) {
					return err
				}
				continue
			}
			seen[item.SKU] = product
		}

		if header == nil {
			if err := createHeader(); err != nil {
				return skipSale(err)
			}
		}

		_, err := p.mgr.CreateHistoricalSaleItem(ctx, &model.HistoricalSaleItemCreate{
			HistoricalSaleID: header.ID,
			ProductID:        product.ID,
			SKU:              item.SKU,
			SaleCount:        item.Quantity,
			SaleTimestamp:    item.SaleTimestamp,
			Total:            item.Total,
			SaleProductName:  item.SaleProductName,
			LotIdentifier:    item.LotIdentifier,
			PosSaleID:        item.PosSaleID,
			PosProductID:     item.PosProductID,
			UnitOfWeight:     item.UnitOfWeight,
			WeightInUnits:    item.WeightInUnits,
			SubTotal:         item.SubTotal,
			Discount:         item.Discount,
			Tax:              item.Tax,
			Cost:             item.Cost,
		})
		if err != nil {
			if r.recordFailure(report, key, fmt.Errorf("create historical sale item: %w", err), itemFields...) {
				return err
			}
			continue
		}
		report.add(key, r.step, outcome)
	}
	return nil
}

func productName(item pos.GenericHistoricalSaleItem) string {
	if item.ProductName != nil {
		return *item.ProductName
	}
	if item.SaleProductName != nil {
		return *item.SaleProductName
	}
	return ""
}
