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

const (
	InventoryProcessName = "inventory_intake"
	SalesProcessName     = "sales_intake"
)

const (
	StepUpdateJobStatusToProcessing   = "Arrange - UpdateJobStatusToProcessing"
	StepGetIntegrationAndRetailerInfo = "Arrange - GetIntegrationAndRetailerInfo"
	StepRetrieveInventorySnapshots    = "Arrange - RetrieveInventorySnapshots"
	StepProcessInventorySnapshots     = "Act - ProcessInventorySnapshots"
	StepInsertInventorySnapshots      = "Act - InsertInventoryProductSnapshots"
	StepRetrieveHistoricalSales       = "Arrange - RetrieveHistoricalSales"
	StepProcessHistoricalSales        = "Act - ProcessHistoricalSales"
	StepUpdateJobStatusToComplete     = "UpdateJobStatusToComplete"
)

// ClientRegistry resolves the adapter for a platform or fails with pos.ErrUnsupportedPlatform.
type ClientRegistry interface {
	Client(platform model.PosPlatform) (pos.Client, error)
}

// ProcessError is a fatal run error tagged with the step it happened in.
type ProcessError struct {
	ProcessName string
	TraceID     string
	Step        string
	Message     string
	Err         error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s (trace %s) failed at step %q: %s", e.ProcessName, e.TraceID, e.Step, e.Message)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// StatusDetails is what operators see on the Failed job.
func (e *ProcessError) StatusDetails() string {
	return fmt.Sprintf("Step: %s - Exception occurred: %s", e.Step, e.Message)
}

// isIntegrityError reports errors that must abort the run even inside per-record loops.
func isIntegrityError(err error) bool {
	return errors.Is(err, ingestion.ErrParentNotFound)
}

type statusWriter func(ctx context.Context, u *model.IntakeJobStatusUpdate, notIn ...model.IntakeJobStatus) error

// run carries the state of one RunProcess call.
type run struct {
	process string
	traceID string
	jobID   string
	step    string
	log     logger.ZapLogger
	write   statusWriter
}

func newRun(process, traceID, jobID string, log logger.ZapLogger, write statusWriter) *run {
	return &run{
		process: process,
		traceID: traceID,
		jobID:   jobID,
		log:     log.With(zap.String("process", process), zap.String("trace_id", traceID), zap.String("job_id", jobID)),
		write:   write,
	}
}

func (r *run) enter(step string) {
	r.step = step
	r.log.Debug("entering step", zap.String("step", step))
}

func (r *run) start(ctx context.Context) error {
	r.enter(StepUpdateJobStatusToProcessing)
	return r.write(ctx, &model.IntakeJobStatusUpdate{Status: model.IntakeJobStatusProcessing}, model.IntakeJobStatusProcessing)
}

func (r *run) complete(ctx context.Context, report *Report) error {
	r.enter(StepUpdateJobStatusToComplete)
	details := report.Summary()
	if err := r.write(ctx, &model.IntakeJobStatusUpdate{Status: model.IntakeJobStatusComplete, StatusDetails: &details}); err != nil {
		return err
	}
	r.log.Info("intake job complete", zap.String("summary", details))
	return nil
}

// fail tags err with the current step and marks the job Failed. The Failed write is best-effort.
// A missing job or one owned by another run is left untouched.
func (r *run) fail(ctx context.Context, err error) error {
	perr := &ProcessError{
		ProcessName: r.process,
		TraceID:     r.traceID,
		Step:        r.step,
		Message:     err.Error(),
		Err:         err,
	}

	if !errors.Is(err, ingestion.ErrJobNotFound) && !errors.Is(err, ingestion.ErrJobAlreadyProcessing) {
		details := perr.StatusDetails()
		update := &model.IntakeJobStatusUpdate{Status: model.IntakeJobStatusFailed, StatusDetails: &details}
		if werr := r.write(context.WithoutCancel(ctx), update); werr != nil {
			r.log.Error("failed to mark intake job as failed", zap.String("step", r.step), zap.Error(werr))
		}
	}

	r.log.Error("intake process failed", zap.String("step", r.step), zap.Error(err))
	return perr
}

// recordFailure logs a per-record error and reports whether the run must stop.
func (r *run) recordFailure(report *Report, key string, err error, fields ...zap.Field) bool {
	if isIntegrityError(err) {
		return true
	}
	report.skip(key, r.step, err)
	r.log.Warn("skipping record", append(fields, zap.String("step", r.step), zap.Error(err))...)
	return false
}

func resolveIntegration(ctx context.Context, mgr ingestion.Manager, log logger.ZapLogger, retailerLocationID string) (*model.PosIntegration, error) {
	integrations, err := mgr.SearchPosIntegrations(ctx, &dto.PosIntegrationFilters{
		RetailerLocationID: retailerLocationID,
		Hydrate:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("search pos integrations: %w", err)
	}
	if len(integrations) == 0 {
		return nil, fmt.Errorf("retailer location %s: %w", retailerLocationID, ingestion.ErrIntegrationNotFound)
	}
	if len(integrations) > 1 {
		log.Warn("multiple pos integrations for retailer location, using the first",
			zap.String("retailer_location_id", retailerLocationID), zap.Int("count", len(integrations)))
	}

	integration := integrations[0]
	if integration.RetailerLocation == nil {
		return nil, fmt.Errorf("retailer location %s of integration %s: %w", integration.RetailerLocationID, integration.ID, ingestion.ErrParentNotFound)
	}
	if integration.Retailer == nil {
		return nil, fmt.Errorf("retailer %s of integration %s: %w", integration.RetailerID, integration.ID, ingestion.ErrParentNotFound)
	}
	return &integration, nil
}
