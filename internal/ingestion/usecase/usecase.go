package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/internal/ingestion/process"
	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/fekuna/omnipos-intake-service/pkg/cache"
	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const traceIDLength = 20

// Locker is satisfied by *cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (*cache.Lock, error)
}

type Options struct {
	// Locker may be nil, in which case runs are not serialised across replicas.
	Locker  Locker
	LockTTL time.Duration
	Metrics MetricsRecorder
}

type intakeUseCase struct {
	inventory *process.InventoryProcess
	sales     *process.SalesProcess
	locker    Locker
	lockTTL   time.Duration
	metrics   MetricsRecorder
	logger    logger.ZapLogger
}

func NewIntakeUseCase(inventory *process.InventoryProcess, sales *process.SalesProcess, opts Options, log logger.ZapLogger) ingestion.UseCase {
	uc := &intakeUseCase{
		inventory: inventory,
		sales:     sales,
		locker:    opts.Locker,
		lockTTL:   opts.LockTTL,
		metrics:   opts.Metrics,
		logger:    log,
	}
	if uc.metrics == nil {
		uc.metrics = nopRecorder{}
	}
	if uc.lockTTL <= 0 {
		uc.lockTTL = 15 * time.Minute
	}
	return uc
}

// NewTraceID returns a 20 character lowercase alphanumeric id.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:traceIDLength]
}

type runOutcome struct {
	status  model.IntakeJobStatus
	details *string
	report  *process.Report
	err     error
}

func (uc *intakeUseCase) RunInventoryIntakeJob(ctx context.Context, id string) (*ingestion.RunResult, error) {
	return uc.runJob(ctx, ingestion.JobKindInventory, process.InventoryProcessName, id, func(ctx context.Context, traceID string) runOutcome {
		job, report, err := uc.inventory.RunProcess(ctx, id, traceID)
		out := runOutcome{report: report, err: err}
		if job != nil {
			out.status, out.details = job.Status, job.StatusDetails
		}
		return out
	})
}

func (uc *intakeUseCase) RunSalesIntakeJob(ctx context.Context, id string) (*ingestion.RunResult, error) {
	return uc.runJob(ctx, ingestion.JobKindSales, process.SalesProcessName, id, func(ctx context.Context, traceID string) runOutcome {
		job, report, err := uc.sales.RunProcess(ctx, id, traceID)
		out := runOutcome{report: report, err: err}
		if job != nil {
			out.status, out.details = job.Status, job.StatusDetails
		}
		return out
	})
}

func (uc *intakeUseCase) runJob(ctx context.Context, kind ingestion.JobKind, processName, id string, fn func(context.Context, string) runOutcome) (*ingestion.RunResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ingestion.ErrInvalidJobID, id)
	}

	traceID := NewTraceID()
	log := uc.logger.With(zap.String("job_kind", string(kind)), zap.String("job_id", id), zap.String("trace_id", traceID))

	lock, err := uc.acquire(ctx, kind, id)
	if err != nil {
		log.Warn("intake job lock not acquired", zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			log.Error("failed to release intake job lock", zap.Error(err))
		}
	}()

	started := time.Now()
	out := fn(ctx, traceID)
	elapsed := time.Since(started)

	label := "rejected"
	if out.status != "" {
		label = strings.ToLower(string(out.status))
	}
	uc.metrics.ObserveRun(processName, label, out.report, elapsed)

	if out.status == "" {
		return nil, out.err
	}

	res := &ingestion.RunResult{
		JobID:   id,
		Kind:    kind,
		TraceID: traceID,
		Status:  out.status,
	}
	if out.details != nil {
		res.StatusDetails = *out.details
	}
	if out.report != nil {
		res.Created = out.report.Count(process.OutcomeCreated)
		res.Linked = out.report.Count(process.OutcomeLinked)
		res.Skipped = out.report.Count(process.OutcomeSkipped)
	}
	log.Info("intake job run finished",
		zap.String("status", string(res.Status)),
		zap.Duration("elapsed", elapsed),
		zap.Int("created", res.Created),
		zap.Int("linked", res.Linked),
		zap.Int("skipped", res.Skipped),
	)
	return res, out.err
}

func (uc *intakeUseCase) acquire(ctx context.Context, kind ingestion.JobKind, id string) (*cache.Lock, error) {
	if uc.locker == nil {
		return nil, nil
	}
	key := fmt.Sprintf("lock:intake:%s:%s", kind, id)
	lock, err := uc.locker.AcquireLock(ctx, key, uc.lockTTL)
	if errors.Is(err, cache.ErrLockNotObtained) {
		return nil, fmt.Errorf("%w: %s", ingestion.ErrJobLocked, key)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	return lock, nil
}
