package ingestion

import (
	"context"

	"github.com/fekuna/omnipos-intake-service/internal/model"
)

type JobKind string

const (
	JobKindInventory JobKind = "inventory"
	JobKindSales     JobKind = "sales"
)

// RunResult summarises one run of an intake job.
type RunResult struct {
	JobID         string                `json:"job_id"`
	Kind          JobKind               `json:"job_kind"`
	TraceID       string                `json:"trace_id"`
	Status        model.IntakeJobStatus `json:"status"`
	StatusDetails string                `json:"status_details"`
	Created       int                   `json:"created"`
	Linked        int                   `json:"linked"`
	Skipped       int                   `json:"skipped"`
}

type UseCase interface {
	RunInventoryIntakeJob(ctx context.Context, id string) (*RunResult, error)
	RunSalesIntakeJob(ctx context.Context, id string) (*RunResult, error)
}
