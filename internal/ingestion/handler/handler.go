package handler

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type IntakeJobHandler struct {
	uc     ingestion.UseCase
	logger logger.ZapLogger
}

var _ IntakeJobServiceServer = (*IntakeJobHandler)(nil)

func NewIntakeJobHandler(uc ingestion.UseCase, log logger.ZapLogger) *IntakeJobHandler {
	return &IntakeJobHandler{uc: uc, logger: log}
}

func (h *IntakeJobHandler) RunInventoryIntakeJob(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	res, err := h.uc.RunInventoryIntakeJob(ctx, req.GetValue())
	return h.respond(ingestion.JobKindInventory, req.GetValue(), res, err)
}

func (h *IntakeJobHandler) RunSalesIntakeJob(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	res, err := h.uc.RunSalesIntakeJob(ctx, req.GetValue())
	return h.respond(ingestion.JobKindSales, req.GetValue(), res, err)
}

func (h *IntakeJobHandler) respond(kind ingestion.JobKind, id string, res *ingestion.RunResult, err error) (*structpb.Struct, error) {
	if err != nil {
		code := statusCode(err)
		if code == codes.Internal {
			h.logger.Error("intake job run failed", zap.String("job_kind", string(kind)), zap.String("job_id", id), zap.Error(err))
		}
		return nil, status.Error(code, err.Error())
	}

	out, err := structpb.NewStruct(map[string]any{
		"job_id":         res.JobID,
		"job_kind":       string(res.Kind),
		"trace_id":       res.TraceID,
		"status":         string(res.Status),
		"status_details": res.StatusDetails,
		"created":        res.Created,
		"linked":         res.Linked,
		"skipped":        res.Skipped,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func statusCode(err error) codes.Code {
	switch {
	case errors.Is(err, ingestion.ErrInvalidJobID):
		return codes.InvalidArgument
	case errors.Is(err, ingestion.ErrJobNotFound):
		return codes.NotFound
	case errors.Is(err, ingestion.ErrJobLocked),
		errors.Is(err, ingestion.ErrJobAlreadyProcessing),
		errors.Is(err, ingestion.ErrJobStatusConflict):
		return codes.Aborted
	default:
		return codes.Internal
	}
}
