package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventTypeIntakeJobRequested = "IntakeJobRequested"

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type IntakeJobListener struct {
	consumer   MessageReader
	uc         ingestion.UseCase
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewIntakeJobListener(consumer MessageReader, uc ingestion.UseCase, log logger.ZapLogger) *IntakeJobListener {
	return &IntakeJobListener{
		consumer:   consumer,
		uc:         uc,
		logger:     log,
		retryDelay: time.Second,
	}
}

// Start consumes until ctx is done.
func (l *IntakeJobListener) Start(ctx context.Context) {
	l.logger.Info("Starting intake job Kafka listener")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping intake job Kafka listener")
				return
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.retryDelay):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

type IntakeJobRequestedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   IntakeJobPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type IntakeJobPayload struct {
	JobID   string            `json:"job_id"`
	JobKind ingestion.JobKind `json:"job_kind"`
}

func (l *IntakeJobListener) processMessage(ctx context.Context, value []byte) {
	var event IntakeJobRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}
	if event.EventType != EventTypeIntakeJobRequested {
		return
	}

	log := l.logger.With(
		zap.String("event_id", event.EventID),
		zap.String("job_id", event.Payload.JobID),
		zap.String("job_kind", string(event.Payload.JobKind)),
	)
	log.Info("Processing IntakeJobRequested event")

	var (
		res *ingestion.RunResult
		err error
	)
	switch event.Payload.JobKind {
	case ingestion.JobKindInventory:
		res, err = l.uc.RunInventoryIntakeJob(ctx, event.Payload.JobID)
	case ingestion.JobKindSales:
		res, err = l.uc.RunSalesIntakeJob(ctx, event.Payload.JobID)
	default:
		log.Warn("Unknown intake job kind")
		return
	}
	if err != nil {
		log.Error("Failed to run intake job", zap.Error(err))
		return
	}
	log.Info("Intake job finished", zap.String("status", string(res.Status)), zap.String("trace_id", res.TraceID))
}
