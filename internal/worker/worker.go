package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/sathesh-kumar-v/comply/common/logger"
	"github.com/sathesh-kumar-v/comply/internal/queue"
	"github.com/sathesh-kumar-v/comply/internal/store"
)

type Config struct {
	MaxAttempts int
}

// Worker drains the action event stream and refreshes stored engine
// scores so dashboard reads stay warm.
type Worker struct {
	consumer  Consumer
	refresher AssessmentRefresher
	cfg       Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, refresher AssessmentRefresher, cfg Config) *Worker {
	return &Worker{
		consumer:  consumer,
		refresher: refresher,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessageSafe(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "message processing failed",
				"error", err,
				"message_id", msg.ID,
				"action_id", msg.ActionID)
			w.handleFailedMessage(ctx, msg, err)
		}
	}

	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"action_id", msg.ActionID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage refreshes one action's stored assessment. Exported so
// it can be reused by the reclaimer.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.process_message",
		trace.WithSpanKind(trace.SpanKindConsumer))
	defer sc.End()
	ctx = sc.Context()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ActionID:  &msg.ActionID,
		MessageID: &msg.ID,
		EventType: logger.Ptr(string(msg.EventType)),
		Component: "comply.worker",
	})

	slog.InfoContext(ctx, "processing action event", "attempt", msg.Attempt)

	if err := w.refresher.RefreshAssessment(ctx, msg.ActionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The action is gone; redelivery cannot succeed.
			slog.WarnContext(ctx, "action missing, dropping event")
		} else {
			sc.RecordError(err)
			return fmt.Errorf("refreshing assessment: %w", err)
		}
	} else {
		slog.InfoContext(ctx, "assessment refreshed")
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// Log but don't fail - the reclaimer will re-deliver and the
		// refresh is idempotent.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}

	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"action_id", msg.ActionID,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"action_id", msg.ActionID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
