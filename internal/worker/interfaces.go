package worker

import (
	"context"

	"github.com/sathesh-kumar-v/comply/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// AssessmentRefresher recomputes and persists engine scores for one
// action. Mirrors the action service method - defined here to avoid
// import cycles.
type AssessmentRefresher interface {
	RefreshAssessment(ctx context.Context, actionID string) error
}
