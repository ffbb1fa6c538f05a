package worker_test

import (
	"context"
	"sync"
	"time"

	"github.com/sathesh-kumar-v/comply/internal/queue"
)

// mockConsumer serves queued batches once, then empty reads. Counters
// are mutex guarded because the worker loop runs on its own goroutine.
type mockConsumer struct {
	mu      sync.Mutex
	batches [][]queue.Message

	acked    []string
	requeued []string
	dlq      []string
	lastErr  string

	ackFn func(ctx context.Context, msg queue.Message) error
}

func (m *mockConsumer) Read(_ context.Context) ([]queue.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.batches) == 0 {
		// Approximates the blocking read so the loop does not spin.
		time.Sleep(time.Millisecond)
		return []queue.Message{}, nil
	}
	batch := m.batches[0]
	m.batches = m.batches[1:]
	return batch, nil
}

func (m *mockConsumer) Ack(ctx context.Context, msg queue.Message) error {
	m.mu.Lock()
	m.acked = append(m.acked, msg.ID)
	m.mu.Unlock()
	if m.ackFn != nil {
		return m.ackFn(ctx, msg)
	}
	return nil
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, msg.ID)
	m.lastErr = errMsg
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, msg.ID)
	m.lastErr = errMsg
	return nil
}

func (m *mockConsumer) ackedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.acked...)
}

func (m *mockConsumer) requeuedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requeued...)
}

func (m *mockConsumer) dlqIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.dlq...)
}

func (m *mockConsumer) lastErrMsg() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

type mockRefresher struct {
	mu        sync.Mutex
	refreshed []string
	refreshFn func(ctx context.Context, actionID string) error
}

func (m *mockRefresher) RefreshAssessment(ctx context.Context, actionID string) error {
	m.mu.Lock()
	m.refreshed = append(m.refreshed, actionID)
	m.mu.Unlock()
	if m.refreshFn != nil {
		return m.refreshFn(ctx, actionID)
	}
	return nil
}

func (m *mockRefresher) refreshedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.refreshed...)
}
