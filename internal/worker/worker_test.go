package worker_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sathesh-kumar-v/comply/internal/queue"
	"github.com/sathesh-kumar-v/comply/internal/store"
	"github.com/sathesh-kumar-v/comply/internal/worker"
)

func eventMessage(id, actionID string, attempt int) queue.Message {
	return queue.Message{
		ID:        id,
		ActionID:  actionID,
		EventType: queue.EventActionUpdated,
		Attempt:   attempt,
	}
}

var _ = Describe("Worker", func() {
	var (
		consumer  *mockConsumer
		refresher *mockRefresher
		w         *worker.Worker
	)

	startWorker := func() {
		w = worker.New(consumer, refresher, worker.Config{MaxAttempts: 3})
		go func() {
			defer GinkgoRecover()
			_ = w.Run(context.Background())
		}()
	}

	BeforeEach(func() {
		consumer = &mockConsumer{}
		refresher = &mockRefresher{}
	})

	AfterEach(func() {
		w.Stop()
	})

	It("refreshes the action and acks the message", func() {
		consumer.batches = [][]queue.Message{{eventMessage("10-0", "CA-2025-001", 1)}}

		startWorker()

		Eventually(consumer.ackedIDs).Should(ConsistOf("10-0"))
		Expect(refresher.refreshedIDs()).To(ConsistOf("CA-2025-001"))
		Expect(consumer.requeuedIDs()).To(BeEmpty())
		Expect(consumer.dlqIDs()).To(BeEmpty())
	})

	It("processes every message in a batch", func() {
		consumer.batches = [][]queue.Message{{
			eventMessage("11-0", "CA-2025-001", 1),
			eventMessage("11-1", "CA-2025-004", 1),
		}}

		startWorker()

		Eventually(consumer.ackedIDs).Should(ConsistOf("11-0", "11-1"))
		Expect(refresher.refreshedIDs()).To(Equal([]string{"CA-2025-001", "CA-2025-004"}))
	})

	It("drops events for actions that no longer exist", func() {
		refresher.refreshFn = func(_ context.Context, actionID string) error {
			return fmt.Errorf("action %s: %w", actionID, store.ErrNotFound)
		}
		consumer.batches = [][]queue.Message{{eventMessage("12-0", "CA-2099-001", 1)}}

		startWorker()

		Eventually(consumer.ackedIDs).Should(ConsistOf("12-0"))
		Expect(consumer.requeuedIDs()).To(BeEmpty())
		Expect(consumer.dlqIDs()).To(BeEmpty())
	})

	It("requeues a failed refresh below the attempt limit", func() {
		refresher.refreshFn = func(context.Context, string) error {
			return errors.New("store unavailable")
		}
		consumer.batches = [][]queue.Message{{eventMessage("13-0", "CA-2025-002", 1)}}

		startWorker()

		Eventually(consumer.requeuedIDs).Should(ConsistOf("13-0"))
		Expect(consumer.lastErrMsg()).To(ContainSubstring("store unavailable"))
		Expect(consumer.dlqIDs()).To(BeEmpty())
	})

	It("dead-letters once attempts are exhausted", func() {
		refresher.refreshFn = func(context.Context, string) error {
			return errors.New("store unavailable")
		}
		consumer.batches = [][]queue.Message{{eventMessage("14-0", "CA-2025-002", 3)}}

		startWorker()

		Eventually(consumer.dlqIDs).Should(ConsistOf("14-0"))
		Expect(consumer.requeuedIDs()).To(BeEmpty())
	})

	It("recovers from a panicking refresh and retries the message", func() {
		refresher.refreshFn = func(context.Context, string) error {
			panic("boom")
		}
		consumer.batches = [][]queue.Message{{eventMessage("15-0", "CA-2025-003", 1)}}

		startWorker()

		Eventually(consumer.requeuedIDs).Should(ConsistOf("15-0"))
		Expect(consumer.lastErrMsg()).To(ContainSubstring("panic"))
	})
})

var _ = Describe("ProcessMessage", func() {
	It("returns the refresh error without acking", func() {
		consumer := &mockConsumer{}
		refresher := &mockRefresher{refreshFn: func(context.Context, string) error {
			return errors.New("write failed")
		}}
		w := worker.New(consumer, refresher, worker.Config{MaxAttempts: 3})

		err := w.ProcessMessage(context.Background(), eventMessage("20-0", "CA-2025-005", 1))

		Expect(err).To(MatchError(ContainSubstring("write failed")))
		Expect(consumer.ackedIDs()).To(BeEmpty())
	})
})
