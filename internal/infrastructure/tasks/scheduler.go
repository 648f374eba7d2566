package tasks

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

type scheduleEntry struct {
	kind     Kind
	interval time.Duration
	payload  interface{}
}

// Scheduler enqueues recurring tasks on fixed intervals. Schedules are
// registered before Run; the queue's workers do the actual work.
type Scheduler struct {
	queue   Enqueuer
	entries []scheduleEntry
	logger  logger.Logger
}

// NewScheduler creates and returns a new instance of Scheduler
func NewScheduler(queue Enqueuer, logger logger.Logger) *Scheduler {
	return &Scheduler{
		queue:  queue,
		logger: logger,
	}
}

// Every schedules a task of the given kind on the interval
func (s *Scheduler) Every(interval time.Duration, kind Kind, payload interface{}) {
	s.entries = append(s.entries, scheduleEntry{
		kind:     kind,
		interval: interval,
		payload:  payload,
	})
}

// Run fires the registered schedules until the context is canceled
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.entries) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range s.entries {
		entry := entry // per-iteration copy; required while go.mod targets go < 1.22
		g.Go(func() error {
			ticker := time.NewTicker(entry.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					s.queue.Enqueue(Task{Kind: entry.kind, Payload: entry.payload})
				}
			}
		})
	}
	return g.Wait()
}
