package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

// Kind identifies the handler responsible for a task.
type Kind string

// Task kinds with registered handlers.
const (
	KindEmailDelivery  Kind = "email_delivery"
	KindMatchExpiry    Kind = "match_expiry"
	KindLeaseExpiry    Kind = "lease_expiry"
	KindPaymentOverdue Kind = "payment_overdue"
	KindActivityPurge  Kind = "activity_purge"
)

// drainTimeout bounds how long queued tasks may keep running after
// shutdown begins.
const drainTimeout = 30 * time.Second

var (
	tasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verihome_tasks_processed_total",
		Help: "Background tasks processed, partitioned by kind and outcome.",
	}, []string{"kind", "status"})

	tasksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verihome_tasks_dropped_total",
		Help: "Background tasks dropped because the queue was full.",
	})
)

// Task is one unit of background work.
type Task struct {
	Kind    Kind
	Payload interface{}
}

// Handler processes tasks of a single kind.
type Handler func(ctx context.Context, task Task) error

// Enqueuer accepts background tasks without blocking.
type Enqueuer interface {
	// Enqueue queues the task and reports whether it was accepted.
	Enqueue(task Task) bool
}

// Queue is the in-process task queue drained by a fixed worker pool.
type Queue struct {
	tasks    chan Task
	handlers map[Kind]Handler
	workers  int
	logger   logger.Logger
	mu       sync.RWMutex
}

// NewQueue creates and returns a new instance of Queue
func NewQueue(settings *config.TasksSettings, logger logger.Logger) (*Queue, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tasks settings: %w", err)
	}

	return &Queue{
		tasks:    make(chan Task, settings.QueueSize),
		handlers: make(map[Kind]Handler),
		workers:  settings.Workers,
		logger:   logger,
	}, nil
}

// Register binds a handler to a task kind. Registering a kind twice is a
// wiring bug and returns an error.
func (q *Queue) Register(kind Kind, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.handlers[kind]; ok {
		return fmt.Errorf("handler already registered for task kind %q", kind)
	}
	q.handlers[kind] = handler
	return nil
}

// Enqueue queues the task. Tasks are dropped when the queue is full so
// request handling never blocks on background work.
func (q *Queue) Enqueue(task Task) bool {
	select {
	case q.tasks <- task:
		return true
	default:
		tasksDropped.Inc()
		q.logger.Warn("Task queue full, dropping ", string(task.Kind), " task")
		return false
	}
}

// Run starts the worker pool and blocks until the context is canceled.
// Tasks still queued at shutdown are drained before returning.
func (q *Queue) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < q.workers; i++ {
		g.Go(func() error {
			return q.worker(ctx)
		})
	}
	return g.Wait()
}

func (q *Queue) worker(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.drain()
			return ctx.Err()
		case task := <-q.tasks:
			q.process(ctx, task)
		}
	}
}

// drain processes whatever is already queued under a fresh bounded context
func (q *Queue) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case task := <-q.tasks:
			q.process(ctx, task)
		default:
			return
		}
	}
}

func (q *Queue) process(ctx context.Context, task Task) {
	q.mu.RLock()
	handler, ok := q.handlers[task.Kind]
	q.mu.RUnlock()

	if !ok {
		q.logger.Error("No handler registered for task kind ", string(task.Kind))
		tasksProcessed.WithLabelValues(string(task.Kind), "failed").Inc()
		return
	}

	// A panicking handler must not take down the worker pool
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Task handler panicked for kind ", string(task.Kind), ": ", r)
			tasksProcessed.WithLabelValues(string(task.Kind), "failed").Inc()
		}
	}()

	if err := handler(ctx, task); err != nil {
		q.logger.Error("Task ", string(task.Kind), " failed: ", err)
		tasksProcessed.WithLabelValues(string(task.Kind), "failed").Inc()
		return
	}
	tasksProcessed.WithLabelValues(string(task.Kind), "succeeded").Inc()
}
