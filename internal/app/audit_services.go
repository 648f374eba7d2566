package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// auditInboxSize bounds the buffered audit inbox. Entries beyond the buffer
// are dropped rather than blocking request handling.
const auditInboxSize = 1024

// auditFlushTimeout bounds the final drain when the worker shuts down.
const auditFlushTimeout = 10 * time.Second

// exportPageSize is the page size used when streaming a CSV export.
const exportPageSize = 500

// reportTopActors caps the most-active-users section of a report.
const reportTopActors = 10

var auditDropped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "verihome_audit_entries_dropped_total",
	Help: "Number of audit entries dropped because the inbox was full.",
})

// auditService implements the AuditService interface for the admin audit
// trail. Record hands entries to the AuditWorker through a buffered inbox.
type auditService struct {
	entryRepository activity.EntryRepository
	inbox           chan *activity.Entry
	logger          logger.Logger
}

// NewAuditService creates a new instance of AuditService together with the
// worker that drains its inbox into the repository.
func NewAuditService(entryRepository activity.EntryRepository, logger logger.Logger) (activity.AuditService, *AuditWorker, error) {
	inbox := make(chan *activity.Entry, auditInboxSize)

	service := &auditService{
		entryRepository: entryRepository,
		inbox:           inbox,
		logger:          logger,
	}
	worker := &AuditWorker{
		entryRepository: entryRepository,
		inbox:           inbox,
		logger:          logger,
	}

	return service, worker, nil
}

func (s *auditService) Record(_ context.Context, input *activity.RecordInput) {
	entry := &activity.Entry{
		ID:              uuid.New().String(),
		UserID:          input.UserID,
		Action:          input.Action,
		TargetID:        input.TargetID,
		Detail:          input.Detail,
		ClientIP:        input.ClientIP,
		UserAgent:       input.UserAgent,
		DateTimeCreated: time.Now().UTC(),
	}

	select {
	case s.inbox <- entry:
	default:
		auditDropped.Inc()
		s.logger.Warn("Audit inbox full, dropped ", input.Action, " entry")
	}
}

func (s *auditService) List(ctx context.Context, query *activity.EntryQuery) ([]*activity.Entry, error) {
	entries, err := s.entryRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return entries, nil
}

func (s *auditService) Export(ctx context.Context, query *activity.EntryQuery, w io.Writer) (int, error) {
	page := *query
	if page.Limit <= 0 {
		page.Limit = exportPageSize
	}
	page.Offset = 0

	writer := csv.NewWriter(w)
	header := []string{"id", "user_id", "action", "target_id", "detail", "client_ip", "user_agent", "created_at"}
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write export header: %w", err)
	}

	rows := 0
	for {
		entries, err := s.entryRepository.List(ctx, &page)
		if err != nil {
			return rows, fmt.Errorf("%w", err)
		}

		for _, entry := range entries {
			record := []string{
				entry.ID,
				entry.UserID,
				entry.Action,
				entry.TargetID,
				entry.Detail,
				entry.ClientIP,
				entry.UserAgent,
				entry.DateTimeCreated.UTC().Format(time.RFC3339),
			}
			if err := writer.Write(record); err != nil {
				return rows, fmt.Errorf("failed to write export row: %w", err)
			}
			rows++
		}

		if len(entries) < page.Limit {
			break
		}
		page.Offset += page.Limit
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush export: %w", err)
	}

	s.logger.Info("Exported ", rows, " audit entries")
	return rows, nil
}

func (s *auditService) BuildReport(ctx context.Context, from, to time.Time) (*activity.Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("report range ends before it starts")
	}

	entries, users, err := s.entryRepository.CountTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	byAction, err := s.entryRepository.CountByAction(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	byDay, err := s.entryRepository.CountByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	topActors, err := s.entryRepository.CountTopActors(ctx, from, to, reportTopActors)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &activity.Report{
		From:         from,
		To:           to,
		TotalEntries: entries,
		ActiveUsers:  users,
		ByAction:     byAction,
		ByDay:        byDay,
		TopActors:    topActors,
	}, nil
}

func (s *auditService) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.entryRepository.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	if deleted > 0 {
		s.logger.Info("Purged ", deleted, " audit entries created before ", cutoff.Format(time.RFC3339))
	}
	return deleted, nil
}

// AuditWorker drains the audit inbox into the entry repository so Record
// callers never block on storage.
type AuditWorker struct {
	entryRepository activity.EntryRepository
	inbox           <-chan *activity.Entry
	logger          logger.Logger
}

// Run stores queued entries until ctx is canceled, then flushes whatever is
// left in the inbox.
func (w *AuditWorker) Run(ctx context.Context) error {
	w.logger.Info("Audit worker started")
	for {
		select {
		case <-ctx.Done():
			w.flush()
			w.logger.Info("Audit worker stopped")
			return ctx.Err()
		case entry := <-w.inbox:
			w.store(ctx, entry)
		}
	}
}

func (w *AuditWorker) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), auditFlushTimeout)
	defer cancel()

	for {
		select {
		case entry := <-w.inbox:
			w.store(ctx, entry)
		default:
			return
		}
	}
}

func (w *AuditWorker) store(ctx context.Context, entry *activity.Entry) {
	if err := w.entryRepository.Create(ctx, entry); err != nil {
		w.logger.Error("Failed to store audit entry: ", err)
	}
}
