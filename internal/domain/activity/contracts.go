package activity

import (
	"context"
	"io"
	"time"
)

// RecordInput carries the fields of one audit record.
type RecordInput struct {
	UserID    string
	Action    string
	TargetID  string
	Detail    string
	ClientIP  string
	UserAgent string
}

// Recorder accepts audit records. Implementations enqueue the write so
// callers never block on audit persistence.
type Recorder interface {
	// Record enqueues one audit entry.
	Record(ctx context.Context, input *RecordInput)
}

// AuditService defines methods for the admin audit console
type AuditService interface {
	Recorder
	// List retrieves audit entries matching the query filters.
	List(ctx context.Context, query *EntryQuery) ([]*Entry, error)
	// Export writes the matching entries to w as CSV and returns the number
	// of rows written.
	Export(ctx context.Context, query *EntryQuery, w io.Writer) (int, error)
	// BuildReport aggregates activity between from and to.
	BuildReport(ctx context.Context, from, to time.Time) (*Report, error)
	// Purge deletes entries created before the cutoff and returns the
	// number of rows deleted.
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

// EntryRepository defines methods for audit entry persistence
type EntryRepository interface {
	// Create stores a new audit entry.
	Create(ctx context.Context, entry *Entry) error
	// List retrieves audit entries matching the query filters.
	List(ctx context.Context, query *EntryQuery) ([]*Entry, error)
	// CountByAction aggregates entry counts per action between from and to.
	CountByAction(ctx context.Context, from, to time.Time) ([]ActionCount, error)
	// CountByDay aggregates entry counts per calendar day between from and to.
	CountByDay(ctx context.Context, from, to time.Time) ([]DayCount, error)
	// CountTopActors returns the most active users between from and to,
	// busiest first.
	CountTopActors(ctx context.Context, from, to time.Time, limit int) ([]ActorCount, error)
	// CountTotals returns the entry total and distinct user total between
	// from and to.
	CountTotals(ctx context.Context, from, to time.Time) (entries int64, users int64, err error)
	// DeleteBefore deletes entries created before the cutoff and returns
	// the number of rows deleted.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
