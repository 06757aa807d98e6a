package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// service owns serialization per (worker, day); the repository is plain
// load/save.
type AttendanceRepository interface {
	// Create inserts a new record and returns it with its generated ID.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetByWorkerAndDay returns the record for one worker on one calendar
	// day, or nil when none exists.
	GetByWorkerAndDay(ctx context.Context, workerID string, day time.Time) (*Attendance, error)

	// Update persists the full mutable state of an existing record.
	Update(ctx context.Context, record Attendance) error

	// ListByWorker returns a worker's records, newest first, with paging.
	ListByWorker(ctx context.Context, workerID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListByCampus returns all records for a campus, optionally narrowed
	// to a single worker. Consumed by reporting and admin views.
	ListByCampus(ctx context.Context, campusID string, workerID *string) ([]Attendance, error)

	// HasRecordForDay reports whether any record (open or terminal)
	// exists for the worker on the given day.
	HasRecordForDay(ctx context.Context, workerID string, day time.Time) (bool, error)

	// ListOpenBefore returns present or on-duty records from days before
	// the cutoff that were never punched out.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Attendance, error)

	// BulkCreate inserts a batch of records; used by the absence cron job
	// and the leave workflow.
	BulkCreate(ctx context.Context, records []Attendance) error
}
