package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (*Leave, error)

	// ListByWorker returns a worker's requests, newest first.
	ListByWorker(ctx context.Context, workerID string) ([]Leave, error)

	// ListByCampus returns requests for a campus, optionally filtered by
	// status. Used by the admin review queue.
	ListByCampus(ctx context.Context, campusID string, status *LeaveStatus) ([]Leave, error)

	// HasOverlap reports whether a pending or approved request of the
	// worker intersects the inclusive date range.
	HasOverlap(ctx context.Context, workerID string, start, end time.Time) (bool, error)

	Update(ctx context.Context, l Leave) error
}
