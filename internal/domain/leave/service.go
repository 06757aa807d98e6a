package leave

import "context"

// LeaveService handles the leave request workflow. Approval writes
// on-leave attendance records for every covered day so the absence cron
// never marks an approved worker absent.
type LeaveService interface {
	// Request files a new leave request for the authenticated worker.
	Request(ctx context.Context, req RequestLeaveRequest) (LeaveResponse, error)

	// ListMine returns the authenticated worker's requests.
	ListMine(ctx context.Context) ([]LeaveResponse, error)

	// ListPending returns the admin review queue for the admin's campus.
	ListPending(ctx context.Context) ([]LeaveResponse, error)

	// Approve grants the request and materializes on-leave days.
	Approve(ctx context.Context, id string, req ReviewLeaveRequest) (LeaveResponse, error)

	// Reject declines the request with a reviewer note.
	Reject(ctx context.Context, id string, req ReviewLeaveRequest) (LeaveResponse, error)
}
