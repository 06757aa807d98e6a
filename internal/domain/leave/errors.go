package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrLeaveAlreadyReviewed = errors.New("leave request has already been reviewed")
	ErrLeaveOverlaps        = errors.New("a leave request already covers part of this period")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
)
