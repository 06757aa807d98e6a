package attendance

import (
	"context"
)

// AttendanceService defines the attendance lifecycle operations. Every
// operation resolves the authenticated worker from the request context and
// serializes with any concurrent call for the same (worker, day).
type AttendanceService interface {
	// PunchIn opens today's record; fails if one is already open.
	PunchIn(ctx context.Context) (AttendanceResponse, error)

	// PunchOut finalizes today's record; it becomes terminal.
	PunchOut(ctx context.Context) (AttendanceResponse, error)

	// CheckLocation evaluates a position against the worker's campus
	// boundary and accrues out-of-bound time on re-entry.
	CheckLocation(ctx context.Context, req CheckLocationRequest) (CheckLocationResponse, error)

	// MarkOnDuty exempts the worker from geofence tracking.
	MarkOnDuty(ctx context.Context, req OnDutyRequest) (AttendanceResponse, error)

	// MarkOffDuty resumes normal tracking.
	MarkOffDuty(ctx context.Context) (AttendanceResponse, error)

	// TotalDuration reports worked time for today's record, live for an
	// open record.
	TotalDuration(ctx context.Context) (TotalDurationResponse, error)

	// GetMyAttendance lists the worker's own records.
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)
}
