package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn  = errors.New("you have already punched in today")
	ErrAlreadyPunchedOut = errors.New("already punched out for today")
	ErrNoRecordToday     = errors.New("no attendance record found for today")

	// Transition errors
	ErrInvalidStatus         = errors.New("operation not allowed in the current status")
	ErrBoundaryNotConfigured = errors.New("campus boundary is not configured")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
