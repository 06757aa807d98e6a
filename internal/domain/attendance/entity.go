package attendance

import (
	"time"
)

// Status is the lifecycle state of a worker's daily record. Present and
// OnDuty are reachable through this package's transitions; Absent and
// OnLeave are written by the cron job and the leave workflow.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
	StatusOnDuty  Status = "on_duty"
)

// Attendance is one worker's record for one calendar day. A record is
// created at punch-in, mutated by location checks and duty toggles, and
// becomes terminal once PunchOutAt is set.
type Attendance struct {
	ID         string
	WorkerID   string
	WorkerName string
	CampusID   string
	Day        time.Time // calendar day, midnight-truncated
	Status     Status

	// InsideCampus is the last observed geofence side. Only meaningful
	// while Status == StatusPresent.
	InsideCampus bool

	PunchInAt  time.Time
	PunchOutAt *time.Time

	// LastOutsideAt marks when the current excursion started; nil while
	// the worker is inside.
	LastOutsideAt *time.Time

	// OutOfBoundMinutes only ever grows, and only when an excursion ends.
	OutOfBoundMinutes float64

	Remarks *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminal reports whether the record has punched out and accepts no
// further mutation.
func (a *Attendance) Terminal() bool {
	return a.PunchOutAt != nil
}
