package attendance

import (
	"fmt"
	"math"
	"time"
)

// The lifecycle functions below are pure value transformations: they take
// the caller's clock explicitly, never touch storage, and report guard
// violations as sentinel errors without mutating the record.

// NewRecord creates the day's record at punch-in. The worker is assumed
// inside the boundary at punch-in time.
func NewRecord(workerID, workerName, campusID string, now time.Time) Attendance {
	return Attendance{
		WorkerID:     workerID,
		WorkerName:   workerName,
		CampusID:     campusID,
		Day:          now.Truncate(24 * time.Hour),
		Status:       StatusPresent,
		InsideCampus: true,
		PunchInAt:    now,
	}
}

// ClosePunch finalizes the record. Once set, PunchOutAt never changes.
func (a *Attendance) ClosePunch(now time.Time) error {
	if a.Terminal() {
		return ErrAlreadyPunchedOut
	}
	t := now
	a.PunchOutAt = &t
	return nil
}

// LocationResult reports the outcome of one location check.
type LocationResult struct {
	Inside bool

	// MinutesAdded is the out-of-bound time credited by this call alone;
	// zero unless this check closed an excursion.
	MinutesAdded float64

	// TotalOutOfBoundMinutes is the running day total, rounded for display.
	TotalOutOfBoundMinutes float64
}

// ApplyLocation folds one geofence observation into the record.
//
// Out-of-bound time is measured over the interval the worker was
// continuously outside and credited once, when they come back inside.
// Repeated same-side pings are no-ops, so irregular ping cadence never
// double counts.
func (a *Attendance) ApplyLocation(inside bool, now time.Time) (LocationResult, error) {
	if a.Terminal() {
		return LocationResult{}, ErrAlreadyPunchedOut
	}
	if a.Status == StatusOnDuty {
		return LocationResult{}, fmt.Errorf("%w: location checks are suspended while on duty", ErrInvalidStatus)
	}
	if a.Status != StatusPresent {
		return LocationResult{}, fmt.Errorf("%w: status is %q, must be %q", ErrInvalidStatus, a.Status, StatusPresent)
	}

	var added float64
	switch {
	case inside && !a.InsideCampus:
		// Excursion over: credit the elapsed interval exactly once.
		if a.LastOutsideAt != nil {
			added = outOfBoundDelta(*a.LastOutsideAt, now)
			a.OutOfBoundMinutes += added
		}
		a.LastOutsideAt = nil
		a.InsideCampus = true

	case !inside && a.InsideCampus:
		// Excursion starts now.
		t := now
		a.InsideCampus = false
		a.LastOutsideAt = &t
	}
	// Same side as before: nothing accrues until the worker re-enters.

	return LocationResult{
		Inside:                 inside,
		MinutesAdded:           round2(added),
		TotalOutOfBoundMinutes: round2(a.OutOfBoundMinutes),
	}, nil
}

// outOfBoundDelta is the excursion length in minutes, clamped at zero so
// clock skew or out-of-order events can never shrink the accumulator.
func outOfBoundDelta(lastOutsideAt, now time.Time) float64 {
	mins := now.Sub(lastOutsideAt).Seconds() / 60
	if mins < 0 {
		return 0
	}
	return mins
}

// StartDuty moves a Present worker to OnDuty, exempting them from geofence
// tracking for sanctioned off-campus work.
func (a *Attendance) StartDuty(remarks string, now time.Time) error {
	if a.Terminal() {
		return ErrAlreadyPunchedOut
	}
	if a.Status != StatusPresent {
		return fmt.Errorf("%w: status is %q, must be %q", ErrInvalidStatus, a.Status, StatusPresent)
	}
	a.Status = StatusOnDuty
	a.Remarks = &remarks
	return nil
}

// EndDuty returns an OnDuty worker to Present. Location fields are left
// untouched so tracking resumes exactly where it paused.
func (a *Attendance) EndDuty(now time.Time) error {
	if a.Terminal() {
		return ErrAlreadyPunchedOut
	}
	if a.Status != StatusOnDuty {
		return fmt.Errorf("%w: status is %q, must be %q", ErrInvalidStatus, a.Status, StatusOnDuty)
	}
	a.Status = StatusPresent
	a.Remarks = nil
	return nil
}

// WorkedDuration is punch-in to punch-out, or punch-in to now for an open
// record. Never negative; zero for records without a punch-in, such as
// absences.
func (a *Attendance) WorkedDuration(now time.Time) time.Duration {
	if a.PunchInAt.IsZero() {
		return 0
	}
	end := now
	if a.PunchOutAt != nil {
		end = *a.PunchOutAt
	}
	d := end.Sub(a.PunchInAt)
	if d < 0 {
		d = 0
	}
	return d
}

// WorkedHours is the derived fractional-hour figure; recomputed, never
// stored authoritatively.
func (a *Attendance) WorkedHours(now time.Time) float64 {
	return a.WorkedDuration(now).Seconds() / 3600
}

// FormatDuration renders a duration as "8h 30m 15s" by integer floor
// decomposition of total seconds.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
