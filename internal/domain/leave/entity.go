package leave

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeUnpaid LeaveType = "unpaid"
)

type Leave struct {
	ID         string
	WorkerID   string
	WorkerName string
	CampusID   string
	Type       LeaveType
	Status     LeaveStatus

	// StartDate and EndDate are inclusive calendar days at midnight.
	StartDate time.Time
	EndDate   time.Time

	Reason       string
	ReviewedBy   *string
	ReviewedAt   *time.Time
	ReviewerNote *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Days returns the inclusive calendar span of the leave.
func (l *Leave) Days() []time.Time {
	var days []time.Time
	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
