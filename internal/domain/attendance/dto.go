package attendance

import (
	"github.com/campushq/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckLocationRequest struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (r *CheckLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OnDutyRequest struct {
	Remarks string `json:"remarks"`
}

func (r *OnDutyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks are required when going on duty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	WorkerID          string   `json:"worker_id"`
	WorkerName        string   `json:"worker_name"`
	Day               string   `json:"day"`
	Status            string   `json:"status"`
	InsideCampus      bool     `json:"inside_campus"`
	PunchInAt         string   `json:"punch_in_at"`
	PunchOutAt        *string  `json:"punch_out_at,omitempty"`
	OutOfBoundMinutes float64  `json:"out_of_bound_minutes"`
	WorkedHours       *float64 `json:"worked_hours,omitempty"`
	Remarks           *string  `json:"remarks,omitempty"`
}

type CheckLocationResponse struct {
	Message string `json:"message"`
	Inside  bool   `json:"is_inside"`

	// MinutesAdded is omitted when this check credited nothing.
	MinutesAdded           *float64 `json:"out_of_bound_minutes_added,omitempty"`
	TotalOutOfBoundMinutes float64  `json:"total_out_of_bound_minutes"`
}

type TotalDurationResponse struct {
	Hours     float64 `json:"total_duration_in_hours"`
	Formatted string  `json:"formatted_duration"`
}

type MyAttendanceFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be at least 1",
		})
	}

	if f.Limit < 1 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPresent), string(StatusAbsent), string(StatusOnLeave), string(StatusOnDuty),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, on_leave, on_duty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Attendances []AttendanceResponse `json:"attendances"`
}
