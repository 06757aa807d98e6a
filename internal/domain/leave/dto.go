package leave

import (
	"github.com/campushq/attendance-backend-go/internal/pkg/validator"
)

type RequestLeaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func (r *RequestLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{
		string(LeaveTypeAnnual), string(LeaveTypeSick), string(LeaveTypeUnpaid),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: annual, sick, unpaid",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequest struct {
	Note string `json:"note"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	WorkerID     string  `json:"worker_id"`
	WorkerName   string  `json:"worker_name"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewerNote *string `json:"reviewer_note,omitempty"`
}

func ToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		WorkerID:     l.WorkerID,
		WorkerName:   l.WorkerName,
		Type:         string(l.Type),
		Status:       string(l.Status),
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Reason:       l.Reason,
		ReviewedBy:   l.ReviewedBy,
		ReviewerNote: l.ReviewerNote,
	}
}
