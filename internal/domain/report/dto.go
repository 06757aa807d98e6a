package report

import (
	"github.com/campushq/attendance-backend-go/internal/pkg/validator"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type ExportRequest struct {
	CampusID string  `json:"campus_id"`
	WorkerID *string `json:"worker_id,omitempty"`
	Format   string  `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CampusID) {
		errs = append(errs, validator.ValidationError{
			Field:   "campus_id",
			Message: "campus_id is required",
		})
	}

	if !validator.IsInSlice(r.Format, []string{FormatCSV, FormatXLSX}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be csv or xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Export carries a rendered report ready to stream to the client.
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}
