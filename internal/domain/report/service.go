package report

import (
	"context"
)

// ReportService renders campus attendance summaries for download.
type ReportService interface {
	// ExportAttendance builds the summary for one campus, optionally
	// narrowed to a single worker, in the requested format.
	ExportAttendance(ctx context.Context, req ExportRequest) (Export, error)
}
