package http

import (
	"net/http"

	"github.com/campushq/attendance-backend-go/internal/domain/report"
	"github.com/campushq/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportAttendance implements ReportHandler.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := report.ExportRequest{
		CampusID: q.Get("campus_id"),
		Format:   q.Get("format"),
	}
	if req.Format == "" {
		req.Format = report.FormatCSV
	}
	if v := q.Get("worker_id"); v != "" {
		req.WorkerID = &v
	}

	result, err := h.reportService.ExportAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, result.FileName, result.ContentType, result.Content)
}
