package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	CheckLocation(w http.ResponseWriter, r *http.Request)
	OnDuty(w http.ResponseWriter, r *http.Request)
	OffDuty(w http.ResponseWriter, r *http.Request)
	TotalDuration(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.PunchIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch in successful", result)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.PunchOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch out successful", result)
}

// CheckLocation implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckLocation(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// OnDuty implements AttendanceHandler.
func (h *attendanceHandlerImpl) OnDuty(w http.ResponseWriter, r *http.Request) {
	var req attendance.OnDutyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkOnDuty(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "You are now on duty", result)
}

// OffDuty implements AttendanceHandler.
func (h *attendanceHandlerImpl) OffDuty(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.MarkOffDuty(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "You are back from duty", result)
}

// TotalDuration implements AttendanceHandler.
func (h *attendanceHandlerImpl) TotalDuration(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.TotalDuration(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MyAttendanceFilter{Page: 1, Limit: 20}

	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "page must be a number", nil)
			return
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
