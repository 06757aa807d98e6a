package http

import (
	"encoding/json"
	"net/http"

	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CampusHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type campusHandlerImpl struct {
	campusService campus.CampusService
}

func NewCampusHandler(campusService campus.CampusService) CampusHandler {
	return &campusHandlerImpl{
		campusService: campusService,
	}
}

// Create implements CampusHandler.
func (h *campusHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req campus.CreateCampusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.campusService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Campus created", result)
}

// Get implements CampusHandler.
func (h *campusHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.campusService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements CampusHandler.
func (h *campusHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.campusService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements CampusHandler.
func (h *campusHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req campus.UpdateCampusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.campusService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Campus updated", result)
}

// Delete implements CampusHandler.
func (h *campusHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.campusService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Campus deleted", nil)
}
