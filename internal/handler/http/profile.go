package http

import (
	"encoding/json"
	"net/http"

	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	UploadPicture(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService user.ProfileService
}

func NewProfileHandler(profileService user.ProfileService) ProfileHandler {
	return &profileHandlerImpl{
		profileService: profileService,
	}
}

// GetMe implements ProfileHandler.
func (h *profileHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMe implements ProfileHandler.
func (h *profileHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.profileService.UpdateMe(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", result)
}

// UploadPicture implements ProfileHandler.
func (h *profileHandlerImpl) UploadPicture(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("picture")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'picture' is required", nil)
			return
		}
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.profileService.UploadPicture(r.Context(), user.PictureUpload{
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		Reader:   file,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile picture updated", result)
}
