package response

import (
	"errors"
	"net/http"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/domain/auth"
	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/domain/leave"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/geo"
	"github.com/campushq/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrRefreshTokenNotFound):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrOTPSecretMissing):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn),
		errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoRecordToday),
		errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidStatus):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrBoundaryNotConfigured):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, geo.ErrInvalidBoundary):
		BadRequest(w, err.Error(), nil)

	// Campus domain errors
	case errors.Is(err, campus.ErrCampusNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, campus.ErrCampusNameExists),
		errors.Is(err, campus.ErrCampusHasWorkers):
		Conflict(w, err.Error())
	case errors.Is(err, campus.ErrInvalidBoundary):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveAlreadyReviewed),
		errors.Is(err, leave.ErrLeaveOverlaps):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrEmailAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrRoleNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrNoCampusAssigned):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrInvalidPicture):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
